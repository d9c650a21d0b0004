package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/haggle-go/application"
	domainconfig "github.com/felixgeelhaar/haggle-go/domain/config"
	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
	"github.com/felixgeelhaar/haggle-go/domain/transcript"
	infraconfig "github.com/felixgeelhaar/haggle-go/infrastructure/config"
	"github.com/felixgeelhaar/haggle-go/infrastructure/logging"
)

// chatOptions holds options for the chat command.
type chatOptions struct {
	configPath    string
	mode          string
	seed          int64
	deterministic bool
	logDir        string
	sqliteDSN     string
	sessionID     string
	tickEvery     time.Duration
}

// newChatCmd creates the chat command.
func (a *App) newChatCmd() *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run an interactive negotiation session",
		Long: `Run one interactive negotiation session against the seller chatbot.

Type messages to negotiate. Special inputs:
  /accept   take the seller's current offer
  /abort    leave without a deal
  /survey   after the session ends: /survey d p f s t e r m [comment]
            (eight 1-7 ratings, then an optional free-text comment)
  /quit     exit

Examples:
  # Neutral condition, logs as CSV under ./logs
  haggle chat --log-dir logs

  # Power condition from an experiment config
  haggle chat -c experiment.yaml --mode power

  # Reproducible wording
  haggle chat --seed 7 --deterministic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to experiment configuration file")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Persona condition (neutral, power)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Wording seed (0 = time-seeded)")
	cmd.Flags().BoolVar(&opts.deterministic, "deterministic", false, "Pin wording to the first bank line")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Write CSV logs to this directory")
	cmd.Flags().StringVar(&opts.sqliteDSN, "sqlite", "", "Write logs to this SQLite DSN")
	cmd.Flags().StringVar(&opts.sessionID, "session", "", "Pin the session ID")
	cmd.Flags().DurationVar(&opts.tickEvery, "tick", 5*time.Second, "Deadline and nudge check interval")

	return cmd
}

// resolveChatConfig merges the config file with command-line overrides.
func resolveChatConfig(opts *chatOptions) (*domainconfig.ExperimentConfig, error) {
	var cfg *domainconfig.ExperimentConfig
	if opts.configPath != "" {
		loaded, err := infraconfig.NewLoader().LoadFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	} else {
		cfg = domainconfig.DefaultConfig()
		// Without an explicit config or log directory, keep the run ephemeral.
		cfg.Storage = domainconfig.StorageConfig{Backend: domainconfig.BackendMemory}
	}

	if opts.mode != "" {
		if !negotiation.Mode(opts.mode).IsValid() {
			return nil, fmt.Errorf("invalid mode %q (neutral, power)", opts.mode)
		}
		cfg.Mode = opts.mode
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.deterministic {
		cfg.Deterministic = true
	}
	if opts.logDir != "" {
		cfg.Storage = domainconfig.StorageConfig{Backend: domainconfig.BackendCSV, Dir: opts.logDir}
	}
	if opts.sqliteDSN != "" {
		cfg.Storage = domainconfig.StorageConfig{Backend: domainconfig.BackendSQLite, DSN: opts.sqliteDSN}
	}

	return cfg, nil
}

// runChat drives the interactive loop.
func (a *App) runChat(cmd *cobra.Command, opts *chatOptions) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := resolveChatConfig(opts)
	if err != nil {
		return err
	}

	builder := infraconfig.NewBuilder(cfg)
	result, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build session components: %w", err)
	}
	defer func() { _ = result.Close() }()

	logging.Init(logging.Config{Level: result.Logging.Level, Format: result.Logging.Format})

	sessionOpts := result.SessionOptions()
	if opts.sessionID != "" {
		sessionOpts = append(sessionOpts, application.WithSessionID(opts.sessionID))
	}
	session, err := application.NewSession(application.Config{Mode: result.Mode}, sessionOpts...)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	printer := &chatPrinter{out: a.stdout}
	printer.system(fmt.Sprintf("Session %s (%s). Item: %s, listed at %d €.",
		session.ID(), result.Mode, result.Policy.Item, result.Policy.ListPrice))
	printer.system("Type your messages. /accept takes the offer, /abort leaves, /quit exits.")

	reply, err := session.Start(ctx)
	if err != nil {
		return err
	}
	printer.seller(reply.Messages)

	// Periodic tick for the deadline and timed interjections.
	go a.tickLoop(ctx, cancel, session, printer, opts.tickEvery)

	lines := readLines(ctx, cmd.InOrStdin())
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			done, err := a.handleLine(ctx, session, printer, line)
			if err != nil {
				return err
			}
			if done {
				cancel()
				return nil
			}
		}
	}
}

// tickLoop runs the cooperative timeout check until the context ends.
func (a *App) tickLoop(ctx context.Context, cancel context.CancelFunc, session *application.Session, printer *chatPrinter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reply, err := session.Tick(ctx)
			if err != nil {
				continue
			}
			printer.seller(reply.Messages)
			if reply.Ended {
				printer.outcome(reply)
				printer.system("You can still rate the chat: /survey d p f s t e r m [comment], or /quit.")
				return
			}
		}
	}
}

// handleLine processes one line of user input. It returns true when the
// loop should exit.
func (a *App) handleLine(ctx context.Context, session *application.Session, printer *chatPrinter, line string) (bool, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return false, nil
	}

	switch {
	case text == "/quit" || text == "/exit":
		return true, nil

	case text == "/accept":
		reply, err := session.AcceptCurrentOffer(ctx)
		if err != nil {
			printer.systemErr(err)
			return false, nil
		}
		printer.seller(reply.Messages)
		printer.outcome(reply)
		printer.system("You can rate the chat: /survey d p f s t e r m [comment], or /quit.")
		return false, nil

	case text == "/abort":
		reply, err := session.Abort(ctx)
		if err != nil {
			printer.systemErr(err)
			return false, nil
		}
		printer.seller(reply.Messages)
		printer.outcome(reply)
		printer.system("You can rate the chat: /survey d p f s t e r m [comment], or /quit.")
		return false, nil

	case strings.HasPrefix(text, "/survey"):
		ratings, comment, err := parseSurvey(strings.TrimSpace(strings.TrimPrefix(text, "/survey")))
		if err != nil {
			printer.system("Usage: /survey d p f s t e r m [comment], eight ratings from 1 to 7.")
			return false, nil
		}
		if err := session.SubmitSurvey(ctx, ratings, comment); err != nil {
			printer.systemErr(err)
			return false, nil
		}
		printer.system("Thanks, your rating was recorded.")
		return false, nil

	default:
		reply, err := session.HandleText(ctx, text)
		if errors.Is(err, negotiation.ErrSessionClosed) {
			printer.system("The negotiation has ended. /survey to rate it, /quit to exit.")
			return false, nil
		}
		if err != nil {
			return false, err
		}
		printer.seller(reply.Messages)
		if reply.Ended {
			printer.outcome(reply)
			printer.system("You can rate the chat: /survey d p f s t e r m [comment], or /quit.")
		}
		return false, nil
	}
}

// parseSurvey reads eight 1-7 ratings and an optional trailing comment.
func parseSurvey(args string) (transcript.Ratings, string, error) {
	fields := strings.Fields(args)
	if len(fields) < 8 {
		return transcript.Ratings{}, "", fmt.Errorf("expected 8 ratings, got %d", len(fields))
	}

	values := make([]int, 8)
	for i := 0; i < 8; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return transcript.Ratings{}, "", fmt.Errorf("rating %d is not a number: %q", i+1, fields[i])
		}
		values[i] = v
	}

	ratings := transcript.Ratings{
		Dominance:         values[0],
		Pressure:          values[1],
		Fairness:          values[2],
		Satisfaction:      values[3],
		Trust:             values[4],
		Expertise:         values[5],
		Recommend:         values[6],
		ManipulationPower: values[7],
	}
	return ratings, strings.Join(fields[8:], " "), nil
}

// readLines feeds scanner lines into a channel so the select loop can also
// observe context cancellation.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// chatPrinter serializes output from the input loop and the tick loop.
type chatPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *chatPrinter) seller(messages []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, msg := range messages {
		if msg == "" {
			continue
		}
		fmt.Fprintf(p.out, "Seller: %s\n", msg)
	}
}

func (p *chatPrinter) system(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[%s]\n", msg)
}

func (p *chatPrinter) systemErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[%v]\n", err)
}

func (p *chatPrinter) outcome(reply application.Reply) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if reply.Reason.IsDeal() {
		fmt.Fprintf(p.out, "[Deal closed at %d € (%s)]\n", reply.FinalPrice, reply.Reason)
		return
	}
	fmt.Fprintf(p.out, "[No deal (%s)]\n", reply.Reason)
}
