// Package application orchestrates negotiation sessions: one buyer event in,
// one seller reply out, with transcript and outcome logging on the side.
package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/haggle-go/domain/dialogue"
	"github.com/felixgeelhaar/haggle-go/domain/negotiation"
	"github.com/felixgeelhaar/haggle-go/domain/transcript"
	"github.com/felixgeelhaar/haggle-go/infrastructure/logging"
	"github.com/felixgeelhaar/haggle-go/infrastructure/statemachine"
)

// Application-level errors.
var (
	ErrComposerRequired = errors.New("composer is required")
	ErrSessionLive      = errors.New("session still live")
	ErrSurveySubmitted  = errors.New("survey already submitted")
	ErrNoSurveyStore    = errors.New("no survey store configured")
)

// Clock supplies the current time; injected so tests can steer the deadline.
type Clock func() time.Time

// Reply is the session's answer to one external event.
type Reply struct {
	// Messages are the seller lines produced by the event, in order.
	Messages []string

	// Offer is the standing seller offer after the event.
	Offer int

	// Phase tags the pricing branch that produced the offer.
	Phase negotiation.Phase

	// Ended is true once the session reached a terminal state.
	Ended      bool
	Reason     negotiation.EndReason
	FinalPrice int
}

// Session drives one negotiation from start to a terminal outcome. All
// methods are safe for concurrent use; events are serialized internally.
type Session struct {
	mu sync.Mutex

	state    *negotiation.State
	engine   *negotiation.Engine
	interp   *statemachine.Interpreter
	composer dialogue.Composer
	log      *transcript.Transcript

	entries  transcript.Store
	outcomes transcript.OutcomeStore
	surveys  transcript.SurveyStore

	clock Clock

	started     bool
	outcomeDone bool
	surveyDone  bool
}

// NewSession creates a session for the given configuration.
func NewSession(config Config, opts ...Option) (*Session, error) {
	for _, opt := range opts {
		opt(&config)
	}

	if config.Composer == nil {
		return nil, ErrComposerRequired
	}
	if config.Policy.ListPrice == 0 {
		config.Policy = negotiation.DefaultPolicy()
	}
	if config.SessionID == "" {
		config.SessionID = uuid.NewString()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	engine, err := negotiation.NewEngine(config.Policy, config.EngineOptions...)
	if err != nil {
		return nil, err
	}

	machine, err := statemachine.NewSessionMachine()
	if err != nil {
		return nil, err
	}

	state := negotiation.NewState(config.SessionID, config.Mode, config.Policy.ListPrice)
	interp := statemachine.NewInterpreter(machine, statemachine.NewContext(state))

	return &Session{
		state:    state,
		engine:   engine,
		interp:   interp,
		composer: config.Composer,
		log:      transcript.New(config.SessionID, config.Mode),
		entries:  config.Entries,
		outcomes: config.Outcomes,
		surveys:  config.Surveys,
		clock:    config.Clock,
	}, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.state.SessionID
}

// State returns a snapshot of the negotiation state.
func (s *Session) State() negotiation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state
}

// Transcript returns the in-memory message record.
func (s *Session) Transcript() *transcript.Transcript {
	return s.log
}

// Start moves the session live and emits the seller's opening line.
func (s *Session) Start(ctx context.Context) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return Reply{}, negotiation.ErrSessionStarted
	}
	s.started = true

	now := s.clock()
	s.interp.Start(now)

	logging.Info().
		Add(logging.SessionID(s.state.SessionID)).
		Add(logging.Mode(s.state.Mode)).
		Add(logging.Offer(s.state.CurrentOffer)).
		Msg("session started")

	opening := s.composer.Opening(s.state.Mode)
	s.sellerSay(ctx, now, opening)

	return Reply{Messages: []string{opening}, Offer: s.state.CurrentOffer}, nil
}

// HandleText processes one free-form buyer message: acceptance detection
// first, then the offer engine, then the termination checks, in the fixed
// precedence the negotiation defines.
func (s *Session) HandleText(ctx context.Context, text string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Reply{}, negotiation.ErrSessionNotStarted
	}
	if s.state.Lifecycle.IsTerminal() {
		return Reply{}, negotiation.ErrSessionClosed
	}

	now := s.clock()
	s.state.LastBuyerAt = now
	s.recordBuyer(ctx, now, text)

	p := s.engine.Policy()
	price, hasPrice := dialogue.ParsePrice(text)
	acc := dialogue.DetectAcceptance(text)

	if acc.Explicit {
		if acc.HasPrice {
			if price >= p.ReservationPrice && price <= p.ListPrice {
				return s.close(ctx, now, negotiation.EndDealWithPrice, price), nil
			}
			// Out-of-range "deal at X" is no deal; negotiate on.
		} else {
			if s.state.CurrentOffer >= p.ReservationPrice {
				return s.close(ctx, now, negotiation.EndDealNoPrice, s.state.CurrentOffer), nil
			}
			return s.close(ctx, now, negotiation.EndWalkawayTooLow, 0), nil
		}
	}

	offer, phase := s.engine.Counter(s.state, price, hasPrice, now)

	logging.Debug().
		Add(logging.SessionID(s.state.SessionID)).
		Add(logging.Round(s.state.RoundIndex)).
		Add(logging.BuyerOffer(price)).
		Add(logging.Offer(offer)).
		Add(logging.Phase(phase)).
		Msg("counter computed")

	if hasPrice && s.state.RoundIndex >= p.MaxRounds {
		line := s.composer.FinalOffer(s.state.Mode, offer)
		s.sellerSay(ctx, now, line)
		reply := s.close(ctx, now, negotiation.EndRoundCap, 0)
		reply.Messages = append([]string{line}, reply.Messages...)
		reply.Offer = offer
		reply.Phase = phase
		return reply, nil
	}

	if s.state.BotTurns >= p.MaxBotTurns {
		return s.close(ctx, now, negotiation.EndBotTurnCap, 0), nil
	}

	if s.state.Elapsed(now) >= p.Deadline {
		return s.finalizeTime(ctx, now), nil
	}

	line := s.composer.Reply(dialogue.Prompt{
		Mode:      s.state.Mode,
		Phase:     phase,
		Offer:     offer,
		ListPrice: p.ListPrice,
		Intents:   dialogue.ClassifyIntents(text),
	})
	messages := []string{line}
	s.sellerSay(ctx, now, line)
	messages = append(messages, s.nudges(ctx, now)...)

	return Reply{Messages: messages, Offer: offer, Phase: phase}, nil
}

// AcceptCurrentOffer is the explicit deal button: the buyer takes the
// seller's standing offer as-is.
func (s *Session) AcceptCurrentOffer(ctx context.Context) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Reply{}, negotiation.ErrSessionNotStarted
	}
	if s.state.Lifecycle.IsTerminal() {
		return Reply{}, negotiation.ErrSessionClosed
	}

	now := s.clock()
	return s.close(ctx, now, negotiation.EndDealButton, s.state.CurrentOffer), nil
}

// Abort ends the session immediately without a deal.
func (s *Session) Abort(ctx context.Context) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Reply{}, negotiation.ErrSessionNotStarted
	}
	if s.state.Lifecycle.IsTerminal() {
		return Reply{}, negotiation.ErrSessionClosed
	}

	now := s.clock()
	return s.close(ctx, now, negotiation.EndAborted, 0), nil
}

// Tick is the cooperative timeout check, called on a periodic refresh. It
// enforces the deadline and fires any due power-mode interjections.
func (s *Session) Tick(ctx context.Context) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return Reply{}, negotiation.ErrSessionNotStarted
	}
	if s.state.Lifecycle.IsTerminal() {
		return s.terminalReply(), nil
	}

	now := s.clock()
	if s.state.Elapsed(now) >= s.engine.Policy().Deadline {
		return s.finalizeTime(ctx, now), nil
	}

	messages := s.nudges(ctx, now)
	return Reply{Messages: messages, Offer: s.state.CurrentOffer}, nil
}

// SubmitSurvey records the post-negotiation questionnaire, once, after the
// session has ended.
func (s *Session) SubmitSurvey(ctx context.Context, ratings transcript.Ratings, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Lifecycle.IsTerminal() {
		return ErrSessionLive
	}
	if s.surveyDone {
		return ErrSurveySubmitted
	}
	if s.surveys == nil {
		return ErrNoSurveyStore
	}

	survey := transcript.Survey{
		Timestamp:  s.clock(),
		SessionID:  s.state.SessionID,
		Mode:       s.state.Mode,
		FinalPrice: s.state.FinalPrice,
		EndedBy:    s.state.EndedBy,
		Ratings:    ratings,
		Comment:    comment,
	}
	if err := survey.Validate(); err != nil {
		return err
	}
	if err := s.surveys.RecordSurvey(ctx, survey); err != nil {
		return err
	}
	s.surveyDone = true
	return nil
}

// finalizeTime resolves a hit deadline: the best buyer offer ever seen
// decides between a forced deal at a clamped price and a decline.
func (s *Session) finalizeTime(ctx context.Context, now time.Time) Reply {
	p := s.engine.Policy()
	if s.state.BestBuyerOffer >= p.ReservationPrice {
		upper := s.state.CurrentOffer
		if p.ListPrice < upper {
			upper = p.ListPrice
		}
		final := negotiation.RoundToFive(negotiation.Bound(s.state.BestBuyerOffer, p.ReservationPrice, upper))
		return s.close(ctx, now, negotiation.EndTimeFinalized, final)
	}
	return s.close(ctx, now, negotiation.EndWalkawayTooLow, 0)
}

// close moves the session into its terminal state, emits the closing line,
// and records the outcome exactly once.
func (s *Session) close(ctx context.Context, now time.Time, reason negotiation.EndReason, finalPrice int) Reply {
	if !s.interp.Close(reason, finalPrice, now) {
		return s.terminalReply()
	}

	var line string
	switch {
	case reason == negotiation.EndTimeFinalized:
		line = s.composer.TimeClose(s.state.Mode, finalPrice)
	case reason.IsDeal():
		line = s.composer.Accept(s.state.Mode, finalPrice)
	case reason == negotiation.EndRoundCap:
		// The final-offer line was already emitted by the caller.
	default:
		line = s.composer.Decline(s.state.Mode)
	}
	var messages []string
	if line != "" {
		s.sellerSay(ctx, now, line)
		messages = append(messages, line)
	}

	s.recordOutcome(ctx, now)

	logging.Info().
		Add(logging.SessionID(s.state.SessionID)).
		Add(logging.EndReason(reason)).
		Add(logging.FinalPrice(s.state.FinalPrice)).
		Add(logging.Elapsed(s.state.Elapsed(now))).
		Msg("session closed")

	reply := s.terminalReply()
	reply.Messages = messages
	return reply
}

func (s *Session) terminalReply() Reply {
	return Reply{
		Offer:      s.state.CurrentOffer,
		Ended:      s.state.Lifecycle.IsTerminal(),
		Reason:     s.state.EndedBy,
		FinalPrice: s.state.FinalPrice,
	}
}

// recordOutcome writes the one-per-session outcome row. Guarded so that
// overlapping termination paths cannot double-record.
func (s *Session) recordOutcome(ctx context.Context, now time.Time) {
	if s.outcomeDone {
		return
	}
	s.outcomeDone = true

	if s.outcomes == nil {
		return
	}

	p := s.engine.Policy()
	outcome := transcript.Outcome{
		Timestamp:       now,
		SessionID:       s.state.SessionID,
		Mode:            s.state.Mode,
		Item:            p.Item,
		ListPrice:       p.ListPrice,
		FinalPrice:      s.state.FinalPrice,
		EndedBy:         s.state.EndedBy,
		BuyerTurns:      s.log.BuyerTurns(),
		DurationSeconds: int(s.state.Elapsed(now).Seconds()),
	}
	if err := s.outcomes.RecordOutcome(ctx, outcome); err != nil {
		logging.Warn().
			Add(logging.SessionID(s.state.SessionID)).
			Add(logging.ErrorField(err)).
			Msg("outcome write failed")
	}
}

// nudges returns the due power-mode interjections: timed pressure marks,
// each at most once, then the long-pause prod. Neutral mode has none.
func (s *Session) nudges(ctx context.Context, now time.Time) []string {
	if s.state.Mode != negotiation.ModePower {
		return nil
	}

	p := s.engine.Policy()
	var messages []string

	elapsed := s.state.Elapsed(now)
	for s.state.PressureStage < len(p.PressureMarks) && elapsed >= p.PressureMarks[s.state.PressureStage] {
		s.state.PressureStage++
		line := s.composer.TimedNudge(s.state.Mode, s.state.PressureStage)
		if line != "" {
			s.sellerSay(ctx, now, line)
			messages = append(messages, line)
		}
	}

	if len(messages) == 0 && s.state.IdleGap(now) > p.PauseNudgeAfter {
		line := s.composer.PauseNudge(s.state.Mode)
		if line != "" {
			s.sellerSay(ctx, now, line)
			messages = append(messages, line)
		}
	}

	return messages
}

// sellerSay appends a seller line to the transcript and the store. Store
// writes are best effort; a failed append never blocks the negotiation.
func (s *Session) sellerSay(ctx context.Context, now time.Time, text string) {
	s.state.BotTurns++
	s.state.LastSellerAt = now
	entry := s.log.RecordSeller(now, text, s.state.CurrentOffer)
	s.persist(ctx, entry)
}

func (s *Session) recordBuyer(ctx context.Context, now time.Time, text string) {
	entry := s.log.RecordBuyer(now, text, s.state.CurrentOffer)
	s.persist(ctx, entry)
}

func (s *Session) persist(ctx context.Context, entry transcript.Entry) {
	if s.entries == nil {
		return
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		logging.Warn().
			Add(logging.SessionID(s.state.SessionID)).
			Add(logging.ErrorField(err)).
			Msg("transcript write failed")
	}
}
