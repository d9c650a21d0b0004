package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/haggle-go/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an experiment configuration file",
		Long: `Validate an experiment configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Required fields (name, version)
  - Mode, storage backend, and rephrase provider values
  - Policy consistency (floor below list, ascending lowball tiers)
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  haggle validate -c experiment.yaml

  # Strict validation (fail on missing env vars)
  haggle validate -c experiment.yaml --strict

  # Show the JSON schema for configuration
  haggle validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showConfigSchema()
			}
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for configuration")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("configuration file path is required (-c flag)")
	}

	loaderOpts := []infraconfig.LoaderOption{
		infraconfig.WithValidation(true),
	}
	if opts.strict {
		loaderOpts = append(loaderOpts, infraconfig.WithStrictEnv(true))
	}

	loader := infraconfig.NewLoaderWithOptions(loaderOpts...)
	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", cfg.Name)
	fmt.Fprintf(a.stdout, "  Version: %s\n", cfg.Version)
	if cfg.Description != "" {
		fmt.Fprintf(a.stdout, "  Description: %s\n", cfg.Description)
	}

	policy := cfg.EffectivePolicy()

	fmt.Fprintf(a.stdout, "\nConfiguration summary:\n")
	fmt.Fprintf(a.stdout, "  Mode: %s\n", cfg.EffectiveMode())
	fmt.Fprintf(a.stdout, "  Item: %s\n", policy.Item)
	fmt.Fprintf(a.stdout, "  List price: %d €\n", policy.ListPrice)
	fmt.Fprintf(a.stdout, "  Deadline: %s\n", policy.Deadline)
	fmt.Fprintf(a.stdout, "  Round cap: %d, bot-turn cap: %d\n", policy.MaxRounds, policy.MaxBotTurns)

	backend := cfg.Storage.Backend
	if backend == "" {
		backend = "memory"
	}
	fmt.Fprintf(a.stdout, "  Storage: %s\n", backend)

	if cfg.Rephrase.Enabled {
		fmt.Fprintf(a.stdout, "  Rephrase: enabled (provider=%s)\n", cfg.Rephrase.Provider)
	} else {
		fmt.Fprintf(a.stdout, "  Rephrase: disabled\n")
	}

	return nil
}

// showConfigSchema displays the JSON schema for configuration.
func (a *App) showConfigSchema() error {
	schemaJSON, err := infraconfig.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(a.stdout, string(schemaJSON))
	return nil
}
