// Package commands provides the CLI commands for ai-studio.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/logging"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/messagebus"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	settingsPath string
	logLevel     string
	envFile      string
	noColor      bool
)

// app holds what every command needs once flags are parsed.
type app struct {
	logger   types.Logger
	bus      *messagebus.Bus
	settings *settings.Manager
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "ai-studio",
	Short: "AI Studio - provider management and assistants for LLM vendors",
	Long: `ai-studio manages LLM provider configurations, shows how far each
provider can be trusted with your data, and runs the translation and icon
finder assistants against a configured provider.

API keys are read from the environment variable named by each provider
entry, or the vendor default such as OPENAI_API_KEY.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", defaultSettingsPath(), "Settings file (.json, .yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file (default .env when present)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate(fmt.Sprintf("ai-studio %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(confidenceCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(settingsCmd)
}

// Execute runs the root command. An interrupt cancels running requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(dir, "ai-studio", "settings.json")
}

func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	color.NoColor = color.NoColor || noColor

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Output: os.Stderr,
		Pretty: true,
	})
	bus := messagebus.New()

	manager, err := settings.NewManager(settingsPath, settings.WithLogger(logger), settings.WithMessageBus(bus))
	if err != nil {
		return err
	}
	if err := manager.Load(); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	current = &app{logger: logger, bus: bus, settings: manager}
	return nil
}

// providerArg resolves a provider by id, instance name or number.
func providerArg(ref string) (types.ProviderConfig, error) {
	for _, p := range current.settings.Snapshot().Providers {
		if p.ID == ref || p.InstanceName == ref || fmt.Sprint(p.Num) == ref {
			return p, nil
		}
	}
	return types.ProviderConfig{}, fmt.Errorf("%w: %s", settings.ErrProviderNotFound, ref)
}

// reportIssues prints validation messages to stderr and returns err.
func reportIssues(err error, issues []string) error {
	mark := color.New(color.FgRed).Sprint("✗")
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "%s %s\n", mark, issue)
	}
	return err
}
