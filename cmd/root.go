package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Xantino1997/flores/internal/roster"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

var (
	rosterFile     string
	outputDir      string
	recomputeCount bool
	locale         string
	logLevel       string
	logFile        string
	verbose        bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "publist",
	Short: "Edit a congregation's publisher roster",
	Long: `publist loads a publisher roster exported as XML, shows publishers by
service group with their derived labels, edits records and writes the
edited roster and per-group sheets back to disk.

Run without a command to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnv(cmd.Flags()); err != nil {
			return err
		}

		var err error
		if isInteractive(cmd) {
			logger, err = newTUILogger(logFile)
		} else {
			logger, err = newLogger(logLevel, verbose)
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "es", "Locale used to order publisher names")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", ".", "Output directory for written files")
	rootCmd.PersistentFlags().BoolVar(&recomputeCount, "recompute-count", false, "Write the number of publishers into Count instead of the loaded value")
	rootCmd.Flags().StringVarP(&rosterFile, "file", "f", "", "Roster XML file to open on start")
}

func initConfig() {
	// A missing .env is the normal case.
	_ = godotenv.Load()
}

// envFlags maps environment variables to the flags they provide defaults
// for. An explicit flag always wins.
var envFlags = map[string]string{
	"PUBLIST_FILE":            "file",
	"PUBLIST_OUTPUT_DIR":      "output",
	"PUBLIST_RECOMPUTE_COUNT": "recompute-count",
	"PUBLIST_LOCALE":          "locale",
}

func applyEnv(flags *pflag.FlagSet) error {
	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok || value == "" {
			continue
		}
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	if logLevel == "" {
		logLevel = os.Getenv("PUBLIST_LOG_LEVEL")
	}
	if logFile == "" {
		logFile = os.Getenv("PUBLIST_LOG_FILE")
	}
	return nil
}

// isInteractive reports whether cmd runs the terminal interface: the root
// command itself or its tui subcommand.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

func parseLevel(level string, verbose bool) (zapcore.Level, error) {
	if verbose {
		return zapcore.DebugLevel, nil
	}
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(level))
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := parseLevel(level, verbose)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// newTUILogger keeps the terminal clean: without a log file nothing is
// logged.
func newTUILogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := parseLevel(logLevel, verbose)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	return config.Build()
}

func newPolicy() (*roster.Policy, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return roster.NewPolicy(tag), nil
}

func newSession() (*roster.Session, error) {
	policy, err := newPolicy()
	if err != nil {
		return nil, err
	}
	return roster.NewSession(roster.WithLogger(currentLogger()), roster.WithPolicy(policy)), nil
}

func currentLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
