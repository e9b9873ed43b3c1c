package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kokeshes/wxk-check/internal/config"
	"github.com/kokeshes/wxk-check/internal/store"
)

var (
	logger  *zap.Logger
	cfg     *config.Config
	verbose bool
)

// logFileName is where the interactive app logs, next to the database.
const logFileName = "wxk-check.log"

var rootCmd = &cobra.Command{
	Use:   "wxk-check",
	Short: "Yes/no self-check with a local log",
	Long: `wxk-check walks through a short yes/no questionnaire, ranks the condition
codes the answers point at, and keeps a local log of entries.

Run without a subcommand to open the interactive app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = c

		logPath, err := logPathFor(cmd)
		if err != nil {
			return err
		}
		logger, err = newLogger(c.Level(), logPath)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("configuration loaded",
			zap.String("db", c.DBPath),
			zap.String("catalog", c.CatalogPath),
			zap.String("questions", c.QuestionsPath),
			zap.String("profile", c.Profile),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides WXK_DB env var)")
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/wxk-check/config.yaml)")
	flags.String("catalog", "", "Condition catalog YAML/JSON file (default: built-in)")
	flags.String("questions", "", "Question bank YAML/JSON file (default: built-in)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig reads the config file and environment, then applies the
// command-line flags, which take priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for flag, dst := range map[string]*string{
		"db":        &c.DBPath,
		"catalog":   &c.CatalogPath,
		"questions": &c.QuestionsPath,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	if verbose {
		c.LogLevel = zapcore.DebugLevel.String()
	}
	return c, nil
}

// newLogger builds a production logger at level, writing to path when set.
func newLogger(level zapcore.Level, path string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if path != "" {
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}
	return zc.Build()
}

// resolveDBPath returns the database path from --db or the config (highest
// priority), then the WXK_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// logPathFor returns where cmd should write logs. The interactive app owns
// the terminal, so the root command logs to a file next to the database;
// subcommands log to stderr and get "".
func logPathFor(cmd *cobra.Command) (string, error) {
	if cmd.HasParent() {
		return "", nil
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return "", fmt.Errorf("resolve DB path: %w", err)
	}
	return filepath.Join(filepath.Dir(dbPath), logFileName), nil
}
