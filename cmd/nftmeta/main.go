// Command nftmeta validates, formats and inspects NFT metadata and mint stage
// documents.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/nftmeta/i18n"
)

// errInvalid signals that at least one document had issues. The issues are
// already printed, so main only sets the exit code.
var errInvalid = errors.New("documents have issues")

// newLogger is swapped out by tests.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// now is swapped out by tests.
var now = time.Now

type app struct {
	// Global flags
	verbose    bool
	configPath string
	lang       string
	strict     bool
	noAddress  bool
	output     string
	maxBytes   int64

	cfg    Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "nftmeta",
		Short: "Validate and inspect NFT metadata and mint stages",
		Long: `nftmeta checks off-chain NFT metadata (including AI agent metadata and
collection info) and Solana/EVM mint stage documents.

Documents may be JSON or YAML; the format is chosen by file extension.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg.overlay(cmd, a)
			if err := a.cfg.check(); err != nil {
				return err
			}
			if a.cfg.Language != "" {
				i18n.SetLanguage(a.cfg.Language)
			}
			a.logger.Debug("configuration loaded",
				zap.String("path", a.configPath),
				zap.String("language", a.cfg.Language),
				zap.Bool("strict", a.cfg.Strict),
				zap.Int64("maxBytes", a.cfg.MaxBytes))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.lang, "lang", "", "Issue message language (en, ja)")
	pf.BoolVar(&a.strict, "strict", false, "Reject duplicate and unknown keys")
	pf.BoolVar(&a.noAddress, "no-address-check", false, "Skip whitelist address syntax checks")
	pf.StringVarP(&a.output, "output", "o", "", "Output format: text or json")
	pf.Int64Var(&a.maxBytes, "max-bytes", 0, "Reject documents larger than this many bytes (0 = unlimited)")

	root.AddCommand(
		a.validateCmd(),
		a.fmtCmd(),
		a.whitelistCmd(),
		a.activeCmd(),
		kindsCmd(),
		schemaCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
