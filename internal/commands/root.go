package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cleared-dev/cashbook/internal/buildinfo"
	"github.com/cleared-dev/cashbook/internal/logger"
)

// EnvPrefix prefixes the environment variables that override flags, e.g.
// CASHBOOK_DIR or CASHBOOK_LOG_LEVEL.
const EnvPrefix = "CASHBOOK"

// Viper keys of the global flags.
const (
	keyDir       = "dir"
	keyFilter    = "filter"
	keyConfig    = "config"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)

// now is replaced in tests.
var now = time.Now

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:     "cashbook",
		Short:   "Reports over a directory of tab separated cash records",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.Configure(cmd.ErrOrStderr(), v.GetString(keyLogLevel), v.GetString(keyLogFormat))
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".", "ledger directory")
	flags.StringArray("filter", nil, "filter expression such as 'month==2025-01' (repeatable)")
	flags.Bool("split", false, "split records covering several months (default from config)")
	flags.Bool("nosplit", false, "do not split records covering several months")
	flags.String("config", "", "config file (default <dir>/cashbook.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", logger.FormatText, "log format (text, json)")

	_ = v.BindPFlag(keyDir, flags.Lookup("dir"))
	_ = v.BindPFlag(keyFilter, flags.Lookup("filter"))
	_ = v.BindPFlag(keyConfig, flags.Lookup("config"))
	_ = v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(keyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(
		newInitCommand(),
		newSumCommand(v),
		newPartyCommand(v),
		newTopayCommand(v),
		newTopayHTMLCommand(v),
		newCSVCommand(v),
		newGridCommand(v),
		newJSONPaymentsCommand(v),
		newStatsCommand(v),
		newStatsTSVCommand(v),
		newMakeBalanceCommand(v),
	)

	return rootCmd
}
