package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cleared-dev/cashbook/internal/aggregate"
	"github.com/cleared-dev/cashbook/internal/gitops"
	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/logger"
	"github.com/cleared-dev/cashbook/internal/store"
)

// balanceComment marks the record written by make_balance.
const balanceComment = "balance"

func newMakeBalanceCommand(v *viper.Viper) *cobra.Command {
	var out string
	var commit bool

	cmd := &cobra.Command{
		Use:   "make_balance",
		Short: "Collapse the ledger into a single balance record",
		Long: `Sum the selected records into one record dated today. With --out the
record is written to DIR/<direction>-balance-<date>, a ledger file that can
replace the history it summarises; otherwise it is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if commit && out == "" {
				return errors.New("--commit needs --out")
			}
			s, err := open(cmd, v)
			if err != nil {
				return err
			}
			total, err := aggregate.Balance(s.records)
			if err != nil {
				return err
			}
			rec := ledger.Synthesize(total, s.today, balanceComment)

			var repo *gitops.Repo
			if commit {
				if repo, err = gitops.Open(out, s.cfg.Git.AuthorName, s.cfg.Git.AuthorEmail); err != nil {
					return err
				}
			}

			if out == "" {
				return store.WriteRecords(cmd.OutOrStdout(), []ledger.Record{rec})
			}
			path, err := store.WriteFile(out, rec.Direction(), "balance-"+s.today.String(), []ledger.Record{rec})
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())
			log.Info().Str("path", path).Str("balance", total.String()).Msg("wrote balance")

			if repo != nil {
				hash, err := repo.Commit(cmd.Context(), "balance: "+s.today.String(), filepath.Base(path))
				if err != nil {
					return err
				}
				log.Info().Str("commit", hash).Msg("committed balance")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "directory to write the balance ledger file to")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the balance file when --out is a git repository")

	return cmd
}
