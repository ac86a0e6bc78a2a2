package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cleared-dev/cashbook/internal/aggregate"
	"github.com/cleared-dev/cashbook/internal/report"
)

func newSumCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "sum",
		Short: "Sum all transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, v)
			if err != nil {
				return err
			}
			total, err := aggregate.Balance(s.records)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), total.String())
			return err
		},
	}
}

func newPartyCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "party",
		Short: "Is it party time or not?",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, v)
			if err != nil {
				return err
			}
			verdict := "Fail"
			if aggregate.Party(s.records) {
				verdict = "Success"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), verdict)
			return err
		},
	}
}

func newTopayCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "topay",
		Short: "List all pending payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			months, err := pending(cmd, v)
			if err != nil {
				return err
			}
			return report.TopayText(cmd.OutOrStdout(), months)
		},
	}
}

func newTopayHTMLCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "topay_html",
		Short: "List all pending payments as HTML tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			months, err := pending(cmd, v)
			if err != nil {
				return err
			}
			return report.TopayHTML(cmd.OutOrStdout(), months)
		},
	}
}

func pending(cmd *cobra.Command, v *viper.Viper) ([]aggregate.MonthPayments, error) {
	s, err := open(cmd, v)
	if err != nil {
		return nil, err
	}
	return aggregate.PendingPayments(s.records, s.cfg.Payables)
}

func newCSVCommand(v *viper.Viper) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Output transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, v)
			if err != nil {
				return err
			}
			if out == "" {
				return report.CSV(cmd.OutOrStdout(), s.records)
			}
			return writeFile(out, func(w io.Writer) error {
				return report.CSV(w, s.records)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")

	return cmd
}

func newGridCommand(v *viper.Viper) *cobra.Command {
	var separate bool
	var days int

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show monthly sums per tag with a running balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, v)
			if err != nil {
				return err
			}

			label := aggregate.TagLabel(s.cfg.Grid.UntaggedLabel)
			if separate {
				label = aggregate.DirectionalTagLabel(s.cfg.Grid.UntaggedLabel)
			}
			g, err := aggregate.Accumulate(s.records, label)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("filter_hack") {
				days = s.cfg.Grid.WindowDays
			}
			g = g.Window(aggregate.WindowStart(s.today, days))
			return report.GridText(cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().BoolVar(&separate, "separate_inout", false, "separate incoming and outgoing rows per tag")
	cmd.Flags().IntVar(&days, "filter_hack", 0, "only display months within this many days; unset uses grid.window_days")

	return cmd
}

func newJSONPaymentsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "json_payments",
		Short: "Output the last payment date of every tag as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, v)
			if err != nil {
				return err
			}
			last, err := aggregate.LastPayments(s.records)
			if err != nil {
				return err
			}
			return report.LastPaymentsJSON(cmd.OutOrStdout(), last)
		},
	}
}

func newStatsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show monthly income, expenses and membership statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, st, err := stats(cmd, v)
			if err != nil {
				return err
			}
			rate, err := s.cfg.DuesRate()
			if err != nil {
				return err
			}
			return report.StatsText(cmd.OutOrStdout(), st, report.Project(st, rate, s.cfg.RoundingPolicy()))
		},
	}
}

func newStatsTSVCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "statstsv",
		Short: "Output the statistics as TSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, st, err := stats(cmd, v)
			if err != nil {
				return err
			}
			return report.StatsTSV(cmd.OutOrStdout(), st)
		},
	}
}

func stats(cmd *cobra.Command, v *viper.Viper) (*session, *aggregate.Stats, error) {
	s, err := open(cmd, v)
	if err != nil {
		return nil, nil, err
	}
	st, err := aggregate.ComputeStats(s.records, aggregate.StatsConfig{
		Reference:   s.current,
		Rounding:    s.cfg.RoundingPolicy(),
		DuesPattern: s.cfg.Dues.Pattern,
	})
	if err != nil {
		return nil, nil, err
	}
	return s, st, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
