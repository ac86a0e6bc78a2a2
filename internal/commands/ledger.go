package commands

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cleared-dev/cashbook/internal/config"
	"github.com/cleared-dev/cashbook/internal/ledger"
	"github.com/cleared-dev/cashbook/internal/logger"
	"github.com/cleared-dev/cashbook/internal/month"
	"github.com/cleared-dev/cashbook/internal/store"
)

// session is the loaded, split and filtered ledger a report runs on.
type session struct {
	cfg     *config.Config
	records *ledger.Collection
	today   civil.Date
	current string // month of today
}

// open runs the shared pipeline: find the config, load the ledger
// directory, split multi-month records and apply the --filter expressions.
func open(cmd *cobra.Command, v *viper.Viper) (*session, error) {
	dir := v.GetString(keyDir)
	log := logger.WithFields(logger.FromContext(cmd.Context()), map[string]any{
		"command": cmd.Name(),
		"dir":     dir,
	})

	cfg, cfgPath, err := config.Discover(dir, v.GetString(keyConfig))
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		log.Debug().Str("path", cfgPath).Msg("loaded config")
	}

	records, err := store.Load(dir, cfg.Ignored())
	if err != nil {
		return nil, err
	}
	log.Debug().Int("records", records.Len()).Msg("loaded ledger")

	split, err := splitEnabled(cmd, cfg)
	if err != nil {
		return nil, err
	}
	if split {
		records, err = records.AutoSplit(cfg.RoundingPolicy())
		if err != nil {
			return nil, fmt.Errorf("splitting records: %w", err)
		}
		log.Debug().Int("records", records.Len()).Msg("split records")
	}

	today := civil.DateOf(now())
	current := month.Of(today)

	if exprs := v.GetStringSlice(keyFilter); len(exprs) > 0 {
		records, err = records.Filter(current, exprs)
		if err != nil {
			return nil, err
		}
		log.Debug().Strs("filters", exprs).Int("records", records.Len()).Msg("filtered records")
	}

	return &session{cfg: cfg, records: records, today: today, current: current}, nil
}

func splitEnabled(cmd *cobra.Command, cfg *config.Config) (bool, error) {
	flags := cmd.Flags()
	split, _ := flags.GetBool("split")
	nosplit, _ := flags.GetBool("nosplit")
	switch {
	case split && nosplit:
		return false, errors.New("--split and --nosplit are mutually exclusive")
	case split:
		return true, nil
	case nosplit:
		return false, nil
	}
	return cfg.Split, nil
}
