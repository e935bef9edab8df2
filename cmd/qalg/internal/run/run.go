// Package run wires cobra/pflag flags to the qalg library for the
// cmd/qalg driver.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gabereiser/qalg/builder"
	"github.com/gabereiser/qalg/exec"
	"github.com/gabereiser/qalg/qconfig"
	"github.com/gabereiser/qalg/qlog"
	"github.com/gabereiser/qalg/storage"
)

// Command builds the root cobra command.
func Command() *cobra.Command {
	var configPath string
	var dataPath string
	var field string
	var value string

	cmd := &cobra.Command{
		Use:   "qalg",
		Short: "Run a filter(field == value) query against a JSON row file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := qconfig.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			log := qlog.Default()
			if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				log.Logger.SetLevel(lvl)
			}

			rows, err := loadRows(dataPath)
			if err != nil {
				return fmt.Errorf("loading data: %w", err)
			}

			table := storage.NewMemory(dataPath)
			for _, r := range rows {
				table.Insert(r)
			}

			ctx := context.Background()
			if cfg.QueryTimeoutSeconds > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.QueryTimeoutSeconds)*time.Second)
				defer cancel()
			}

			q := builder.C(table).Filter(builder.C0().Attr(field).Eq(value))
			x := &exec.Executor{Logger: log}
			result, err := x.Execute(ctx, q.Node())
			if err != nil {
				return fmt.Errorf("executing query: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "qalg.toml", "path to a TOML config file")
	flags.StringVar(&dataPath, "data", "", "path to a JSON array of row objects")
	flags.StringVar(&field, "field", "", "field name to filter on")
	flags.StringVar(&value, "value", "", "value to filter for (string equality)")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("field")
	cmd.MarkFlagRequired("value")

	return cmd
}

func loadRows(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rows []map[string]any
	if err := json.NewDecoder(f).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
