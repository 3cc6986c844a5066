package command

import (
	"context"
	"os"
	"os/signal"
	"time"

	"glycostats/engine"
	"glycostats/engine/pkg/dexcom"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var interval time.Duration

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import sensor readings from Dexcom Share",
	Long:  "The import command copies the latest Dexcom Share readings into the store, once or every interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ms, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer ms.Client.Disconnect(context.Background())

		im := &engine.Importer{
			Source: dexcom.New(cfg.Dexcom.Account, cfg.Dexcom.Password, cfg.Timezone, cfg.Logger),
			Store:  ms,
			Logger: cfg.Logger,
		}

		if interval <= 0 {
			_, err := im.FetchAndLoad(ctx)
			return err
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if _, err := im.FetchAndLoad(ctx); err != nil {
				cfg.Logger.Info("unable to import readings", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	importCmd.Flags().DurationVar(&interval, "interval", 0, "import every interval until interrupted, once when zero")
	rootCmd.AddCommand(importCmd)
}
