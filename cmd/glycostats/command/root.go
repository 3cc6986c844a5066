package command

import (
	"context"
	"fmt"
	"os"

	"glycostats/engine"
	"glycostats/engine/defs"
	"glycostats/engine/pkg/mg"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	production bool

	cfg defs.Config
)

var rootCmd = &cobra.Command{
	Use:   "glycostats",
	Short: "Glycemia, carbs and insulin statistics",
	Long:  "glycostats computes time in range, glucose variability, carbs and insulin statistics over diabetes device data",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = engine.LoadConfig(configFile)
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return fmt.Errorf("unable to create logger: %w", err)
		}
		cfg.Logger = logger

		logger.Debug("loaded config", zap.String("file", configFile), zap.String("timezone", cfg.Timezone))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cfg.Logger != nil {
			_ = cfg.Logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "f", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&production, "production", false, "use the production logger")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newStore(ctx context.Context) (*mg.MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, defs.TimeoutInterval)
	defer cancel()
	return mg.New(ctx, cfg.Mongo, cfg.Logger)
}
