package command

import (
	"context"

	"glycostats/engine"
	"glycostats/engine/pkg/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve statistics over HTTP",
	Long:  "The serve command exposes GET /stats and GET /bounds backed by the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if production {
			gin.SetMode(gin.ReleaseMode)
		}

		ms, err := newStore(cmd.Context())
		if err != nil {
			return err
		}
		defer ms.Client.Disconnect(context.Background())

		reporter, err := engine.NewReporter(ms, cfg)
		if err != nil {
			return err
		}
		return http.New(reporter, cfg.Logger).Run(cfg.HTTP.Address)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
