package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/akil18/cop-shop-server-side/config"
	"github.com/akil18/cop-shop-server-side/internal/server"
	"github.com/akil18/cop-shop-server-side/pkg/app"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
)

var servePort string

// copshop serve: start the HTTP server.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run", "start"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			config.Set("PORT", servePort)
		}

		a, err := app.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(context.Background()); err != nil {
				logger.Error("shutdown: closing backends", "error", err)
			}
		}()

		return server.Start(cmd.Context(), ":"+config.AppPort(), a.Handler())
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides PORT)")
}
