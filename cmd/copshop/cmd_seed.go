package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akil18/cop-shop-server-side/config"
	"github.com/akil18/cop-shop-server-side/database/seeders"
	"github.com/akil18/cop-shop-server-side/pkg/app"
)

var seedFile string

// copshop seed --file categories.json
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert category seed documents from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(context.Background()) //nolint:errcheck

		fmt.Println("Running seeders…")
		return seeders.Run(cmd.Context(), a.Store, os.Stdout, seeders.Categories(seedFile, a.Cache, config.CategoryCacheTTL()))
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "config/categories.json", "JSON array of category documents")
}
