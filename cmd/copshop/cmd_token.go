package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/app/services"
	"github.com/akil18/cop-shop-server-side/pkg/app"
)

var tokenEmail string

// copshop token --email x: issue an access token for an existing user.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for a registered user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(context.Background()) //nolint:errcheck

		auth := services.NewAuthService(repositories.NewUserRepository(a.Store), a.Signer)
		token, err := auth.IssueToken(cmd.Context(), tokenEmail)
		if err != nil {
			return fmt.Errorf("token for %q: %w", tokenEmail, err)
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenEmail, "email", "e", "", "user email")
	tokenCmd.MarkFlagRequired("email") //nolint:errcheck
}
