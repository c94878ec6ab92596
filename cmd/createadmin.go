/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fungi-kb/apiserver/config"
	"github.com/fungi-kb/apiserver/internal/db"
	"github.com/fungi-kb/apiserver/internal/services"
	"github.com/fungi-kb/apiserver/internal/store"
)

// createAdminCmd bootstraps the admin account from ADMIN_NAME, ADMIN_EMAIL
// and ADMIN_PASSWORD without starting the server.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin account from environment configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		userService := services.NewUserService(store.NewUserRepository(dbConn))
		if err := userService.EnsureAdmin(cmd.Context(), cfg.Admin); err != nil {
			return fmt.Errorf("create admin failed: %w", err)
		}

		fmt.Printf("admin account %s is ready\n", cfg.Admin.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)
}
