package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orgdir/orgdir/internal/config"
	"github.com/orgdir/orgdir/internal/database"
	"github.com/orgdir/orgdir/internal/models"
	"github.com/orgdir/orgdir/internal/query"
	"github.com/orgdir/orgdir/internal/services"
	"github.com/orgdir/orgdir/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "orgdir",
	Short: "Organization directory admin CLI",
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := database.Migrate(cfg.Database, args[0]); err != nil {
			return fmt.Errorf("migrate %s: %w", args[0], err)
		}
		fmt.Printf("migrations %s applied\n", args[0])
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a small demo dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.NewDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		registry := query.NewRegistry()
		models.RegisterSearchTables(registry)
		companySvc := services.NewCompanyService(db.DB, registry)
		userSvc := services.NewUserService(db.DB, registry)

		acme, err := companySvc.CreateCompany(models.CompanyCreate{
			Name:    "Acme Corp",
			Address: "1 Main Street",
		})
		if err != nil {
			return fmt.Errorf("seed company: %w", err)
		}

		seedUsers := []models.UserCreate{
			{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Password: "changeme123", CompanyID: &acme.ID},
			{FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com", Password: "changeme123", CompanyID: &acme.ID},
			{FirstName: "Max", LastName: "Mustermann", Email: "max.mustermann@example.com", Password: "changeme123"},
		}
		for _, u := range seedUsers {
			if _, err := userSvc.CreateUser(u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
		}

		fmt.Printf("seeded 1 company and %d users\n", len(seedUsers))
		return nil
	},
}

func main() {
	logger.Init(logger.Config{Level: "warn", Format: "text"})

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
