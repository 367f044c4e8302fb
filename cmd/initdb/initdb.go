package initdb

import (
	"fmt"

	"github.com/spf13/cobra"

	"minisocial/internal/config"
	"minisocial/internal/database"
)

func NewInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the database tables and indexes if they are missing",
		RunE:  initDBCommand,
	}
}

func initDBCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(cmd.Context(), db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date.")
	return nil
}
