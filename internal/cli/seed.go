package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rag-assessment/internal/config"
	"rag-assessment/internal/infra/filesystem"
	"rag-assessment/internal/infra/postgres"
)

// NewSeedCmd validates a definition document and upserts it into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Store a definition document in Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			def, err := filesystem.ReadFile(args[0])
			if err != nil {
				return err
			}
			if id != "" {
				def.ID = id
			}

			db := postgres.Open(cfg.Postgres.URL)
			defer db.Close()
			if _, err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			if err := postgres.SaveDefinition(cmd.Context(), db, def); err != nil {
				return err
			}
			log.Info("definition seeded", "definition", def.ID, "questions", def.QuestionCount())
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "store under this id instead of the document's")
	return cmd
}
