package reconcile

import (
	"fmt"

	"github.com/spf13/cobra"

	"purser/internal/infrastructure/config"
	"purser/internal/infrastructure/database"
	"purser/internal/infrastructure/migration"
	"purser/internal/shared/logger"
)

var (
	env    string
	table  string
	column string
	dryRun bool
)

// NewCommand exposes the batch backfill as a CLI operation. A run is always
// safe to repeat: rows already carrying a value are skipped, and each batch
// commits on its own so an interrupted run keeps its progress.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Backfill a column across existing rows",
		Long: `Reconcile scans a table in fixed-size batches and fills the target column
on rows that are missing a value. Batches commit sequentially, so the run can
be interrupted and repeated without losing or redoing committed work.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&table, "table", "", "Table to reconcile (required)")
	cmd.Flags().StringVar(&column, "column", "", "Column to backfill (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("column")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	reconciler := migration.NewReconciler(database.Get(), log)

	summary, err := reconciler.Run(cmd.Context(), table, column, dryRun)
	if err != nil {
		return err
	}

	fmt.Println(summary.String())
	return nil
}
