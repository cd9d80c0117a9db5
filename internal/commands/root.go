package commands

import (
	"coa-backend/internal/config"
	"coa-backend/internal/database"
	"coa-backend/internal/repository"
	"coa-backend/internal/service"
	"coa-backend/internal/utils"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the chartctl command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartctl",
		Short: "Maintain the chart of accounts from the command line",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newDemergeCommand())

	return rootCmd
}

// env holds the services a subcommand runs against.
type env struct {
	cfg           *config.Config
	db            *sqlx.DB
	importer      *service.ImportService
	consolidation *service.ConsolidationService
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.NewMySQL(cfg)
	if err != nil {
		return nil, err
	}

	logger := utils.GetLogger()
	return &env{
		cfg: cfg,
		db:  db,
		importer: service.NewImportService(
			repository.NewEntityRepository(db),
			service.NewExcelService(),
			cfg.ImportErrorLimit,
			logger,
		),
		consolidation: service.NewConsolidationService(repository.NewConsolidationRepository(db), logger),
	}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}
