package router

import (
	"coa-backend/internal/config"
	"coa-backend/internal/handler"
	"coa-backend/internal/models"
	"coa-backend/internal/repository"
	"coa-backend/internal/service"
	"coa-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	logger := utils.GetLogger()

	// Initialize repositories
	entityRepo := repository.NewEntityRepository(db)
	consolidationRepo := repository.NewConsolidationRepository(db)

	// Initialize services
	excelService := service.NewExcelService()
	importService := service.NewImportService(entityRepo, excelService, cfg.ImportErrorLimit, logger)
	consolidationService := service.NewConsolidationService(consolidationRepo, logger)

	// Background imports (optional - only if Redis is available)
	var importQueue handler.ImportQueue
	if redis != nil {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
		jobRepo := repository.NewImportJobRepository(redis, cfg.ImportJobTTL)
		importQueue = service.NewImportJobService(jobRepo, asynqClient, logger)
	}

	// Initialize handlers
	importHandler := handler.NewImportHandler(importService, importQueue, entityRepo, excelService, cfg, logger)
	consolidationHandler := handler.NewConsolidationHandler(consolidationService)

	// Spreadsheet routes
	router.Post("/import/:type", importHandler.Import)
	router.Get("/import/jobs/:id", importHandler.JobStatus)
	router.Get("/download-template/:type", importHandler.DownloadTemplate)
	router.Get("/export/:type", importHandler.Export)

	// Entity routes
	mountEntity(router, handler.NewEntityHandler[models.MainGroup](
		models.MainGroupSchema, entityRepo, "Main group created successfully"))
	mountEntity(router, handler.NewEntityHandler[models.SubGroup](
		models.SubGroupSchema, entityRepo, "Sub group created successfully"))
	mountEntity(router, handler.NewEntityHandler[models.Ledger](
		models.LedgerSchema, entityRepo, "Ledger created successfully"))
	mountEntity(router, handler.NewEntityHandler[models.Division](
		models.DivisionSchema, entityRepo, "Division created successfully"))
	linkHandler := handler.NewConsolidationLinkHandler(entityRepo)
	mountEntity(router, linkHandler)

	// Consolidation routes
	consolidated := router.Group("/consolidated")
	consolidated.Get("/", consolidationHandler.View)
	consolidated.Post("/", linkHandler.Create)
	consolidated.Get("/active", consolidationHandler.Active)
	consolidated.Get("/inactive", consolidationHandler.Inactive)
	consolidated.Get("/ledger/:ledger_code", consolidationHandler.ByLedger)
	consolidated.Post("/merge", consolidationHandler.Merge)
	consolidated.Post("/demerge/:ledger_code", consolidationHandler.Demerge)
	consolidated.Put("/:id", consolidationHandler.Update)
	consolidated.Delete("/:id", consolidationHandler.Delete)
}

type entityRoutes interface {
	Resource() string
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
}

func mountEntity(router fiber.Router, h entityRoutes) {
	path := "/" + h.Resource()
	router.Get(path, h.List)
	router.Post(path, h.Create)
}
