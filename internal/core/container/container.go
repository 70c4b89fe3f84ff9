package container

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/catalog"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/changelog"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/items"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/legacy"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/sku"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/users"
)

// Container wires repositories, services and handlers in one place so main
// only has to register routes.
type Container struct {
	Repository       *repository.Repository
	Recorder         *changelog.Recorder
	ItemHandler      *items.ItemHandler
	LegacyHandler    *legacy.LegacyHandler
	CatalogHandler   *catalog.CatalogHandler
	ChangeLogHandler *changelog.ChangeLogHandler
	UserHandler      *users.UsersHandler
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	changeLogRepo := changelog.NewRepository(repo)
	recorder := changelog.NewRecorder(changeLogRepo, logger)

	counterRepo := sku.NewCounterRepository(repo)
	itemRepo := items.NewRepository(repo, counterRepo)
	itemService := items.NewService(itemRepo, recorder)

	catalogRepo := catalog.NewRepository(repo)
	csvService := items.NewCsvService(itemService, catalogRepo, itemRepo)

	userRepo := users.NewRepository(repo)

	return &Container{
		Repository:       repo,
		Recorder:         recorder,
		ItemHandler:      items.NewHandler(itemService, csvService),
		LegacyHandler:    legacy.NewHandler(itemService, csvService),
		CatalogHandler:   catalog.NewHandler(catalogRepo),
		ChangeLogHandler: changelog.NewHandler(changeLogRepo),
		UserHandler:      users.NewHandler(userRepo),
	}
}
