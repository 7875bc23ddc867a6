package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quote_calculator/docs"
	"quote_calculator/internal/adapter/http/handlers"
	"quote_calculator/internal/adapter/http/middleware"
	"quote_calculator/internal/adapter/persistence/filestore"
	"quote_calculator/internal/adapter/persistence/repository"
	"quote_calculator/internal/adapter/persistence/sqlstore"
	"quote_calculator/internal/infrastructure/config"
	"quote_calculator/internal/infrastructure/database"
	"quote_calculator/internal/infrastructure/disk"
	"quote_calculator/internal/infrastructure/scheduler"
	"quote_calculator/internal/usecase"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 15 * time.Second

// Run will start the server and block until SIGINT or SIGTERM.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Backend, err)
	}

	app := newApplication(cfg, store)
	router := gin.New()
	setMiddlewares(router)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	app.registerRoutes(router)

	monitor := scheduler.NewDiskMonitor(app.guard, cfg.DiskMonitorSpec)
	if err := monitor.Start(); err != nil {
		log.Printf("Disk monitor disabled: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[server] listening port=%d storage=%s", cfg.Port, store.Kind())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err.Error())
		}
	}()

	<-ctx.Done()
	log.Printf("[server] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown err=%v", err)
	}
	monitor.Stop()
	app.saves.Flush(shutdownCtx)
	if err := store.Close(); err != nil {
		log.Printf("[server] close storage err=%v", err)
	}
}

// openStore selects the storage backend once; nothing downstream branches
// on it.
func openStore(ctx context.Context, cfg config.Config) (interfaces.IStore, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.New(cfg.DataDir)
	case config.BackendSQLite:
		db, err := database.OpenRelational(database.DialectSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db, database.DialectSQLite)
	case config.BackendPostgres:
		db, err := database.OpenRelational(database.DialectPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db, database.DialectPostgres)
	case config.BackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, err
		}
		return repository.NewDynamoStore(ddb), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

type application struct {
	store     interfaces.IStore
	guard     *usecase.DiskSpaceGuard
	estimates *usecase.EstimateUseCase
	saves     *usecase.SaveTransactionUseCase
	backups   *usecase.BackupUseCase
	transfers *usecase.TransferUseCase
	settings  *usecase.SettingsUseCase
}

func newApplication(cfg config.Config, store interfaces.IStore) *application {
	guard := usecase.NewDiskSpaceGuard(disk.NewStatfsProbe(cfg.DataDir), cfg.MinFreeBytes(), cfg.WarnFreeBytes())
	guarded := usecase.GuardStore(store, guard)
	locks := usecase.NewLockTable()
	validator := usecase.NewEstimateValidator()
	backups := usecase.NewBackupUseCase(guarded.Backups(), guarded.Estimates())

	return &application{
		store:     guarded,
		guard:     guard,
		estimates: usecase.NewEstimateUseCase(guarded.Estimates(), backups, locks),
		saves: usecase.NewSaveTransactionUseCase(guarded.Estimates(), backups, guard, validator, locks,
			usecase.TransactionOptions{
				PrepareTimeout: cfg.PrepareTimeout,
				CommitTimeout:  cfg.CommitTimeout,
				TxTTL:          cfg.TxTTL,
			}, cfg.AutosaveQuiet),
		backups:   backups,
		transfers: usecase.NewTransferUseCase(guarded, backups, guard, usecase.NewImportValidator(validator), locks),
		settings:  usecase.NewSettingsUseCase(guarded.Catalogs()),
	}
}

func (a *application) registerRoutes(router *gin.Engine) {
	health := handlers.NewHealthHandler(a.guard, a.store.Kind())
	addPingRoutes(router, health)

	api := router.Group("/api")
	addPingRoutes(api, health)
	addEstimateRoutes(api, middleware.DiskSpace(a.guard),
		handlers.NewEstimateHandler(a.estimates),
		handlers.NewSaveHandler(a.saves),
		handlers.NewBackupHandler(a.backups, a.saves),
		handlers.NewTransferHandler(a.transfers),
		handlers.NewSettingsHandler(a.settings),
	)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
