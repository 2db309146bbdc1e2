package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"elitex/configs"
	"elitex/internal/database"
	delivery "elitex/internal/delivery/http"
	"elitex/internal/domain"
	"elitex/internal/infra"
	"elitex/internal/localstore"
	"elitex/internal/service"
	"elitex/internal/store"
	"elitex/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()
	ctx := context.Background()

	// Remote store is optional; a nil pool means cache-only mode.
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cache, err := localstore.New(cfg.Cache.Dir)
	if err != nil {
		log.Fatalf("Failed to open local cache: %v", err)
	}

	adapter := store.New(db, cache)
	ledger := usecase.NewLedgerService(adapter)

	ensureAdminUser(ctx, adapter, ledger, cfg.Admin)

	priceService := service.NewPriceService(time.Now().UnixNano())
	scheduler := infra.NewScheduler(priceService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start price scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:  delivery.NewAuthHandler(ledger, adapter, priceService, cfg.Ledger.StartingBalance),
		UserHandler:  delivery.NewUserHandler(ledger, adapter, priceService),
		AdminHandler: delivery.NewAdminHandler(ledger, adapter, priceService),
	})

	go func() {
		addr := ":" + cfg.Server.Port
		log.Printf("Elite Exchange API starting on %s (env: %s, remote store: %v)",
			addr, cfg.Server.Env, adapter.RemoteConfigured())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// ensureAdminUser seeds the administrator record from configuration. The
// password lives only in the environment and only its bcrypt hash is stored.
func ensureAdminUser(ctx context.Context, adapter *store.Adapter, ledger *usecase.LedgerService, admin configs.AdminConfig) {
	if admin.Password == "" {
		log.Println("WARNING: ADMIN_PASSWORD not set, skipping admin seeding")
		return
	}

	existing, err := ledger.GetUserByEmail(ctx, admin.Email)
	if err == nil {
		log.Printf("[OK] Using existing admin user: %s", existing.ID)
		return
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		log.Printf("WARNING: failed to look up admin user: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("WARNING: failed to hash admin password: %v", err)
		return
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         "Master Admin",
		Email:        admin.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Portfolio:    domain.NewPortfolio(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := adapter.SyncUser(ctx, user); err != nil && !errors.Is(err, domain.ErrRemoteSyncPending) {
		log.Printf("WARNING: failed to seed admin user: %v", err)
		return
	}

	log.Printf("[OK] Seeded admin user %s", admin.Email)
}
