package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"kitty/internal/activity"
	"kitty/internal/config"
	"kitty/internal/contribution"
	"kitty/internal/database"
	"kitty/internal/directory"
	"kitty/internal/expense"
	"kitty/internal/group"
	"kitty/internal/invitation"
	"kitty/internal/settlement"
	"kitty/internal/stats"
	"kitty/pkg/logging"
	mw "kitty/pkg/middleware"
)

// @title Kitty API
// @version 1.0
// @description Shared-group ledger and settlement API: pooled contributions, split expenses, and debt simplification.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	logging.Setup()
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	// Directory feature
	directoryRepo := directory.NewRepository(db)
	directoryService := directory.NewService(directoryRepo)

	// Invitation feature (built first: the group service mints invitation
	// tokens when a creator opens their group)
	invitationRepo := invitation.NewRepository(db)

	// Group feature
	groupRepo := group.NewRepository(db)

	invitationService := invitation.NewService(invitationRepo, groupRepo)
	groupService := group.NewService(groupRepo, directoryService, invitationService)

	groupHandler := group.NewHandler(groupService, cfg.InviteBasePath)
	invitationHandler := invitation.NewHandler(invitationService, cfg.InviteBasePath)

	// Contribution feature
	contributionRepo := contribution.NewRepository(db)
	contributionService := contribution.NewService(contributionRepo, groupRepo, directoryService)
	contributionHandler := contribution.NewHandler(contributionService)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, directoryService)
	expenseHandler := expense.NewHandler(expenseService)

	// Derived views over the two ledgers
	statsService := stats.NewService(groupRepo, contributionRepo, expenseRepo, directoryService)
	statsHandler := stats.NewHandler(statsService)

	settlementService := settlement.NewService(groupRepo, contributionRepo, expenseRepo, directoryService)
	settlementHandler := settlement.NewHandler(settlementService)

	activityService := activity.NewService(groupRepo, contributionRepo, expenseRepo)
	activityHandler := activity.NewHandler(activityService)

	authMiddleware := mw.AuthMiddleware(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, using test authentication via X-User-ID header")
		authMiddleware = mw.TestUserMiddleware
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Public: anyone holding an invitation link can inspect it before
		// signing in
		r.Get("/invitations/{token}/verify", invitationHandler.Verify)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Post("/invitations/{token}/accept", invitationHandler.Accept)

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", groupHandler.Create)
				r.Get("/", groupHandler.List)

				r.Route("/{groupID}", func(r chi.Router) {
					r.Get("/", groupHandler.Get)
					r.Put("/", groupHandler.Update)
					r.Delete("/", groupHandler.Delete)
					r.Delete("/members/{userID}", groupHandler.RemoveMember)
					r.Post("/leave", groupHandler.Leave)

					r.Post("/invitations", invitationHandler.Create)

					r.Mount("/contributions", contributionHandler.Routes())
					r.Mount("/expenses", expenseHandler.Routes())

					r.Get("/stats", statsHandler.Get)
					r.Get("/settlement", settlementHandler.Get)
					r.Get("/activity", activityHandler.Get)
				})
			})
		})
	})

	addr := ":" + cfg.Port
	slog.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
