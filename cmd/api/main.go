package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "lendify/docs"
	"lendify/internal/config"
	"lendify/internal/dashboard"
	"lendify/internal/database"
	"lendify/internal/item"
	"lendify/internal/loan"
	"lendify/internal/member"
)

// @title           Lendify API
// @version         1.0
// @description     Lending catalog: members, lendable items, loans and reporting.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to apply database schema: %v", err)
	}

	log.Println("Connected to database successfully")

	// Member registry
	memberRepo := member.NewRepository(db)
	memberService := member.NewService(memberRepo)
	memberHandler := member.NewHandler(memberService)

	// Item registry
	itemRepo := item.NewRepository(db)
	itemService := item.NewService(itemRepo, memberRepo)
	itemHandler := item.NewHandler(itemService)

	// Loan lifecycle
	loanRepo := loan.NewRepository(db)
	loanService := loan.NewService(loanRepo, itemRepo, memberRepo)
	loanHandler := loan.NewHandler(loanService)

	// Dashboard / reporting
	dashboardService := dashboard.NewService(loanRepo, itemRepo, memberRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/members", memberHandler.Routes())
		r.Mount("/items", itemHandler.Routes())
		// Static route wins over the mounted wildcard below.
		r.Get("/loans/history", dashboardHandler.History)
		r.Mount("/loans", loanHandler.Routes())
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
