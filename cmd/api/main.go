package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/tmwanza/storefront-backend/internal/modules/auth"
	"github.com/tmwanza/storefront-backend/internal/modules/cart"
	"github.com/tmwanza/storefront-backend/internal/modules/catalog"
	"github.com/tmwanza/storefront-backend/internal/modules/contact"
	"github.com/tmwanza/storefront-backend/internal/modules/identity"
	"github.com/tmwanza/storefront-backend/internal/modules/order"
	"github.com/tmwanza/storefront-backend/internal/modules/stats"
	"github.com/tmwanza/storefront-backend/internal/modules/user"
	"github.com/tmwanza/storefront-backend/internal/modules/wishlist"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from the environment")
	}

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	// ── Repositories ────────────────────────────────────────
	// With DATABASE_URL set everything persists in PostgreSQL; without it
	// the service runs on the in-memory stores.
	var (
		authRepo    auth.Repository
		userRepo    user.Repository
		catalogRepo catalog.Repository
		cartRepo    cart.Repository
		wishRepo    wishlist.Repository
		orderRepo   order.Repository
		contactRepo contact.Repository
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Successfully connected to the database!")

		authRepo = auth.NewPostgresRepository(db)
		userRepo = user.NewPostgresRepository(db)
		catalogRepo = catalog.NewPostgresRepository(db)
		cartRepo = cart.NewPostgresRepository(db)
		wishRepo = wishlist.NewPostgresRepository(db)
		orderRepo = order.NewPostgresRepository(db)
		contactRepo = contact.NewPostgresRepository(db)
	} else {
		fmt.Println("DATABASE_URL not set, running with in-memory storage")
		catalogMem := catalog.NewMemoryRepository()
		cartMem := cart.NewMemoryRepository()

		authRepo = auth.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
		catalogRepo = catalogMem
		cartRepo = cartMem
		wishRepo = wishlist.NewMemoryRepository()
		orderRepo = order.NewMemoryRepository(catalogMem, cartMem)
		contactRepo = contact.NewMemoryRepository()
	}

	// ── Services ────────────────────────────────────────────
	userService := user.NewService(userRepo)
	authService := auth.NewService(authRepo, secret)
	catalogService := catalog.NewService(catalogRepo)
	cartService := cart.NewService(cartRepo, catalogRepo)
	wishlistService := wishlist.NewService(wishRepo, catalogRepo)
	orderService := order.NewService(orderRepo)
	statsService := stats.NewService(catalogRepo, orderRepo, userRepo)
	contactService := contact.NewService(contactRepo)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(identity.Middleware(secret, userService))

	auth.NewHandler(authService).RegisterRoutes(router)
	user.NewHandler(userService).RegisterRoutes(router)
	catalog.NewHandler(catalogService).RegisterRoutes(router)
	cart.NewHandler(cartService).RegisterRoutes(router)
	wishlist.NewHandler(wishlistService).RegisterRoutes(router)
	order.NewHandler(orderService).RegisterRoutes(router)
	stats.NewHandler(statsService).RegisterRoutes(router)
	contact.NewHandler(contactService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Storefront API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
