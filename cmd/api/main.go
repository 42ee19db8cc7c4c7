package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"villorya.app/internal/auth"
	"villorya.app/internal/config"
	"villorya.app/internal/httpapi"
	"villorya.app/internal/newsletter"
	"villorya.app/internal/obs"
	"villorya.app/internal/store"
)

var version = "1.2.0"

func main() {
	obs.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx := context.Background()
	if err := store.ApplySchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	st := store.NewSQLStore(db, cfg.Database.Driver)

	if err := seedAdmin(ctx, st); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, auth.WithAccessTTL(cfg.Auth.AccessTTL))
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	var sender newsletter.Sender
	if cfg.Newsletter.APIKey != "" {
		sender, err = newsletter.NewResendSender(cfg.Newsletter.APIKey, cfg.Newsletter.FromEmail)
		if err != nil {
			log.Fatalf("newsletter: %v", err)
		}
	} else {
		sender = newsletter.NewNoopSender()
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, st, tokens, sender, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting villorya-api %s on %s (driver=%s)", version, srv.Addr, cfg.Database.Driver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = db.Close()
	log.Println("Stopped")
}

// seedAdmin creates the initial console account from VILLORYA_ADMIN_EMAIL /
// VILLORYA_ADMIN_PASSWORD when no such user exists yet.
func seedAdmin(ctx context.Context, st store.Store) error {
	email := os.Getenv("VILLORYA_ADMIN_EMAIL")
	password := os.Getenv("VILLORYA_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	users := st.Users(ctx)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := auth.User{Email: email, PasswordHash: hash, Status: "active"}
	if err := users.Create(ctx, &user); err != nil {
		return err
	}
	log.Printf("Created admin account %s", email)
	return nil
}
