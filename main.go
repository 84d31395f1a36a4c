package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/TEJ12356788/atmosphere/internal/auth"
	"github.com/TEJ12356788/atmosphere/internal/config"
	"github.com/TEJ12356788/atmosphere/internal/email"
	"github.com/TEJ12356788/atmosphere/internal/handlers"
	"github.com/TEJ12356788/atmosphere/internal/middleware"
	"github.com/TEJ12356788/atmosphere/internal/mq"
	"github.com/TEJ12356788/atmosphere/internal/service"
	"github.com/TEJ12356788/atmosphere/internal/store"
	"github.com/TEJ12356788/atmosphere/internal/store/filestore"
	"github.com/TEJ12356788/atmosphere/internal/store/mongostore"
	"github.com/TEJ12356788/atmosphere/internal/store/redisstore"
	"github.com/TEJ12356788/atmosphere/internal/store/sqlstore"
	"github.com/TEJ12356788/atmosphere/internal/ws"
)

var addr = flag.String("addr", "", "http service address (overrides HTTP_ADDR)")

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Store
	driver, err := openDriver(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	st := store.New(driver)
	defer st.Close()

	// Initialize WebSocket Hub
	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()
	ws.SetOriginCheck(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.OriginAllowed(cfg.AllowedOrigins, origin)
	})

	notifiers := service.Notifiers{hub}
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			log.Fatal(err)
		}
		defer pub.Close()
		notifiers = append(notifiers, pub)
		log.Println("Publishing notifications to exchange", cfg.NotifyExchange)
	}

	svc := service.New(st)
	svc.Notifier = notifiers
	svc.Mailer = email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	router := handlers.NewRouter(handlers.Deps{
		Service:        svc,
		Signer:         auth.NewSigner(cfg.SessionSecret, cfg.SessionTTL),
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on %s (store: %s)", cfg.HTTPAddr, cfg.StoreDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openDriver(ctx context.Context, cfg config.App) (store.Driver, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return sqlstore.New("sqlite3", cfg.SQLDSN)
	case "postgres":
		return sqlstore.New("postgres", cfg.SQLDSN)
	case "redis":
		return redisstore.New(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix)
	case "mongo":
		return mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return filestore.New(cfg.DataDir)
	}
}
