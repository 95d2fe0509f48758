package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/config"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/handler"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/middleware"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/repository"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/service"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("failed to load config: %v", err)
		}
		log.Printf("config file %s not found, using defaults", *configPath)
		cfg = config.Default()
	}

	st, err := store.Open(store.Options{
		Dir:      cfg.Storage.Dir,
		InMemory: cfg.Storage.InMemory,
		PageSize: cfg.Paging.PageSize,
	})
	if err != nil {
		log.Fatalf("failed to open report store: %v", err)
	}
	defer st.Close()

	dec := &compact.Decoder{Codec: compact.GzipCodec{}, StrictFieldMap: cfg.Codec.StrictFieldMap}
	restored, err := st.LoadPersisted(dec)
	if err != nil {
		log.Fatalf("failed to load persisted reports: %v", err)
	}
	if restored > 0 {
		log.Printf("restored %d report(s)", restored)
	}

	repo, err := repository.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize repository: %v", err)
	}
	defer repo.Close()
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Printf("corrections database unavailable, flushes will fail until it returns: %v", err)
	}

	svc := service.New(st, repo, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.Audit)
	r.Use(middleware.Metrics)

	handler.Register(r, svc, cfg)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("starting server on %s", addr)

	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down server...")
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
