package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cbsinteractive/footage-timecode/config"
	"github.com/cbsinteractive/footage-timecode/db"
	_ "github.com/cbsinteractive/footage-timecode/db/memory"
	_ "github.com/cbsinteractive/footage-timecode/db/redis"
	"github.com/cbsinteractive/footage-timecode/service"
	"github.com/cbsinteractive/footage-timecode/service/exceptions"
	"github.com/google/gops/agent"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.EnableGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Fatalf("starting gops agent: %v", err)
		}
		defer agent.Close()
	}

	reporter, err := exceptions.New(cfg.SentryDSN, cfg.Env)
	if err != nil {
		logger.Fatalf("configuring exception reporter: %v", err)
	}

	repo, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("opening %s report store: %v", cfg.ReportStore, err)
	}

	svc, err := service.New(cfg, repo, logger, reporter)
	if err != nil {
		logger.Fatal("unable to initialize service: ", err)
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: svc.Handler(),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}()

	logger.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server encountered a fatal error: ", err)
	}
	<-done
}
