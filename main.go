package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "airportbot/internal/config"
	intdb "airportbot/internal/db"
	router "airportbot/internal/http"
	"airportbot/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	log := utils.Logger()
	defer func() { _ = log.Sync() }()

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer intconfig.CloseDB()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intdb.EnsureSchema(schemaCtx, db); err != nil {
		cancelSchema()
		log.Fatal("schema setup failed", zap.Error(err))
	}
	cancelSchema()

	app := buildAPI(context.Background(), env)
	defer app.Close()

	r := router.NewRouter(env, app.API)

	// Chat turns call TTS and lip-sync per message, so writes get a long budget.
	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
