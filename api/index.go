package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farm-fresh/app"
	"farm-fresh/config"
)

var (
	router  *gin.Engine
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		logger, err := config.NewLogger(config.AppConfig)
		if err != nil {
			logger = zap.NewNop()
		}

		application, err := app.New(context.Background(), config.AppConfig, logger)
		if err != nil {
			initErr = err
			logger.Error("serverless init failed", zap.Error(err))
			return
		}
		router = application.Router
	})
}

// Handler is the serverless entry point. Sessions live only as long as the
// function instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		http.Error(w, `{"success":false,"message":"service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	router.ServeHTTP(w, r)
}
