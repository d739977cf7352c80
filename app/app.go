// Package app assembles the storefront from configuration: catalog source,
// cache, image and mail integrations, services and the HTTP router.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"farm-fresh/config"
	"farm-fresh/libs"
	"farm-fresh/repositories"
	"farm-fresh/routes"
	"farm-fresh/services"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Router   *gin.Engine
	Sessions *services.SessionService
	Orders   *services.SimulatedOrderSubmitter

	closers []func()
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	repo, err := a.catalogRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := repositories.EnsureProducts(ctx, repo); err != nil {
		a.Close()
		return nil, err
	}

	images := libs.NewImageResolver(libs.CloudinaryCredentials{
		URL:       cfg.CloudinaryURL,
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
	}, cfg.CloudinaryFolder, cfg.AssetBaseURL, logger)

	var sender services.ConfirmationSender
	smtp := libs.SMTPSettings{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}
	if smtp.Configured() {
		mailer, err := libs.NewMailer(smtp, logger)
		if err != nil {
			logger.Warn("order emails disabled", zap.Error(err))
		} else {
			sender = mailer
		}
	}

	catalog := services.NewCatalogService(repo, images)
	carts := services.NewCartService(catalog, images, cfg.FreeDeliveryThreshold)
	a.Orders = services.NewSimulatedOrderSubmitter(sender, logger)
	a.Sessions = services.NewSessionService(a.Orders, services.SessionOptions{
		TTL:               cfg.SessionTTL,
		ProcessingDelay:   cfg.ProcessingDelay,
		ConfirmationDelay: cfg.ConfirmationDelay,
		Logger:            logger,
	})

	a.Router = routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Catalog:  catalog,
		Carts:    carts,
		Sessions: a.Sessions,
	})
	return a, nil
}

func (a *App) catalogRepository(ctx context.Context) (repositories.CatalogRepository, error) {
	var repo repositories.CatalogRepository

	switch a.Config.CatalogSource {
	case "postgres":
		if err := config.RunMigrations(a.Config, a.Logger); err != nil {
			return nil, err
		}
		pool, err := config.ConnectDB(ctx, a.Config, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		repo = repositories.NewPostgresCatalogRepository(pool)
	case "fixture", "":
		fixture, err := repositories.NewFixtureCatalogRepository(a.Config.CatalogFile)
		if err != nil {
			return nil, err
		}
		repo = fixture
	default:
		return nil, fmt.Errorf("unknown catalog source %q", a.Config.CatalogSource)
	}

	a.Logger.Info("catalog source ready", zap.String("source", a.Config.CatalogSource))

	client := config.ConnectRedis(ctx, a.Config, a.Logger)
	if client == nil {
		return repo, nil
	}
	a.closers = append(a.closers, func() { client.Close() })

	cached := repositories.WithCache(repo, client, a.Config.CatalogCacheTTL, a.Logger)
	if c, ok := cached.(*repositories.CachedCatalogRepository); ok {
		// The source may have changed since the last run.
		if err := c.Invalidate(ctx); err != nil {
			a.Logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}
	return cached, nil
}

// Close releases database and cache connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
