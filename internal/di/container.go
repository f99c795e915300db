package di

import (
	"log/slog"

	adsRepo "github.com/KevinKolb/CableGuide/internal/modules/ads/repository"
	adsService "github.com/KevinKolb/CableGuide/internal/modules/ads/service"
	feedService "github.com/KevinKolb/CableGuide/internal/modules/feed/service"
	gridService "github.com/KevinKolb/CableGuide/internal/modules/grid/service"
	guideRepo "github.com/KevinKolb/CableGuide/internal/modules/guide/repository"
	guideService "github.com/KevinKolb/CableGuide/internal/modules/guide/service"
	listingsClient "github.com/KevinKolb/CableGuide/internal/modules/listings/client"
	listingsService "github.com/KevinKolb/CableGuide/internal/modules/listings/service"
	sessionRepo "github.com/KevinKolb/CableGuide/internal/modules/session/repository"
	sessionService "github.com/KevinKolb/CableGuide/internal/modules/session/service"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	httpServer "github.com/KevinKolb/CableGuide/internal/transport/http"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Guide Repository
	do.Provide(injector, func(i do.Injector) (guideRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := guideRepo.NewXMLStorage(cfg.GuidePath)
		if err != nil {
			return nil, oops.With("guide_path", cfg.GuidePath, "context", "failed to initialize guide repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Ads Repository
	do.Provide(injector, func(i do.Injector) (adsRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return adsRepo.NewXMLStorage(cfg.AdsPath), nil
	})

	// Register Visit Repository
	do.Provide(injector, func(i do.Injector) (sessionRepo.VisitRepository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := sessionRepo.NewFileStorage(cfg.DataPath)
		if err != nil {
			return nil, oops.With("data_path", cfg.DataPath, "context", "failed to initialize visit repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Guide Service
	do.Provide(injector, func(i do.Injector) (*guideService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[guideRepo.Repository](i)
		return guideService.New(cfg, repo), nil
	})

	// Register Grid Service
	do.Provide(injector, func(i do.Injector) (*gridService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return gridService.New(cfg), nil
	})

	// Register Ads Service
	do.Provide(injector, func(i do.Injector) (*adsService.Service, error) {
		repo := do.MustInvoke[adsRepo.Repository](i)
		return adsService.New(repo, nil), nil
	})

	// Register Session Service
	do.Provide(injector, func(i do.Injector) (*sessionService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		visits := do.MustInvoke[sessionRepo.VisitRepository](i)
		return sessionService.New(cfg, visits), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		guide := do.MustInvoke[*guideService.Service](i)
		return feedService.New(guide), nil
	})

	// Register Listings Client
	do.Provide(injector, func(i do.Injector) (*listingsClient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return listingsClient.New(cfg.ListingsAPIURL, cfg.APIKey), nil
	})

	// Register Listings Service
	do.Provide(injector, func(i do.Injector) (*listingsService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*listingsClient.Client](i)
		guide := do.MustInvoke[*guideService.Service](i)
		return listingsService.New(cfg, client, guide), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		guide := do.MustInvoke[*guideService.Service](i)
		grid := do.MustInvoke[*gridService.Service](i)
		ads := do.MustInvoke[*adsService.Service](i)
		sessions := do.MustInvoke[*sessionService.Service](i)
		feed := do.MustInvoke[*feedService.Service](i)
		listings := do.MustInvoke[*listingsService.Service](i)
		server := httpServer.New(cfg, guide, grid, ads, sessions, feed, listings)
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	// Stop the listings refresh loop if it exists
	if listings, err := do.Invoke[*listingsService.Service](injector); err == nil && listings != nil {
		listings.Stop()
	}

	return nil
}
