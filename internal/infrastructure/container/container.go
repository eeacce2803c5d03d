// Package container wires the application together with Uber FX.
package container

import (
	"context"
	"fmt"
	"os"

	catalogapp "github.com/foodgram/backend/internal/application/catalog"
	"github.com/foodgram/backend/internal/application/ingredient"
	organizerapp "github.com/foodgram/backend/internal/application/organizer"
	recipeapp "github.com/foodgram/backend/internal/application/recipe"
	shoppingapp "github.com/foodgram/backend/internal/application/shopping"
	userapp "github.com/foodgram/backend/internal/application/user"
	"github.com/foodgram/backend/internal/infrastructure/config"
	"github.com/foodgram/backend/internal/infrastructure/http/apiserver"
	"github.com/foodgram/backend/internal/infrastructure/http/handlers"
	"github.com/foodgram/backend/internal/infrastructure/persistence"
	gormrepo "github.com/foodgram/backend/internal/infrastructure/persistence/gorm"
	"github.com/foodgram/backend/internal/infrastructure/persistence/memory"
	redisrepo "github.com/foodgram/backend/internal/infrastructure/persistence/redis"
	"github.com/foodgram/backend/internal/infrastructure/security"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New assembles the FX application.
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggerModule,
		DatabaseModule,
		CacheModule,
		RepositoryModule,
		ServiceModule,
		HTTPModule,
		fx.Invoke(registerLifecycle),
	)
}

// ConfigModule loads configuration from file and environment.
var ConfigModule = fx.Module("config",
	fx.Provide(func() (*config.Config, error) {
		return config.Load(os.Getenv("FOODGRAM_CONFIG"))
	}),
)

// LoggerModule provides the zap logger.
var LoggerModule = fx.Module("logger",
	fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			Development: cfg.App.Debug,
		})
	}),
)

// DatabaseModule opens and migrates the database.
var DatabaseModule = fx.Module("database",
	fx.Provide(persistence.NewDatabase),
)

// CacheModule provides the configured cache backend.
var CacheModule = fx.Module("cache",
	fx.Provide(func(lc fx.Lifecycle, cfg *config.Config) (outbound.CacheRepository, error) {
		switch cfg.Cache.Backend {
		case "redis":
			cache, err := redisrepo.NewCache(context.Background(), cfg.Cache)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					return cache.(*redisrepo.Cache).Close()
				},
			})
			return cache, nil
		case "memory":
			cache := memory.NewCache()
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cache.(*memory.Cache).Close()
					return nil
				},
			})
			return cache, nil
		default:
			return nil, fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
		}
	}),
)

// RepositoryModule provides the GORM repositories.
var RepositoryModule = fx.Module("repositories",
	fx.Provide(
		gormrepo.NewMeasurementRepository,
		gormrepo.NewLineItemRepository,
		gormrepo.NewRecipeRepository,
		gormrepo.NewTagRepository,
		gormrepo.NewUserRepository,
		gormrepo.NewCartRepository,
		gormrepo.NewFavoriteRepository,
		gormrepo.NewSubscriptionRepository,
	),
)

// ServiceModule provides the application services.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ingredient.NewRegistry,
		shoppingapp.NewService,
		organizerapp.NewService,
		catalogapp.NewService,
		userapp.NewService,
		func(
			cfg *config.Config,
			recipes outbound.RecipeRepository,
			tags outbound.TagRepository,
			users outbound.UserRepository,
			favorites outbound.FavoriteRepository,
			cart outbound.CartRepository,
			registry *ingredient.Registry,
			cache outbound.CacheRepository,
			log *zap.Logger,
		) inbound.RecipeService {
			return recipeapp.NewService(recipes, tags, users, favorites, cart,
				registry, cache, cfg.Cache.TTL, cfg.Features.UniqueRecipePerAuthor, log)
		},
	),
)

// HTTPModule provides the token service, handlers and the server.
var HTTPModule = fx.Module("http",
	fx.Provide(
		func(cfg *config.Config) *security.TokenService {
			return security.NewTokenService(cfg.Auth)
		},
		handlers.NewAuthAPI,
		handlers.NewRecipeAPI,
		handlers.NewCatalogAPI,
		func(cfg *config.Config, organizer inbound.OrganizerService, log *zap.Logger) *handlers.OrganizerAPI {
			return handlers.NewOrganizerAPI(organizer, cfg.Features.SubscriptionRecipesLimit, log)
		},
		handlers.NewShoppingAPI,
		func(
			cfg *config.Config,
			auth *handlers.AuthAPI,
			recipes *handlers.RecipeAPI,
			catalog *handlers.CatalogAPI,
			organizer *handlers.OrganizerAPI,
			shopping *handlers.ShoppingAPI,
			tokens *security.TokenService,
			log *zap.Logger,
		) *apiserver.Server {
			return apiserver.NewServer(cfg, apiserver.Handlers{
				Auth:      auth,
				Recipes:   recipes,
				Catalog:   catalog,
				Organizer: organizer,
				Shopping:  shopping,
			}, tokens, log)
		},
	),
)

// registerLifecycle seeds the catalog and starts the HTTP server.
func registerLifecycle(
	lc fx.Lifecycle,
	cfg *config.Config,
	db *gorm.DB,
	measurements outbound.MeasurementRepository,
	server *apiserver.Server,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := persistence.SeedMeasurements(ctx, measurements, cfg.Database.SeedFile, log); err != nil {
				return err
			}
			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("HTTP server exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
