package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	designerhttp "github.com/mailforge/designer/modules/designer"
	"github.com/mailforge/designer/pkg/config"
	"github.com/mailforge/designer/pkg/coreemail"
	"github.com/mailforge/designer/pkg/designer"
	"github.com/mailforge/designer/pkg/dispatch"
	"github.com/mailforge/designer/pkg/email"
	"github.com/mailforge/designer/pkg/httpserver"
	"github.com/mailforge/designer/pkg/logger"
	"github.com/mailforge/designer/pkg/mongo"
	"github.com/mailforge/designer/pkg/redis"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServerURL   string `env:"SERVER_URL" envDefault:"http://localhost:8080"`

	HTTP  httpserver.Config
	Mongo mongo.Config
	Redis redis.Config
	Email email.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	var log *slog.Logger
	if cfg.Environment == "production" {
		log = logger.New(logger.WithProduction("designer"))
	} else {
		log = logger.New(logger.WithDevelopment("designer"))
	}
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("exiting", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	templateStore, versionStore, cleanupMongo, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanupMongo()

	settingsStore, cleanupRedis := buildSettingsStore(ctx, cfg, log)
	defer cleanupRedis()

	sender := buildSender(cfg, log)

	templateSvc := designer.NewService(templateStore, versionStore, designer.WithServiceLogger(log))
	coreEmailSvc := coreemail.NewService(settingsStore)
	dispatcher := dispatch.New(templateStore, sender, dispatch.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Mount("/designer", designerhttp.Router(designerhttp.RouterOptions{
		Templates:  templateSvc,
		CoreEmails: coreEmailSvc,
		Dispatcher: dispatcher,
		ServerURL:  cfg.ServerURL,
		Logger:     log,
	}))

	return httpserver.New(cfg.HTTP, log).Run(ctx, r)
}

// buildStores connects to MongoDB, falling back to in-memory stores when no
// connection can be established in development.
func buildStores(ctx context.Context, cfg appConfig, log *slog.Logger) (designer.TemplateStore, designer.VersionStore, func(), error) {
	client, err := mongo.Connect(ctx, cfg.Mongo)
	if err != nil {
		if cfg.Environment == "production" {
			return nil, nil, nil, err
		}
		log.Warn("mongodb unavailable, using in-memory template stores", slog.Any("error", err))
		return designer.NewMemoryTemplateStore(), designer.NewMemoryVersionStore(), func() {}, nil
	}

	db := client.Database(cfg.Mongo.Database)
	templates := designer.NewMongoTemplateStore(db)
	versions := designer.NewMongoVersionStore(db)
	if err := templates.EnsureIndexes(ctx); err != nil {
		return nil, nil, nil, err
	}
	if err := versions.EnsureIndexes(ctx); err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() { _ = client.Disconnect(context.Background()) }
	return templates, versions, cleanup, nil
}

// buildSettingsStore connects to Redis for the core email overrides, falling
// back to an in-memory store when Redis is unreachable.
func buildSettingsStore(ctx context.Context, cfg appConfig, log *slog.Logger) (coreemail.SettingsStore, func()) {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory settings store", slog.Any("error", err))
		return coreemail.NewMemorySettingsStore(), func() {}
	}
	return coreemail.NewRedisSettingsStore(client), func() { _ = client.Close() }
}

// buildSender picks Postmark when tokens are configured, otherwise the local
// file-writing sender so development sends land on disk.
func buildSender(cfg appConfig, log *slog.Logger) email.Sender {
	sender, err := email.NewPostmarkSender(cfg.Email)
	if err != nil {
		log.Warn("postmark not configured, writing emails to disk",
			slog.String("dir", cfg.Email.DevOutputDir),
			slog.Any("error", err),
		)
		return email.NewDevSender(cfg.Email.DevOutputDir)
	}
	return sender
}
