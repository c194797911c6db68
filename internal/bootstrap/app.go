package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/feedback"
	"career-recommender/internal/model"
	"career-recommender/internal/recommend"
	"career-recommender/internal/report"
	"career-recommender/internal/services/health"
	"career-recommender/internal/shared/config"
	"career-recommender/internal/shared/server"
	"career-recommender/internal/shared/storage/db"
	"career-recommender/internal/shared/storage/object"
	localstore "career-recommender/internal/shared/storage/object/local"
	s3store "career-recommender/internal/shared/storage/object/s3"
	"career-recommender/internal/shared/telemetry"
	"career-recommender/internal/web"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Artifacts        *model.Artifacts
	Catalog          *recommend.Catalog
	FeedbackRepo     feedback.Repo
	RecommendService *recommend.Service
	FeedbackService  *feedback.Service
	RecommendHandler *recommend.Handler
	FeedbackHandler  *feedback.Handler
	WebHandler       *web.Handler
	Health           *health.Service
}

// Build prepares dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := BuildServices(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app.RecommendHandler = recommend.NewHandler(app.RecommendService, cfg.MaxUploadBytes)
	app.FeedbackHandler = feedback.NewHandler(app.FeedbackService)
	app.WebHandler = web.NewHandler(app.RecommendService, app.FeedbackService, cfg.MaxUploadBytes)
	app.Health = health.NewService(app.Artifacts, cfg.FeedbackStore)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		RecommendHandler: app.RecommendHandler,
		FeedbackHandler:  app.FeedbackHandler,
		WebHandler:       app.WebHandler,
		Health:           app.Health,
	})
	return app, nil
}

// BuildServices loads the model bundle and catalog and constructs the services
// without any HTTP wiring.
func BuildServices(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	store, err := BuildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	artifacts, err := model.Load(ctx, store, ArtifactPaths(cfg))
	if err != nil {
		return nil, fmt.Errorf("load model artifacts: %w", err)
	}

	catalog, err := recommend.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	repo, sqlDB, err := BuildFeedbackRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		Artifacts:    artifacts,
		Catalog:      catalog,
		FeedbackRepo: repo,
		RecommendService: &recommend.Service{
			Artifacts: artifacts,
			Catalog:   catalog,
			Renderer:  report.New(cfg.LogoPath),
		},
		FeedbackService: feedback.NewService(repo),
	}, nil
}

// Close releases the database handle if one was opened.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// ArtifactPaths maps configured object keys to model paths.
func ArtifactPaths(cfg config.Config) model.Paths {
	paths := model.DefaultPaths()
	if k := strings.TrimSpace(cfg.ModelKey); k != "" {
		paths.Classifier = k
	}
	if k := strings.TrimSpace(cfg.VectorizerKey); k != "" {
		paths.Vectorizer = k
	}
	if k := strings.TrimSpace(cfg.LabelEncoderKey); k != "" {
		paths.LabelEncoder = k
	}
	return paths
}

// BuildStore returns the object store artifacts are read from.
func BuildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.FeedbackStore != "postgres" || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.db_unavailable", map[string]any{
				"message": "database connect failed; using feedback log file",
				"error":   err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// BuildFeedbackRepo returns the Postgres repo when a database is configured and
// reachable, and the append-only log file otherwise. The returned *sql.DB is nil
// for the file repo.
func BuildFeedbackRepo(ctx context.Context, cfg config.Config) (feedback.Repo, *sql.DB, error) {
	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if sqlDB != nil {
		return &feedback.PGRepo{DB: sqlDB}, sqlDB, nil
	}
	return feedback.NewFileRepo(cfg.FeedbackLogPath), nil, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
