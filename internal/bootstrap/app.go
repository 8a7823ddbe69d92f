package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-chat-backend/internal/chat"
	"resume-chat-backend/internal/generatedresumes"
	"resume-chat-backend/internal/llm"
	"resume-chat-backend/internal/llm/groq"
	"resume-chat-backend/internal/render"
	"resume-chat-backend/internal/shared/config"
	"resume-chat-backend/internal/shared/server"
	"resume-chat-backend/internal/shared/server/middleware"
	"resume-chat-backend/internal/shared/storage/db"
	"resume-chat-backend/internal/shared/storage/object"
	localstore "resume-chat-backend/internal/shared/storage/object/local"
	s3store "resume-chat-backend/internal/shared/storage/object/s3"
	"resume-chat-backend/internal/shared/telemetry"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	LLM            llm.Client
	ChatService    *chat.Service
	ResumesRepo    generatedresumes.Repo
	ResumesService *generatedresumes.Service
	ChatHandler    *chat.Handler
	ResumeHandler  *generatedresumes.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient := buildLLM(cfg)

	if cfg.FontFetch {
		fontCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		if err := render.EnsureFonts(fontCtx, http.DefaultClient, cfg.FontDir); err != nil {
			telemetry.Error("bootstrap.fonts_unavailable", map[string]any{"error": err.Error()})
		}
		cancel()
	}

	var resumesRepo generatedresumes.Repo
	if sqlDB != nil {
		resumesRepo = &generatedresumes.PGRepo{DB: sqlDB}
	} else {
		resumesRepo = generatedresumes.NewMemoryRepo()
	}

	chatSvc := &chat.Service{
		LLM:      llmClient,
		Sessions: chat.NewStore(),
		Prompt:   llm.SystemPrompt(cfg.PromptTemplatePath),
	}

	resumesSvc := &generatedresumes.Service{
		Renderer: &render.Generator{FontDir: cfg.FontDir},
		Store:    store,
		Repo:     resumesRepo,
	}

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		Store:          store,
		LLM:            llmClient,
		ChatService:    chatSvc,
		ResumesRepo:    resumesRepo,
		ResumesService: resumesSvc,
		ChatHandler:    chat.NewHandler(chatSvc),
		ResumeHandler:  generatedresumes.NewHandler(resumesSvc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ChatHandler:   app.ChatHandler,
		ResumeHandler: app.ResumeHandler,
		RateLimiter:   middleware.NewRateLimiter(nil),
		ChatRateRule:  middleware.RateLimitRule{Rate: 2, Burst: 10},
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) llm.Client {
	if cfg.LLMProvider != "groq" {
		log.Printf("bootstrap: unknown LLM provider %q; completions disabled", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}

	client, err := groq.NewClient(os.Getenv("GROQ_API_KEY"), cfg.LLMModel, cfg.LLMTemperature)
	if err != nil {
		log.Printf("bootstrap: groq client unavailable; completions disabled: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
