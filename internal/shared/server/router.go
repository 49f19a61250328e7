package server

import (
	"context"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"resume-recommender/internal/extract"
	"resume-recommender/internal/jobs"
	"resume-recommender/internal/recommend"
	"resume-recommender/internal/roles"
	"resume-recommender/internal/roles/gemini"
	"resume-recommender/internal/roles/perplexity"
	"resume-recommender/internal/services/health"
	"resume-recommender/internal/shared/config"
	"resume-recommender/internal/shared/metrics"
	"resume-recommender/internal/shared/server/middleware"
	"resume-recommender/internal/shared/server/respond"
	"resume-recommender/internal/skills"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	svc := &recommend.Service{
		Extractor:       extract.New(),
		Vocabulary:      skills.DefaultVocabulary(),
		Deriver:         buildDeriver(cfg),
		Static:          roles.NewStaticDeriver(nil),
		SearchRoleLimit: cfg.SearchRoleLimit,
		EchoResumeText:  cfg.EchoResumeText,
	}

	switch cfg.RankStrategy {
	case config.RankStrategyClassifier:
		ranker, err := jobs.NewClassifier(cfg.HuggingFaceToken, cfg.ClassifierURL, cfg.HTTPTimeout)
		if err != nil {
			log.Printf("classifier unavailable, uploads return unscored roles: %v", err)
		} else {
			svc.Ranker = ranker
		}
	case config.RankStrategyLiveSearch:
		searcher, err := jobs.NewSearcher(
			cfg.TheirStackAPIKey, cfg.SearchURL, cfg.SearchCountry,
			cfg.SearchLimit, cfg.SearchMaxAgeDays, cfg.HTTPTimeout,
		)
		if err != nil {
			log.Printf("job search unavailable, recommendations skip live listings: %v", err)
		} else {
			svc.Searcher = searcher
		}
	}

	recommend.NewHandler(svc).RegisterRoutes(r)

	if cfg.WebDir != "" {
		r.StaticFile("/", filepath.Join(cfg.WebDir, "index.html"))
	}

	healthSvc := health.NewService()
	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	api.GET("/metrics", metrics.Handler())

	return r
}

// buildDeriver selects the role derivation backend. A provider that cannot
// be constructed degrades to the static mapping so the service still starts.
func buildDeriver(cfg config.Config) roles.Deriver {
	switch cfg.RoleStrategy {
	case config.RoleStrategyPerplexity:
		client, err := perplexity.NewClient(cfg.PerplexityAPIKey, cfg.PerplexityModel, cfg.HTTPTimeout)
		if err != nil {
			log.Printf("perplexity unavailable, falling back to static roles: %v", err)
			break
		}
		return &roles.GenerativeDeriver{
			Provider: "perplexity",
			Gen:      client,
			MinRoles: cfg.MinRoles,
			MaxRoles: cfg.MaxRoles,
		}
	case config.RoleStrategyGemini:
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("gemini unavailable, falling back to static roles: %v", err)
			break
		}
		return &roles.GenerativeDeriver{
			Provider: "gemini",
			Gen:      client,
			MinRoles: cfg.MinRoles,
			MaxRoles: cfg.MaxRoles,
		}
	}
	return roles.NewStaticDeriver(nil)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
