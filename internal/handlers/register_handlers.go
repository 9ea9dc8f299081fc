package handlers

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/middleware"
	"github.com/stayfolio/pms_backend/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	return setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Posting endpoints get a tighter per-IP rate limit than reads.
	rate, err := limiter.NewRateFromFormatted(cfg.PostingRateLimit)
	if err != nil {
		return fmt.Errorf("invalid posting rate limit %q: %w", cfg.PostingRateLimit, err)
	}
	postingLimiter := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	registerFolioRoutes(v1, services.Folio)
	registerLedgerRoutes(v1, services.Ledger, postingLimiter)
	registerSettlementRoutes(v1, services.Settlement)
	registerAssignmentRoutes(v1, services.Assignment)
	registerRollupRoutes(v1, services.Rollup, services.Hotel)
	return nil
}
