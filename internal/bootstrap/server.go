package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ncastro/riobook/api"
	"github.com/ncastro/riobook/config"
	"github.com/ncastro/riobook/internal/service/auth"
	"github.com/ncastro/riobook/internal/service/booking"
	"github.com/ncastro/riobook/internal/service/miles"
	"github.com/ncastro/riobook/internal/service/trips"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	tripSvc trips.TripUseCase,
	bookingSvc booking.BookingUseCase,
	milesSvc miles.MilesUseCase,
	authSvc auth.AuthUseCase,
) error {
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, tripSvc, bookingSvc, milesSvc, authSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(
	cfg *config.Config,
	tripSvc trips.TripUseCase,
	bookingSvc booking.BookingUseCase,
	milesSvc miles.MilesUseCase,
	authSvc auth.AuthUseCase,
) *gin.Engine {
	router := gin.Default()
	router.Use(api.Metrics())

	corsCfg := cors.DefaultConfig()
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := api.NewRateLimiter(cfg.HTTP.RateLimitPerSec, cfg.HTTP.RateLimitBurst)
	authRequired := api.AuthRequired(authSvc)

	group := router.Group("/api")
	group.Use(api.AuthOptional(authSvc))

	api.NewTripHandler(tripSvc).Register(group)
	api.NewBookingHandler(bookingSvc, tripSvc).Register(group, authRequired)
	api.NewMilesHandler(milesSvc).Register(group, authRequired)

	authGroup := router.Group("/api")
	authGroup.Use(limiter.Limit())
	api.NewAuthHandler(authSvc).Register(authGroup)

	if cfg.HTTP.OpenAPIFile != "" {
		router.StaticFile("/openapi.yaml", cfg.HTTP.OpenAPIFile)
		router.GET("/docs", func(c *gin.Context) {
			renderSwaggerUI(c.Writer, "/openapi.yaml")
		})
	}

	return router
}

func renderSwaggerUI(w http.ResponseWriter, specURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, specURL)

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}
