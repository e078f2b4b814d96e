package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/skyjourney/api"
	"github.com/Domenick1991/skyjourney/config"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
)

const swaggerFile = "skyjourney.swagger.json"

// Handlers are the HTTP surfaces mounted by NewRouter.
type Handlers struct {
	Site          *api.SiteHandler
	Flights       *api.FlightHandler
	Bookings      *api.BookingHandler
	Confirmation  *api.ConfirmationHandler
	Auth          *api.AuthHandler
	Admin         *api.AdminHandler
	Authenticator api.Authenticator
}

// Task is a background loop run alongside the HTTP server. It returns when
// ctx is done.
type Task func(ctx context.Context) error

func NewRouter(cfg *config.Config, h Handlers, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	h.Site.Register(router)
	h.Confirmation.Register(router)
	h.Auth.Register(router)
	h.Flights.Register(router.Group("/flights"))
	h.Bookings.Register(router.Group("/bookings"))
	h.Admin.Register(router.Group("/admin", api.RequireAdmin(h.Authenticator)))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/"+swaggerFile),
		)))
	}
	return router
}

// Run serves handler and the background tasks until ctx is cancelled or one
// of them fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, log *slog.Logger, tasks ...Task) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTP.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info("http server stopped")
		return nil
	})
	for _, task := range tasks {
		g.Go(func() error { return task(ctx) })
	}
	return g.Wait()
}

// Every runs fn at each interval tick until ctx is done.
func Every(interval time.Duration, fn func(ctx context.Context)) Task {
	return func(ctx context.Context) error {
		if interval <= 0 {
			<-ctx.Done()
			return nil
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn(ctx)
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogAttrs(c.Request.Context(), slog.LevelDebug, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
