package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/moodtrack/internal/service"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	authRPS      = 1.0
	authBurst    = 5
	janitorEvery = time.Minute
)

type Server struct {
	mx             *chi.Mux
	userService    service.UserServiceI
	moodService    service.MoodServiceI
	jwtService     JWTServiceI
	limiter        *RateLimiter
	authLimiter    *RateLimiter
	allowedOrigins map[string]struct{}
}

type ServicesList struct {
	UserService service.UserServiceI
	MoodService service.MoodServiceI
	JwtService  JWTServiceI
}

type Option func(*Server)

// WithRateLimit enables per user (or per IP when anonymous) token bucket
// limiting. rps <= 0 leaves limiting off.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter("api", rps, burst)
		if s.limiter != nil {
			s.authLimiter = NewRateLimiter("auth", authRPS, authBurst)
		}
	}
}

// WithAllowedOrigins restricts CORS to the given origins. Empty list or "*"
// allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		for _, o := range origins {
			if o == "*" {
				s.allowedOrigins = nil
				return
			}
			if o != "" {
				if s.allowedOrigins == nil {
					s.allowedOrigins = make(map[string]struct{})
				}
				s.allowedOrigins[o] = struct{}{}
			}
		}
	}
}

func New(servicesOptions *ServicesList, opts ...Option) *Server {
	s := &Server{
		mx:          chi.NewMux(),
		userService: servicesOptions.UserService,
		moodService: servicesOptions.MoodService,
		jwtService:  servicesOptions.JwtService,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.MountEndpoints()
	return s
}

func (s *Server) MountEndpoints() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, s.CORSMiddleware)

	s.mx.Get("/healthz", s.Healthz)
	s.mx.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	s.mx.Group(func(r chi.Router) {
		r.Use(s.authLimiter.Middleware)
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
	})
	s.mx.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware, s.limiter.Middleware)
		r.Get("/getmoods", s.GetMoods)
		r.Post("/submitmood", s.SubmitMood)
		r.Get("/trends", s.GetTrends)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(s.mx, "moodtrack-api"),
		ReadHeaderTimeout: 5 * time.Second,
	}
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.limiter.RunJanitor(janitorCtx, janitorEvery)
	go s.authLimiter.RunJanitor(janitorCtx, janitorEvery)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server started", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
