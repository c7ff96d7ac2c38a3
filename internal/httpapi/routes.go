package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/hub"
	"github.com/DoyleJ11/monopoly-lobby/internal/ws"
)

type Options struct {
	Catalog        *board.Catalog
	Results        ResultReader
	Logger         *zap.Logger
	AllowedOrigins []string
	MessageRate    float64
	MessageBurst   int
}

func SetupRoutes(h *hub.Hub, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Catalog == nil {
		opts.Catalog = board.DefaultCatalog()
	}
	log := opts.Logger.Named("http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowCredentials: true,
	}).Handler)

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/themes", Themes(opts.Catalog))
	r.Get("/lobbies", Lobbies(h))
	r.Get("/results", Results(opts.Results, log))
	r.Get("/ws", ws.Handler(h, ws.Options{
		Catalog:        opts.Catalog,
		Logger:         opts.Logger.Named("ws"),
		OriginPatterns: originPatterns(opts.AllowedOrigins),
		MessageRate:    opts.MessageRate,
		MessageBurst:   opts.MessageBurst,
	}))
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

// originPatterns turns CORS origins into the host patterns the websocket
// accept check wants.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if _, host, ok := strings.Cut(o, "://"); ok {
			o = host
		}
		out = append(out, o)
	}
	return out
}
