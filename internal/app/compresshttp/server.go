package compresshttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourname/squeezer/pkg/compressproto"
)

const defaultMaxUploadBytes = 32 << 20

type Config struct {
	// MaxUploadBytes ограничивает тело POST /compress.
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Server serves the compression API.
type Server struct {
	maxUpload int64
	log       *slog.Logger
}

// New создаёт HTTP-обработчик сервиса сжатия.
func New(cfg Config) http.Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	srv := &Server{
		maxUpload: cfg.MaxUploadBytes,
		log:       cfg.Logger.With(slog.String("component", "compresshttp")),
	}

	return srv.routes()
}

// routes регистрирует health и сжатие.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Get(compressproto.HealthPath, a.health)
	r.Post(compressproto.CompressPath, a.compress)

	return r
}
