package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yourname/squeezer/internal/artifact"
	"github.com/yourname/squeezer/internal/logger"
	"github.com/yourname/squeezer/internal/usecase/submission"
	"github.com/yourname/squeezer/pkg/compressproto"
)

const defaultMaxUploadBytes = 32 << 20

//go:embed templates/index.html
var templatesFS embed.FS

// ArtifactSource разрешает локальную ссылку на артефакт и строит путь к нему.
type ArtifactSource interface {
	Open(id string) (*artifact.Artifact, error)
	AccessPath(a *artifact.Artifact) string
}

type Config struct {
	Controller     submission.Service
	Artifacts      ArtifactSource
	DownloadName   string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

type Server struct {
	ctrl         submission.Service
	artifacts    ArtifactSource
	downloadName string
	maxUpload    int64
	tmpl         *template.Template
	log          *slog.Logger

	mu   sync.Mutex
	form formValues
}

// New конструктор
func New(cfg Config) (http.Handler, *Server, error) {
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, nil, err
	}
	if cfg.DownloadName == "" {
		cfg.DownloadName = compressproto.DefaultDownloadName
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	srv := &Server{
		ctrl:         cfg.Controller,
		artifacts:    cfg.Artifacts,
		downloadName: cfg.DownloadName,
		maxUpload:    cfg.MaxUploadBytes,
		tmpl:         tmpl,
		log:          cfg.Logger.With(slog.String("component", "webui")),
		form:         defaultForm(),
	}

	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID)
	rtr.Use(srv.requestLogger)
	rtr.Get("/", srv.index)
	rtr.Post("/compress", srv.postCompress)
	rtr.Get("/artifacts/{id}", srv.getArtifact)
	rtr.Get("/state", srv.getState)

	return rtr, srv, nil
}

// requestLogger кладёт в контекст запроса логгер с request_id, методом и путём.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := s.log.With(
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		l.Debug("request")
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
	})
}
