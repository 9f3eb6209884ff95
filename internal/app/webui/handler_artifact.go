package webui

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yourname/squeezer/internal/logger"
	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/pkg/httperrors"
)

// getArtifact отдаёт байты артефакта по локальной ссылке. Отозванные ссылки дают 404.
func (s *Server) getArtifact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := s.artifacts.Open(id)
	if err != nil {
		logger.FromContext(r.Context()).Debug("artifact unavailable", slog.String("id", id), slog.Any("error", err))
		httperrors.Write(w, err)
		return
	}
	data := a.Bytes()
	if data == nil {
		httperrors.Write(w, models.ErrArtifactNotFound)
		return
	}

	w.Header().Set("Content-Type", a.MediaType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": s.downloadName}))
	}
	_, _ = w.Write(data)
}
