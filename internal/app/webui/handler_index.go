package webui

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/yourname/squeezer/internal/logger"
	"github.com/yourname/squeezer/internal/usecase/submission"
	"github.com/yourname/squeezer/pkg/compressproto"
)

const (
	labelIdle = "Kompres & Unduh"
	labelBusy = "Memproses..."
)

var funcs = template.FuncMap{
	"bytes": func(n int) string { return humanize.Bytes(uint64(n)) },
}

// pageData — всё, что нужно шаблону страницы.
type pageData struct {
	Form       formValues
	Busy       bool
	Label      string
	Error      string
	Result     *resultView
	Saved      string
	MinQuality int
	MaxQuality int
	MinMaxSize int
	MaxMaxSize int
	Marker     string
}

type resultView struct {
	ID          string
	PreviewURL  string
	DownloadURL string
	Filename    string
	Bytes       int
	Width       int
	Height      int
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	st := s.ctrl.State()
	data := pageData{
		Form:       s.currentForm(),
		Busy:       submission.Busy(st),
		Label:      labelIdle,
		MinQuality: compressproto.MinQuality,
		MaxQuality: compressproto.MaxQuality,
		MinMaxSize: compressproto.MinMaxSize,
		MaxMaxSize: compressproto.MaxMaxSize,
		Marker:     progressiveMarker,
	}
	if data.Busy {
		data.Label = labelBusy
	}

	switch v := st.(type) {
	case submission.Failed:
		data.Error = v.Message
	case submission.Succeeded:
		data.Result = s.resultOf(v)
		if path, err := s.ctrl.Saved(); err == nil {
			data.Saved = path
		}
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		logger.FromContext(r.Context()).Error("render page", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) resultOf(st submission.Succeeded) *resultView {
	a := st.Artifact
	if a == nil || !a.Valid() {
		return nil
	}

	url := s.artifacts.AccessPath(a)
	meta := a.Meta()
	return &resultView{
		ID:          a.ID(),
		PreviewURL:  url,
		DownloadURL: url + "?download=1",
		Filename:    s.downloadName,
		Bytes:       a.Size(),
		Width:       meta.Width,
		Height:      meta.Height,
	}
}
