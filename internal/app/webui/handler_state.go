package webui

import (
	"encoding/json"
	"net/http"

	"github.com/yourname/squeezer/internal/usecase/submission"
)

// stateResp — JSON-представление текущего состояния отправки.
type stateResp struct {
	State    string        `json:"state"`
	Busy     bool          `json:"busy"`
	Message  string        `json:"message,omitempty"`
	Artifact *artifactResp `json:"artifact,omitempty"`
	Saved    string        `json:"saved_path,omitempty"`
}

type artifactResp struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
	MediaType   string `json:"media_type"`
	Bytes       int    `json:"bytes"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	st := s.ctrl.State()
	resp := stateResp{State: st.Name(), Busy: submission.Busy(st)}

	switch v := st.(type) {
	case submission.Failed:
		resp.Message = v.Message
	case submission.Succeeded:
		if view := s.resultOf(v); view != nil {
			resp.Artifact = &artifactResp{
				ID:          view.ID,
				URL:         view.PreviewURL,
				DownloadURL: view.DownloadURL,
				MediaType:   v.Artifact.MediaType(),
				Bytes:       view.Bytes,
				Width:       view.Width,
				Height:      view.Height,
			}
		}
		if path, err := s.ctrl.Saved(); err == nil {
			resp.Saved = path
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
