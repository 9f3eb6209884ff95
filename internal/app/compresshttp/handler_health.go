package compresshttp

import (
	"encoding/json"
	"net/http"

	"github.com/yourname/squeezer/pkg/compressproto"
)

// healthResp — payload ответа health-check.
type healthResp struct {
	Status string `json:"status"`
}

func (a *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(healthResp{Status: compressproto.HealthStatusOK}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// errorResp — тело ответа с ошибкой; клиент его не читает, оно для людей и curl.
type errorResp struct {
	Detail string `json:"detail"`
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResp{Detail: detail})
}
