package compresshttp

import (
	"bytes"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// compress принимает картинку, уменьшает её и отдаёт JPEG.
func (a *Server) compress(w http.ResponseWriter, r *http.Request) {
	req, ok := a.requireCompressRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	size, err := compressImage(&buf, req.data, req.maxSize, req.quality)
	if err != nil {
		a.log.Warn("compress failed",
			slog.String("file", req.filename),
			slog.String("detected", mimetype.Detect(req.data).String()),
			slog.Any("error", err),
		)
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Gagal mengompresi: %v", err))
		return
	}
	if req.progressive {
		// image/jpeg кодирует только baseline
		a.log.Debug("progressive requested, baseline encoded", slog.String("file", req.filename))
	}

	a.log.Info("image compressed",
		slog.String("file", req.filename),
		slog.String("in", humanize.Bytes(uint64(len(req.data)))),
		slog.String("out", humanize.Bytes(uint64(buf.Len()))),
		slog.String("dims", fmt.Sprintf("%dx%d", size.X, size.Y)),
		slog.Int("quality", req.quality),
	)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": downloadName(req.filename)}))
	_, _ = w.Write(buf.Bytes())
}
