package compresshttp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourname/squeezer/pkg/compressproto"
)

const (
	msgImageRequired = "File gambar wajib diunggah"
	multipartMemory  = 8 << 20
)

// compressRequest — разобранные поля POST /compress.
type compressRequest struct {
	filename    string
	data        []byte
	quality     int
	maxSize     int
	progressive bool
}

// fieldError — ошибка разбора с HTTP-статусом ответа.
type fieldError struct {
	status int
	detail string
}

func (e *fieldError) Error() string { return e.detail }

// requireCompressRequest разбирает multipart и пишет ответ с ошибкой, если запрос некорректен.
func (a *Server) requireCompressRequest(w http.ResponseWriter, r *http.Request) (*compressRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)

	req, err := newCompressRequest(r)
	if err != nil {
		var fe *fieldError
		if errors.As(err, &fe) {
			writeDetail(w, fe.status, fe.detail)
			return nil, false
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeDetail(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	return req, true
}

func newCompressRequest(r *http.Request) (*compressRequest, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, &fieldError{status: http.StatusBadRequest, detail: msgImageRequired}
		}
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()

	f, hdr, err := r.FormFile(compressproto.FieldImage)
	if err != nil {
		return nil, &fieldError{status: http.StatusBadRequest, detail: msgImageRequired}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &fieldError{status: http.StatusBadRequest, detail: msgImageRequired}
	}

	quality, err := intValue(r, compressproto.FieldQuality, compressproto.DefaultQuality, compressproto.MinQuality, compressproto.MaxQuality)
	if err != nil {
		return nil, err
	}
	maxSize, err := intValue(r, compressproto.FieldMaxSize, compressproto.DefaultMaxSize, compressproto.MinMaxSize, compressproto.MaxMaxSize)
	if err != nil {
		return nil, err
	}
	progressive, err := boolValue(r, compressproto.FieldProgressive, compressproto.DefaultProgressive)
	if err != nil {
		return nil, err
	}

	return &compressRequest{
		filename:    hdr.Filename,
		data:        data,
		quality:     quality,
		maxSize:     maxSize,
		progressive: progressive,
	}, nil
}

// intValue читает целое поле формы: нечисловое значение — 422, вне диапазона — 400.
func intValue(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &fieldError{status: http.StatusUnprocessableEntity, detail: fmt.Sprintf("%s must be an integer", name)}
	}
	if n < lo || n > hi {
		return 0, &fieldError{status: http.StatusBadRequest, detail: fmt.Sprintf("%s must be between %d and %d", name, lo, hi)}
	}

	return n, nil
}

func boolValue(r *http.Request, name string, def bool) (bool, error) {
	raw := strings.ToLower(strings.TrimSpace(r.FormValue(name)))
	switch raw {
	case "":
		return def, nil
	case "true", "1", "on", "yes":
		return true, nil
	case "false", "0", "off", "no":
		return false, nil
	default:
		return false, &fieldError{status: http.StatusUnprocessableEntity, detail: fmt.Sprintf("%s must be a boolean", name)}
	}
}

// downloadName строит имя вида <stem>_compressed.jpg.
func downloadName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		stem = "image"
	}
	return stem + "_compressed.jpg"
}
