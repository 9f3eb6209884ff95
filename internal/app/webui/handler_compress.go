package webui

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yourname/squeezer/internal/logger"
	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/internal/usecase/requestbuilder"
	"github.com/yourname/squeezer/pkg/compressproto"
	"github.com/yourname/squeezer/pkg/httperrors"
)

const multipartMemory = 8 << 20

// postCompress принимает отправку формы. Пока запрос в полёте, отправка игнорируется.
func (s *Server) postCompress(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	log := logger.FromContext(r.Context())

	fields, err := readFields(r)
	if err != nil {
		log.Warn("form rejected", slog.Any("error", err))
		err = s.ctrl.Reject(formError(err))
	} else {
		s.remember(fields.Values)
		err = s.ctrl.SubmitFields(fields)
	}

	switch {
	case errors.Is(err, models.ErrBusy):
		log.Debug("form submitted while busy")
	case err != nil:
		httperrors.Write(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formError переводит ошибку разбора формы в ValidationError с сообщением для пользователя.
func formError(err error) error {
	msg := models.MsgInvalidForm
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		msg = models.MsgTooLarge
	}
	return &models.Error{Kind: models.KindValidation, Op: "webui.form", Message: msg, Cause: err}
}

// readFields превращает multipart-форму в поля для Request Builder.
// Выбранный файл без содержимого считается невыбранным.
func readFields(r *http.Request) (requestbuilder.Fields, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return requestbuilder.Fields{}, err
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	fields := requestbuilder.Fields{Values: map[string]string{}}
	for _, name := range []string{compressproto.FieldQuality, compressproto.FieldMaxSize, compressproto.FieldProgressive} {
		if vs, ok := r.Form[name]; ok && len(vs) > 0 {
			fields.Values[name] = vs[len(vs)-1]
		}
	}
	// снятый чекбокс не попадает в форму совсем
	if _, ok := fields.Values[compressproto.FieldProgressive]; !ok && r.Form.Get(progressiveMarker) != "" {
		fields.Values[compressproto.FieldProgressive] = "false"
	}
	if v, ok := fields.Values[compressproto.FieldProgressive]; ok && strings.EqualFold(v, "on") {
		fields.Values[compressproto.FieldProgressive] = "true"
	}

	f, hdr, err := r.FormFile(compressproto.FieldImage)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return fields, nil
	case err != nil:
		return requestbuilder.Fields{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return requestbuilder.Fields{}, err
	}
	if len(data) == 0 {
		return fields, nil
	}

	fields.Image = &models.ImageFile{
		Name:      hdr.Filename,
		MediaType: hdr.Header.Get("Content-Type"),
		Data:      data,
	}
	return fields, nil
}
