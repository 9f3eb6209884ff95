package httperrors

import (
	"errors"
	"net/http"

	"github.com/yourname/squeezer/internal/models"
)

// Write отвечает текстом ошибки и статусом, соответствующим её виду.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, Message(err), Status(err))
}

// Status выбирает HTTP-статус для ошибки.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrArtifactNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBusy):
		return http.StatusConflict
	case models.IsKind(err, models.KindValidation):
		return http.StatusBadRequest
	case models.IsKind(err, models.KindDecode):
		return http.StatusUnprocessableEntity
	case models.IsKind(err, models.KindService):
		return http.StatusBadGateway
	case models.IsKind(err, models.KindTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message — текст ответа: текст сентинела, сообщение для пользователя у типизированных ошибок, иначе err.Error().
// Контекст обёрток в тело ответа не попадает.
func Message(err error) string {
	for _, sentinel := range []error{models.ErrArtifactNotFound, models.ErrBusy} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	var typed *models.Error
	if errors.As(err, &typed) && typed.Message != "" {
		return typed.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
