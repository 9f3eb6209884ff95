package models

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy возвращается при попытке отправить запрос, пока предыдущий ещё выполняется.
	ErrBusy = errors.New("submission in flight")
	// ErrArtifactNotFound — ссылка на артефакт не зарегистрирована или уже освобождена.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Kind классифицирует ошибку сценария загрузки–сжатия–получения.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindService    Kind = "service"
	KindDecode     Kind = "decode"
)

// Сообщения, которые видит пользователь в области ошибки.
const (
	MsgImageRequired = "Gambar wajib dipilih"
	MsgInvalidField  = "Nilai %s tidak valid"
	MsgTransport     = "Gagal mengompresi"
	MsgService       = "Gagal: %d"
	MsgDecode        = "Gagal membaca hasil kompresi"
	MsgInvalidForm   = "Form tidak valid"
	MsgTooLarge      = "Ukuran gambar melebihi batas"
)

// Error — типизированная ошибка с видом, операцией и коротким сообщением для пользователя.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidation создаёт ошибку валидации, обнаруженную до сетевого вызова.
func NewValidation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// NewService описывает ответ сервиса с не-2xx статусом.
func NewService(op string, status int) *Error {
	return &Error{
		Kind:    KindService,
		Op:      op,
		Message: fmt.Sprintf(MsgService, status),
		Status:  status,
	}
}

// Wrap оборачивает err в Error заданного вида. Уже типизированные ошибки возвращаются как есть.
func Wrap(kind Kind, op, message string, err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

// IsKind проверяет, есть ли в цепочке ошибка указанного вида.
func IsKind(err error, kind Kind) bool {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind == kind
	}
	return false
}

// StatusCode возвращает HTTP-статус ServiceError либо 0.
func StatusCode(err error) int {
	var target *Error
	if errors.As(err, &target) {
		return target.Status
	}
	return 0
}

// UserMessage превращает любую ошибку в однострочное сообщение для пользователя.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var target *Error
	if errors.As(err, &target) && target.Message != "" {
		return target.Message
	}
	return MsgTransport
}
