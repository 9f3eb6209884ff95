package submission

import (
	"time"

	"github.com/yourname/squeezer/internal/artifact"
)

// State — текущее состояние отправки. Реализации: Idle, InFlight, Succeeded, Failed.
// В каждый момент действует ровно одно из них; занятость и ошибка одновременно невозможны.
type State interface {
	isState()
	// Name возвращает короткое имя состояния для логов и JSON.
	Name() string
}

// Idle — начальное состояние, ничего не отправлялось.
type Idle struct{}

// InFlight — запрос отправлен, ждём ответа сервиса.
type InFlight struct {
	Started time.Time
}

// Succeeded — сервис вернул изображение; артефакт принадлежит этому состоянию.
type Succeeded struct {
	Artifact *artifact.Artifact
}

// Failed — попытка завершилась ошибкой; Message показывается пользователю.
type Failed struct {
	Message string
	Err     error
}

func (Idle) isState()      {}
func (InFlight) isState()  {}
func (Succeeded) isState() {}
func (Failed) isState()    {}

func (Idle) Name() string      { return "idle" }
func (InFlight) Name() string  { return "in_flight" }
func (Succeeded) Name() string { return "succeeded" }
func (Failed) Name() string    { return "failed" }

// Busy сообщает, что кнопку отправки нужно заблокировать.
func Busy(s State) bool {
	_, ok := s.(InFlight)
	return ok
}

// artifactOf возвращает артефакт состояния Succeeded либо nil.
func artifactOf(s State) *artifact.Artifact {
	if ok, is := s.(Succeeded); is {
		return ok.Artifact
	}
	return nil
}
