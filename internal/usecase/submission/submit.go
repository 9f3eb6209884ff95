package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/internal/usecase/requestbuilder"
)

const opSubmit = "submit"

// SubmitFields собирает запрос из полей формы и отправляет его.
// Ошибка сборки переводит контроллер в Failed без сетевого вызова.
func (s *Controller) SubmitFields(fields requestbuilder.Fields) error {
	req, err := requestbuilder.Build(fields)
	if err != nil {
		return s.Reject(err)
	}
	return s.Submit(req)
}

// Submit начинает новую попытку. Пока предыдущая в полёте, возвращает models.ErrBusy и ничего не меняет.
// Переход в InFlight происходит синхронно; сетевой вызов выполняется в отдельной горутине.
func (s *Controller) Submit(req models.CompressionRequest) error {
	if req.Image.Empty() {
		return s.Reject(models.NewValidation(opSubmit, models.MsgImageRequired))
	}

	s.mu.Lock()
	if err := s.admitLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	prev := s.state
	next := InFlight{Started: time.Now()}
	s.state = next
	s.savePath, s.saveErr = "", nil
	s.attempt++
	attempt := s.attempt
	done := make(chan struct{})
	s.done = done
	s.wg.Add(1)
	s.mu.Unlock()

	// Прошлый артефакт отзывается до того, как появится новый.
	if a := artifactOf(prev); a != nil {
		a.Release()
	}
	s.notify(next)

	s.Logger.Info("submission started",
		slog.Uint64("attempt", attempt),
		slog.String("file", req.Image.Name),
		slog.Int("bytes", len(req.Image.Data)),
		slog.Int("quality", req.Quality),
		slog.Int("max_size", req.MaxSize),
		slog.Bool("progressive", req.Progressive),
	)

	go s.run(attempt, req, done)
	return nil
}

// admitLocked проверяет, можно ли начать попытку. Вызывается под s.mu.
func (s *Controller) admitLocked() error {
	if s.closed {
		return ErrClosed
	}
	if Busy(s.state) {
		s.Logger.Debug("submit ignored while in flight")
		return models.ErrBusy
	}
	return nil
}

// Reject завершает попытку ошибкой, обнаруженной до сетевого вызова (валидация, разбор формы):
// контроллер синхронно переходит в Failed. Пока запрос в полёте, возвращает models.ErrBusy.
func (s *Controller) Reject(err error) error {
	s.mu.Lock()
	if admitErr := s.admitLocked(); admitErr != nil {
		s.mu.Unlock()
		return admitErr
	}
	prev := s.state
	next := Failed{Message: models.UserMessage(err), Err: err}
	s.state = next
	s.savePath, s.saveErr = "", nil
	s.attempt++
	done := make(chan struct{})
	close(done)
	s.done = done
	s.mu.Unlock()

	if a := artifactOf(prev); a != nil {
		a.Release()
	}
	s.notify(next)
	s.Logger.Warn("submission rejected", slog.String("message", next.Message), slog.Any("error", err))
	return nil
}

// run выполняет сетевой вызов и переводит контроллер в терминальное состояние.
func (s *Controller) run(attempt uint64, req models.CompressionRequest, done chan struct{}) {
	defer s.wg.Done()
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			s.finish(attempt, Failed{
				Message: models.MsgTransport,
				Err:     models.Wrap(models.KindTransport, opSubmit, models.MsgTransport, fmt.Errorf("panic: %v", r)),
			})
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	started := time.Now()
	res, err := s.Client.Compress(ctx, s.BaseURL, req)
	if err != nil {
		s.finish(attempt, Failed{Message: models.UserMessage(err), Err: err})
		return
	}

	a, err := s.Store.Create(res.Data, res.ContentType)
	if err != nil {
		s.finish(attempt, Failed{Message: models.UserMessage(err), Err: err})
		return
	}

	s.finish(attempt, Succeeded{Artifact: a})
	s.Logger.Info("submission succeeded",
		slog.Uint64("attempt", attempt),
		slog.String("artifact", a.ID()),
		slog.Int("bytes", a.Size()),
		slog.Duration("took", time.Since(started)),
	)

	s.save(attempt, res.Data)
}

// finish публикует терминальное состояние попытки attempt.
func (s *Controller) finish(attempt uint64, next State) {
	s.mu.Lock()
	if s.attempt != attempt || !Busy(s.state) {
		// Состояние уже принадлежит другой попытке; артефакт этой попытки никому не нужен.
		s.mu.Unlock()
		if a := artifactOf(next); a != nil {
			a.Release()
		}
		return
	}
	s.state = next
	s.mu.Unlock()

	if f, ok := next.(Failed); ok {
		s.Logger.Warn("submission failed", slog.Uint64("attempt", attempt), slog.String("message", f.Message), slog.Any("error", f.Err))
	}
	s.notify(next)
}

// save запускает сохранение файла под фиксированным именем. Ошибка сохранения не меняет Succeeded.
// Сохранения идут по одному; попытка, которую уже сменила следующая, файл не пишет,
// поэтому на диске остаётся результат последней попытки.
func (s *Controller) save(attempt uint64, data []byte) {
	if s.Saver == nil || len(data) == 0 {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if !s.current(attempt) {
		s.Logger.Debug("auto-save skipped for superseded attempt", slog.Uint64("attempt", attempt))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	path, err := s.Saver.Save(ctx, s.DownloadName, data)
	if err != nil {
		s.Logger.Error("auto-save failed", slog.Uint64("attempt", attempt), slog.Any("error", err))
	} else {
		s.Logger.Info("artifact saved", slog.Uint64("attempt", attempt), slog.String("path", path))
	}

	s.mu.Lock()
	if s.attempt == attempt {
		s.savePath, s.saveErr = path, err
	}
	s.mu.Unlock()
}

func (s *Controller) current(attempt uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt == attempt
}

func (s *Controller) notify(st State) {
	if s.OnChange != nil {
		s.OnChange(st)
	}
}
