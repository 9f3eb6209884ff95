package submission

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yourname/squeezer/internal/artifact"
	"github.com/yourname/squeezer/internal/download"
	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/internal/usecase/requestbuilder"
	"github.com/yourname/squeezer/pkg/compressclient"
	"github.com/yourname/squeezer/pkg/compressproto"
)

const defaultTimeout = 60 * time.Second

// ErrClosed — контроллер уже остановлен через Close.
var ErrClosed = errors.New("submission controller closed")

type (
	// ArtifactStore регистрирует полученные байты как артефакт с локальной ссылкой.
	ArtifactStore interface {
		Create(data []byte, mediaType string) (*artifact.Artifact, error)
	}

	// Service — жизненный цикл одной формы: отправка, состояние, завершение.
	Service interface {
		Submit(req models.CompressionRequest) error
		SubmitFields(fields requestbuilder.Fields) error
		Reject(err error) error
		State() State
		Done() <-chan struct{}
		Saved() (string, error)
		Close()
	}
)

type Deps struct {
	Client       compressclient.Client
	BaseURL      string
	Store        ArtifactStore
	Saver        download.Saver
	DownloadName string
	Timeout      time.Duration
	Logger       *slog.Logger
	// OnChange вызывается после каждой смены состояния, вне внутренних блокировок.
	OnChange func(State)
}

// Controller владеет SubmissionState; никто другой его не меняет.
type Controller struct {
	Deps

	mu       sync.Mutex
	saveMu   sync.Mutex
	state    State
	done     chan struct{}
	attempt  uint64
	closed   bool
	wg       sync.WaitGroup
	savePath string
	saveErr  error
}

// New конструирует контроллер в состоянии Idle.
func New(deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Logger = deps.Logger.With(slog.String("component", "submission"))
	if deps.Timeout <= 0 {
		deps.Timeout = defaultTimeout
	}
	if deps.DownloadName == "" {
		deps.DownloadName = compressproto.DefaultDownloadName
	}
	if deps.BaseURL == "" {
		deps.BaseURL = compressproto.DefaultBaseURL
	}

	done := make(chan struct{})
	close(done)

	return &Controller{
		Deps:  deps,
		state: Idle{},
		done:  done,
	}
}

var _ Service = (*Controller)(nil)

// State возвращает текущее состояние.
func (s *Controller) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done закрывается, когда текущая попытка завершилась вместе с побочными эффектами.
// В Idle канал уже закрыт.
func (s *Controller) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Saved возвращает результат последнего автоматического сохранения.
func (s *Controller) Saved() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePath, s.saveErr
}

// Close дожидается запроса в полёте, освобождает артефакт и переводит контроллер в Idle.
// Повторные вызовы безопасны.
func (s *Controller) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	prev := s.state
	s.state = Idle{}
	s.mu.Unlock()

	if a := artifactOf(prev); a != nil {
		a.Release()
	}
	s.notify(Idle{})
}
