package artifact

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/yourname/squeezer/internal/models"
)

const opCreate = "artifact.create"

// Artifact — байты сжатого изображения и локальная ссылка на них.
type Artifact struct {
	id    string
	meta  Meta
	size  int
	store *Store

	mu       sync.RWMutex
	data     []byte
	released bool
	once     sync.Once
}

// ID возвращает локальную ссылку, по которой артефакт разрешается через Store.Open.
func (a *Artifact) ID() string { return a.id }

// Meta возвращает формат и размеры изображения.
func (a *Artifact) Meta() Meta { return a.meta }

// MediaType — content type для отдачи превью.
func (a *Artifact) MediaType() string { return a.meta.MediaType }

// Size — размер данных в байтах на момент создания.
func (a *Artifact) Size() int { return a.size }

// Bytes возвращает данные артефакта; после Release — nil.
func (a *Artifact) Bytes() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data
}

// Valid сообщает, что ссылка ещё не отозвана.
func (a *Artifact) Valid() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return !a.released
}

// Release отзывает ссылку и освобождает данные. Возвращает true только для вызова,
// который действительно освободил артефакт; повторные вызовы ничего не делают.
func (a *Artifact) Release() bool {
	if a == nil {
		return false
	}
	released := false
	a.once.Do(func() {
		a.mu.Lock()
		a.released = true
		a.data = nil
		a.mu.Unlock()

		if a.store != nil {
			a.store.revoke(a.id)
		}
		released = true
	})
	return released
}

// Option настраивает Store.
type Option func(*Store)

// WithLogger задаёт логгер реестра.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRevokeHook вызывается после отзыва каждой ссылки, вне блокировок реестра.
func WithRevokeHook(fn func(id string)) Option {
	return func(s *Store) { s.onRevoke = fn }
}

// Store — реестр живых артефактов.
type Store struct {
	mu       sync.RWMutex
	live     map[string]*Artifact
	log      *slog.Logger
	onRevoke func(id string)
}

// NewStore создаёт пустой реестр.
func NewStore(opts ...Option) *Store {
	s := &Store{
		live: map[string]*Artifact{},
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("component", "artifact"))
	return s
}

// Create проверяет, что data — изображение, и регистрирует его под новым идентификатором.
// mediaType — заявленный тип ответа, может быть пустым. Нераспознанные данные дают DecodeError.
func (s *Store) Create(data []byte, mediaType string) (*Artifact, error) {
	meta, err := Probe(data, mediaType)
	if err != nil {
		return nil, models.Wrap(models.KindDecode, opCreate, models.MsgDecode, err)
	}

	a := &Artifact{
		id:    uuid.NewString(),
		meta:  meta,
		size:  len(data),
		data:  data,
		store: s,
	}

	s.mu.Lock()
	s.live[a.id] = a
	s.mu.Unlock()

	s.log.Debug("artifact registered", slog.String("id", a.id), slog.Int("bytes", a.size), slog.String("format", meta.Format))
	return a, nil
}

// Open разрешает ссылку в артефакт.
func (s *Store) Open(id string) (*Artifact, error) {
	s.mu.RLock()
	a, ok := s.live[id]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrArtifactNotFound
	}
	return a, nil
}

// Len — количество неосвобождённых артефактов.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.live)
}

// AccessPath возвращает путь, по которому веб-интерфейс отдаёт артефакт.
func (s *Store) AccessPath(a *Artifact) string {
	if a == nil {
		return ""
	}
	return "/artifacts/" + a.id
}

func (s *Store) revoke(id string) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()

	if s.onRevoke != nil {
		s.onRevoke(id)
	}
}
