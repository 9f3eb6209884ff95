package webui

import (
	"strconv"

	"github.com/yourname/squeezer/internal/usecase/requestbuilder"
	"github.com/yourname/squeezer/pkg/compressproto"
)

// progressiveMarker отправляется вместе с формой: без него нельзя отличить снятый чекбокс от отсутствующего поля.
const progressiveMarker = "progressive_field"

// formValues — значения полей, которые форма показывает при следующей отрисовке.
type formValues struct {
	Quality     string
	MaxSize     string
	Progressive bool
}

func defaultForm() formValues {
	return formValues{
		Quality:     strconv.Itoa(compressproto.DefaultQuality),
		MaxSize:     strconv.Itoa(compressproto.DefaultMaxSize),
		Progressive: compressproto.DefaultProgressive,
	}
}

// remember сохраняет введённые значения, чтобы после перезагрузки форма осталась заполненной.
func (s *Server) remember(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := values[compressproto.FieldQuality]; ok {
		s.form.Quality = v
	}
	if v, ok := values[compressproto.FieldMaxSize]; ok {
		s.form.MaxSize = v
	}
	if v, ok := values[compressproto.FieldProgressive]; ok {
		// нераспознанное значение оставляет чекбокс как был
		if checked, err := requestbuilder.ParseBool(v); err == nil {
			s.form.Progressive = checked
		}
	}
}

func (s *Server) currentForm() formValues {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}
