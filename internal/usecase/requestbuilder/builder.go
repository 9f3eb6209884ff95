// Package requestbuilder собирает CompressionRequest из значений полей формы.
package requestbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/pkg/compressproto"
)

const opBuild = "build"

// Fields — значения полей формы: выбранный файл и текстовые поля по именам протокола.
// Отсутствующий ключ означает, что пользователь не трогал поле.
type Fields struct {
	Image  *models.ImageFile
	Values map[string]string
}

// Build превращает значения полей в запрос на сжатие.
// Диапазоны quality/max_size не проверяются: значения передаются сервису как есть.
func Build(fields Fields) (models.CompressionRequest, error) {
	if fields.Image.Empty() {
		return models.CompressionRequest{}, models.NewValidation(opBuild, models.MsgImageRequired)
	}

	quality, err := intField(fields.Values, compressproto.FieldQuality, compressproto.DefaultQuality)
	if err != nil {
		return models.CompressionRequest{}, err
	}
	maxSize, err := intField(fields.Values, compressproto.FieldMaxSize, compressproto.DefaultMaxSize)
	if err != nil {
		return models.CompressionRequest{}, err
	}
	progressive, err := boolField(fields.Values, compressproto.FieldProgressive, compressproto.DefaultProgressive)
	if err != nil {
		return models.CompressionRequest{}, err
	}

	img := *fields.Image
	if strings.TrimSpace(img.MediaType) == "" {
		img.MediaType = mimetype.Detect(img.Data).String()
	}

	return models.CompressionRequest{
		Image:       &img,
		Quality:     quality,
		MaxSize:     maxSize,
		Progressive: progressive,
	}, nil
}

// intField читает целое поле; пустое или отсутствующее поле даёт значение по умолчанию.
func intField(values map[string]string, name string, def int) (int, error) {
	raw, ok := values[name]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.Error{
			Kind:    models.KindValidation,
			Op:      opBuild,
			Message: fmt.Sprintf(models.MsgInvalidField, name),
			Cause:   err,
		}
	}
	return n, nil
}

// boolField читает флаг progressive. Отсутствующее поле даёт значение по умолчанию.
func boolField(values map[string]string, name string, def bool) (bool, error) {
	raw, ok := values[name]
	if !ok {
		return def, nil
	}

	v, err := ParseBool(raw)
	if err != nil {
		return false, &models.Error{
			Kind:    models.KindValidation,
			Op:      opBuild,
			Message: fmt.Sprintf(models.MsgInvalidField, name),
			Cause:   err,
		}
	}
	return v, nil
}

// ParseBool понимает значения чекбокса и CLI-флагов. Пустое значение — «не отмечено».
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes", "checked":
		return true, nil
	case "false", "0", "off", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected boolean value %q", raw)
	}
}
