// Package compressproto описывает HTTP-контракт сервиса сжатия изображений.
package compressproto

// Пути и поля multipart-запроса.
const (
	CompressPath = "/compress"
	HealthPath   = "/"

	FieldImage       = "image"
	FieldQuality     = "quality"
	FieldMaxSize     = "max_size"
	FieldProgressive = "progressive"
)

// Значения по умолчанию, которые клиент подставляет для нетронутых полей формы.
const (
	DefaultBaseURL     = "http://127.0.0.1:8001"
	DefaultQuality     = 85
	DefaultMaxSize     = 1920
	DefaultProgressive = true

	// DefaultDownloadName — имя файла при автоматическом сохранении, не зависит от исходного имени.
	DefaultDownloadName = "compressed.jpg"
)

// Рекомендуемые диапазоны; проверяет их только сервис.
const (
	MinQuality = 1
	MaxQuality = 95
	MinMaxSize = 256
	MaxMaxSize = 10000
)

// HealthStatusOK — значение поля status в ответе health-эндпоинта.
const HealthStatusOK = "ok"
