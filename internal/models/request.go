package models

// ImageFile — содержимое выбранного файла вместе с именем и заявленным media type.
type ImageFile struct {
	Name      string
	MediaType string
	Data      []byte
}

// Empty сообщает, что файл не выбран или пустой.
func (f *ImageFile) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// CompressionRequest описывает одну отправку на сервис сжатия.
// Диапазоны Quality и MaxSize носят рекомендательный характер и на клиенте не применяются.
type CompressionRequest struct {
	Image       *ImageFile
	Quality     int
	MaxSize     int
	Progressive bool
}
