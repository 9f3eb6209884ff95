// Package compresshttp реализует HTTP-интерфейс сервиса сжатия изображений, с которым работает клиент.
// Эндпоинты:
//   - GET / — health-check, отвечает {"status":"ok"}.
//   - POST /compress — принимает multipart с полями image, quality, max_size, progressive,
//     уменьшает картинку так, чтобы длинная сторона не превышала max_size, и отдаёт JPEG.
//
// Сервис нужен для локальной разработки и интеграционных тестов клиента.
package compresshttp
