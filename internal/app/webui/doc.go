// Package webui — пользовательский интерфейс клиента: одна форма отправки картинки на сжатие.
//   - GET / — форма, индикатор занятости, область ошибки, превью и ссылка на скачивание.
//   - POST /compress — передаёт поля формы контроллеру отправки и возвращает на /.
//   - GET /artifacts/{id} — отдаёт байты текущего артефакта; ?download=1 добавляет Content-Disposition.
//   - GET /state — текущее состояние в JSON.
package webui
