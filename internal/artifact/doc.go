// Package artifact хранит результаты сжатия в памяти процесса и выдаёт на них локальные ссылки.
//
// Store работает как реестр object URL: Create регистрирует байты под новым идентификатором,
// Open разрешает идентификатор обратно в артефакт, Release отзывает ссылку ровно один раз
// и освобождает данные. После Release ссылка больше не разрешается.
package artifact
