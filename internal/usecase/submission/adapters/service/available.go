package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/yourname/squeezer/pkg/compressclient"
)

const healthTimeout = 2 * time.Second

// HealthAdapter определяет готовность сервиса сжатия по его health-эндпоинту.
type HealthAdapter struct {
	Client compressclient.Client
}

// NewHealthAdapter инициализирует адаптер доступности; nil-клиент заменяется клиентом с коротким таймаутом.
func NewHealthAdapter(cli compressclient.Client) *HealthAdapter {
	if cli == nil {
		cli = compressclient.New(healthTimeout)
	}
	return &HealthAdapter{Client: cli}
}

// Report — результат одной проверки.
type Report struct {
	BaseURL string
	OK      bool
	Latency time.Duration
	Err     error
}

// Check опрашивает сервис и возвращает отчёт; ошибка не прерывает работу вызывающего.
func (a *HealthAdapter) Check(ctx context.Context, baseURL string) Report {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	started := time.Now()
	err := a.Client.Health(ctx, baseURL)
	rep := Report{
		BaseURL: baseURL,
		OK:      err == nil,
		Latency: time.Since(started),
	}
	if err != nil {
		rep.Err = fmt.Errorf("service %s not ready: %w", baseURL, err)
	}
	return rep
}
