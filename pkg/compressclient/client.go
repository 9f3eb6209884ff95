package compressclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/pkg/compressproto"
)

const opCompress = "compress"

// Result — тело успешного ответа сервиса сжатия.
type Result struct {
	Data        []byte
	ContentType string
}

type Client interface {
	// Compress отправляет изображение на сжатие и возвращает полученные байты
	Compress(ctx context.Context, baseURL string, req models.CompressionRequest) (Result, error)
	// Health проверяет, что сервис отвечает на health-эндпоинте
	Health(ctx context.Context, baseURL string) error
}

type httpClient struct {
	c *http.Client
}

// New создаёт HTTP-клиент с общим таймаутом на запрос.
func New(timeout time.Duration) Client {
	return &httpClient{
		c: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient позволяет подставить готовый *http.Client (тесты, кастомный транспорт).
func NewWithHTTPClient(c *http.Client) Client {
	if c == nil {
		c = &http.Client{}
	}
	return &httpClient{c: c}
}

// Compress кодирует запрос в multipart/form-data и отправляет POST {baseURL}/compress.
func (h *httpClient) Compress(ctx context.Context, baseURL string, req models.CompressionRequest) (Result, error) {
	if req.Image.Empty() {
		return Result{}, models.NewValidation(opCompress, models.MsgImageRequired)
	}

	body, contentType, err := encodeForm(req)
	if err != nil {
		return Result{}, models.Wrap(models.KindTransport, opCompress, models.MsgTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(baseURL, compressproto.CompressPath), body)
	if err != nil {
		return Result{}, models.Wrap(models.KindTransport, opCompress, models.MsgTransport, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "image/*")

	resp, err := h.c.Do(httpReq)
	if err != nil {
		return Result{}, models.Wrap(models.KindTransport, opCompress, models.MsgTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= http.StatusMultipleChoices {
		// Тело ошибки не интересно, но дочитываем, чтобы соединение вернулось в пул.
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, models.NewService(opCompress, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, models.Wrap(models.KindTransport, opCompress, models.MsgTransport, err)
	}
	if len(data) == 0 {
		return Result{}, models.Wrap(models.KindDecode, opCompress, models.MsgDecode, fmt.Errorf("empty response body"))
	}

	return Result{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

type healthPayload struct {
	Status string `json:"status"`
}

// Health выполняет GET {baseURL}/ и ждёт {"status":"ok"}.
func (h *httpClient) Health(ctx context.Context, baseURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(baseURL, compressproto.HealthPath), nil)
	if err != nil {
		return err
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s", resp.Status)
	}

	var payload healthPayload
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode health payload: %w", err)
	}
	if payload.Status != compressproto.HealthStatusOK {
		return fmt.Errorf("service reports status %q", payload.Status)
	}

	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeForm собирает multipart-тело: файл image и три текстовых поля.
func encodeForm(req models.CompressionRequest) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	name := req.Image.Name
	if strings.TrimSpace(name) == "" {
		name = "image"
	}
	mediaType := req.Image.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		compressproto.FieldImage, quoteEscaper.Replace(name)))
	hdr.Set("Content-Type", mediaType)

	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(req.Image.Data); err != nil {
		return nil, "", err
	}

	fields := []struct {
		name  string
		value string
	}{
		{compressproto.FieldQuality, strconv.Itoa(req.Quality)},
		{compressproto.FieldMaxSize, strconv.Itoa(req.MaxSize)},
		{compressproto.FieldProgressive, strconv.FormatBool(req.Progressive)},
	}
	for _, f := range fields {
		if err = mw.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if err = mw.Close(); err != nil {
		return nil, "", err
	}

	return buf, mw.FormDataContentType(), nil
}

func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
