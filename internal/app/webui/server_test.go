package webui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/squeezer/internal/artifact"
	"github.com/yourname/squeezer/internal/logger"
	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/internal/testutil"
	"github.com/yourname/squeezer/internal/usecase/requestbuilder"
	"github.com/yourname/squeezer/internal/usecase/submission"
)

type stubController struct {
	mu     sync.Mutex
	state  submission.State
	fields []requestbuilder.Fields
	reject []error
	err    error
	saved  string
}

func (c *stubController) Submit(models.CompressionRequest) error { return c.err }

func (c *stubController) SubmitFields(f requestbuilder.Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = append(c.fields, f)
	return c.err
}

func (c *stubController) Reject(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.reject = append(c.reject, err)
	c.state = submission.Failed{Message: models.UserMessage(err), Err: err}
	return nil
}

func (c *stubController) State() submission.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *stubController) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (c *stubController) Saved() (string, error) { return c.saved, nil }
func (c *stubController) Close()                 {}

func newTestServer(t *testing.T, st submission.State) (http.Handler, *stubController, *artifact.Store) {
	t.Helper()
	ctrl := &stubController{state: st}
	store := artifact.NewStore(artifact.WithLogger(testutil.Logger()))
	h, _, err := New(Config{Controller: ctrl, Artifacts: store, Logger: testutil.Logger()})
	require.NoError(t, err)
	return h, ctrl, store
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex_Idle(t *testing.T) {
	h, _, _ := newTestServer(t, submission.Idle{})
	rec := get(h, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Kompres &amp; Unduh")
	assert.NotContains(t, body, "Memproses...")
	assert.Contains(t, body, `name="quality" min="1" max="95" value="85"`)
	assert.Contains(t, body, `name="max_size" min="256" max="10000" value="1920"`)
	assert.Contains(t, body, `value="true" checked`)
	assert.NotContains(t, body, `class="error"`)
	assert.NotContains(t, body, `http-equiv="refresh"`)
}

func TestIndex_Busy(t *testing.T) {
	h, _, _ := newTestServer(t, submission.InFlight{})
	body := get(h, "/").Body.String()

	assert.Contains(t, body, "Memproses...")
	assert.Contains(t, body, "disabled")
	assert.Contains(t, body, `http-equiv="refresh"`)
}

func TestIndex_Failed(t *testing.T) {
	h, _, _ := newTestServer(t, submission.Failed{Message: "Gagal: 400"})
	body := get(h, "/").Body.String()

	assert.Contains(t, body, `<p class="error" role="alert">Gagal: 400</p>`)
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "Kompres &amp; Unduh")
}

func TestIndex_Succeeded(t *testing.T) {
	h, ctrl, store := newTestServer(t, submission.Idle{})
	a, err := store.Create(testutil.JPEG(t, 40, 30), "image/jpeg")
	require.NoError(t, err)
	ctrl.state = submission.Succeeded{Artifact: a}
	ctrl.saved = "/tmp/compressed.jpg"

	body := get(h, "/").Body.String()
	assert.Contains(t, body, `<img src="/artifacts/`+a.ID()+`"`)
	assert.Contains(t, body, `href="/artifacts/`+a.ID()+`?download=1"`)
	assert.Contains(t, body, `download="compressed.jpg"`)
	assert.Contains(t, body, "40×30")
	assert.Contains(t, body, "/tmp/compressed.jpg")
}

func postForm(t *testing.T, h http.Handler, image []byte, values map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if image != nil {
		fw, err := mw.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/compress", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostCompress_UncheckedProgressive(t *testing.T) {
	h, ctrl, _ := newTestServer(t, submission.Idle{})
	img := testutil.JPEG(t, 8, 8)

	rec := postForm(t, h, img, map[string]string{
		"quality":         "70",
		"max_size":        "512",
		progressiveMarker: "1",
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	require.Len(t, ctrl.fields, 1)
	f := ctrl.fields[0]
	require.NotNil(t, f.Image)
	assert.Equal(t, "photo.jpg", f.Image.Name)
	assert.Equal(t, img, f.Image.Data)
	assert.Equal(t, map[string]string{"quality": "70", "max_size": "512", "progressive": "false"}, f.Values)

	body := get(h, "/").Body.String()
	assert.Contains(t, body, `value="70"`)
	assert.NotContains(t, body, `value="true" checked`)
}

func TestPostCompress_CheckedProgressive(t *testing.T) {
	h, ctrl, _ := newTestServer(t, submission.Idle{})

	postForm(t, h, testutil.JPEG(t, 8, 8), map[string]string{"progressive": "on", progressiveMarker: "1"})
	require.Len(t, ctrl.fields, 1)
	assert.Equal(t, "true", ctrl.fields[0].Values["progressive"])
}

func TestPostCompress_NoImage(t *testing.T) {
	h, ctrl, _ := newTestServer(t, submission.Idle{})

	rec := postForm(t, h, nil, map[string]string{"quality": "85"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, ctrl.fields, 1)
	assert.Nil(t, ctrl.fields[0].Image)
	_, ok := ctrl.fields[0].Values["progressive"]
	assert.False(t, ok, "without the marker the default applies")
}

func TestPostCompress_BusyIsIgnored(t *testing.T) {
	h, ctrl, _ := newTestServer(t, submission.InFlight{})
	ctrl.err = models.ErrBusy

	rec := postForm(t, h, testutil.JPEG(t, 8, 8), nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestGetArtifact(t *testing.T) {
	h, _, store := newTestServer(t, submission.Idle{})
	data := testutil.JPEG(t, 16, 16)
	a, err := store.Create(data, "")
	require.NoError(t, err)

	rec := get(h, "/artifacts/"+a.ID())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, data, rec.Body.Bytes())

	rec = get(h, "/artifacts/"+a.ID()+"?download=1")
	assert.Equal(t, "attachment; filename=compressed.jpg", rec.Header().Get("Content-Disposition"))

	a.Release()
	assert.Equal(t, http.StatusNotFound, get(h, "/artifacts/"+a.ID()).Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/artifacts/unknown").Code)
}

func TestGetState(t *testing.T) {
	h, ctrl, store := newTestServer(t, submission.Failed{Message: "Gagal mengompresi"})

	var resp stateResp
	require.NoError(t, json.NewDecoder(get(h, "/state").Body).Decode(&resp))
	assert.Equal(t, "failed", resp.State)
	assert.False(t, resp.Busy)
	assert.Equal(t, "Gagal mengompresi", resp.Message)
	assert.Nil(t, resp.Artifact)

	a, err := store.Create(testutil.PNG(t, 4, 2), "image/png")
	require.NoError(t, err)
	ctrl.mu.Lock()
	ctrl.state = submission.Succeeded{Artifact: a}
	ctrl.mu.Unlock()

	resp = stateResp{}
	require.NoError(t, json.NewDecoder(get(h, "/state").Body).Decode(&resp))
	assert.Equal(t, "succeeded", resp.State)
	require.NotNil(t, resp.Artifact)
	assert.Equal(t, a.ID(), resp.Artifact.ID)
	assert.Equal(t, "image/png", resp.Artifact.MediaType)
	assert.Equal(t, 4, resp.Artifact.Width)
	assert.Equal(t, "/artifacts/"+a.ID()+"?download=1", resp.Artifact.DownloadURL)
}

func TestPostCompress_RedisplaysBooleanishProgressive(t *testing.T) {
	h, _, _ := newTestServer(t, submission.Idle{})
	img := testutil.JPEG(t, 8, 8)

	postForm(t, h, img, map[string]string{"progressive": "0", progressiveMarker: "1"})
	assert.NotContains(t, get(h, "/").Body.String(), `value="true" checked`)

	postForm(t, h, img, map[string]string{"progressive": "yes", progressiveMarker: "1"})
	assert.Contains(t, get(h, "/").Body.String(), `value="true" checked`)

	postForm(t, h, img, map[string]string{"progressive": "maybe", progressiveMarker: "1"})
	assert.Contains(t, get(h, "/").Body.String(), `value="true" checked`, "unparseable value keeps the previous state")
}

func TestPostCompress_OversizedUploadShowsError(t *testing.T) {
	ctrl := &stubController{state: submission.Idle{}}
	store := artifact.NewStore(artifact.WithLogger(testutil.Logger()))
	h, _, err := New(Config{Controller: ctrl, Artifacts: store, MaxUploadBytes: 512, Logger: testutil.Logger()})
	require.NoError(t, err)

	rec := postForm(t, h, testutil.JPEG(t, 128, 128), map[string]string{"quality": "80"})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, ctrl.fields, "nothing is submitted")
	require.Len(t, ctrl.reject, 1)
	assert.True(t, models.IsKind(ctrl.reject[0], models.KindValidation))

	body := get(h, "/").Body.String()
	assert.Contains(t, body, `<p class="error" role="alert">`)
	assert.Contains(t, body, models.UserMessage(ctrl.reject[0]))
}

func TestRequestLoggerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctrl := &stubController{state: submission.Idle{}}
	h, _, err := New(Config{
		Controller: ctrl,
		Artifacts:  artifact.NewStore(artifact.WithLogger(testutil.Logger())),
		Logger:     logger.New(&buf, "debug", "json"),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, get(h, "/artifacts/missing").Code)
	assert.Contains(t, buf.String(), `"msg":"artifact unavailable"`)
	assert.Contains(t, buf.String(), `"request_id":"`)
	assert.Contains(t, buf.String(), `"path":"/artifacts/missing"`)
}
