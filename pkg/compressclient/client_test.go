package compressclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/pkg/compressproto"
)

func sampleRequest() models.CompressionRequest {
	return models.CompressionRequest{
		Image: &models.ImageFile{
			Name:      `cat "small".png`,
			MediaType: "image/png",
			Data:      []byte("fake-png-bytes"),
		},
		Quality:     85,
		MaxSize:     1920,
		Progressive: true,
	}
}

func TestCompress_SendsMultipartFields(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, compressproto.CompressPath, r.URL.Path)

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "85", r.FormValue(compressproto.FieldQuality))
		assert.Equal(t, "1920", r.FormValue(compressproto.FieldMaxSize))
		assert.Equal(t, "true", r.FormValue(compressproto.FieldProgressive))

		f, fh, err := r.FormFile(compressproto.FieldImage)
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "fake-png-bytes", string(data))
		assert.Equal(t, `cat "small".png`, fh.Filename)
		assert.Equal(t, "image/png", fh.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(srv.Close)

	res, err := New(5*time.Second).Compress(context.Background(), srv.URL+"/", sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "jpeg-bytes", string(res.Data))
	assert.Equal(t, "image/jpeg", res.ContentType)
}

func TestCompress_PassesOutOfRangeValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "0", r.FormValue(compressproto.FieldQuality))
		assert.Equal(t, "false", r.FormValue(compressproto.FieldProgressive))
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	req := sampleRequest()
	req.Quality = 0
	req.Progressive = false

	_, err := New(5*time.Second).Compress(context.Background(), srv.URL, req)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindService))
	assert.Equal(t, http.StatusBadRequest, models.StatusCode(err))
	assert.Equal(t, "Gagal: 400", models.UserMessage(err))
}

func TestCompress_EmptyBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	_, err := New(5*time.Second).Compress(context.Background(), srv.URL, sampleRequest())
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindDecode))
}

func TestCompress_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(time.Second).Compress(context.Background(), base, sampleRequest())
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindTransport))
	assert.Equal(t, models.MsgTransport, models.UserMessage(err))
}

func TestCompress_MissingImage(t *testing.T) {
	_, err := New(time.Second).Compress(context.Background(), "http://127.0.0.1:1", models.CompressionRequest{})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindValidation))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, New(time.Second).Health(context.Background(), srv.URL))

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"degraded"}`))
	}))
	t.Cleanup(bad.Close)
	require.Error(t, New(time.Second).Health(context.Background(), bad.URL))
}
