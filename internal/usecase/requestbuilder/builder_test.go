package requestbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourname/squeezer/internal/models"
	"github.com/yourname/squeezer/internal/testutil"
)

func jpegField(t *testing.T) *models.ImageFile {
	return &models.ImageFile{Name: "photo.jpg", MediaType: "image/jpeg", Data: testutil.JPEG(t, 8, 8)}
}

func TestBuild_Defaults(t *testing.T) {
	req, err := Build(Fields{Image: jpegField(t)})
	require.NoError(t, err)
	assert.Equal(t, 85, req.Quality)
	assert.Equal(t, 1920, req.MaxSize)
	assert.True(t, req.Progressive)
	assert.Equal(t, "photo.jpg", req.Image.Name)
}

func TestBuild_MissingImage(t *testing.T) {
	for _, f := range []Fields{
		{},
		{Image: &models.ImageFile{Name: "empty.jpg"}},
	} {
		_, err := Build(f)
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.KindValidation))
		assert.Equal(t, models.MsgImageRequired, models.UserMessage(err))
	}
}

func TestBuild_PassesOutOfRangeThrough(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		quality int
		maxSize int
	}{
		{"quality zero", map[string]string{"quality": "0"}, 0, 1920},
		{"quality above max", map[string]string{"quality": "96"}, 96, 1920},
		{"tiny max_size", map[string]string{"max_size": "10"}, 85, 10},
		{"huge max_size", map[string]string{"max_size": "20000", "quality": " 50 "}, 50, 20000},
		{"empty means default", map[string]string{"quality": "", "max_size": ""}, 85, 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Build(Fields{Image: jpegField(t), Values: tt.values})
			require.NoError(t, err)
			assert.Equal(t, tt.quality, req.Quality)
			assert.Equal(t, tt.maxSize, req.MaxSize)
		})
	}
}

func TestBuild_RejectsNonInteger(t *testing.T) {
	_, err := Build(Fields{Image: jpegField(t), Values: map[string]string{"quality": "high"}})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindValidation))
	assert.Equal(t, "Nilai quality tidak valid", models.UserMessage(err))
}

func TestBuild_Progressive(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"on", true},
		{"true", true},
		{"1", true},
		{"false", false},
		{"off", false},
		{"", false},
	}
	for _, tt := range tests {
		req, err := Build(Fields{Image: jpegField(t), Values: map[string]string{"progressive": tt.raw}})
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, req.Progressive, tt.raw)
	}

	_, err := Build(Fields{Image: jpegField(t), Values: map[string]string{"progressive": "maybe"}})
	assert.True(t, models.IsKind(err, models.KindValidation))
}

func TestBuild_DetectsMediaType(t *testing.T) {
	img := &models.ImageFile{Name: "upload", Data: testutil.PNG(t, 4, 4)}
	req, err := Build(Fields{Image: img})
	require.NoError(t, err)
	assert.Equal(t, "image/png", req.Image.MediaType)
	assert.Empty(t, img.MediaType, "input must not be mutated")
}
