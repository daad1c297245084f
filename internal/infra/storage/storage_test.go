package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-club/internal/httperr"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeS3 struct {
	in  *s3.PutObjectInput
	err error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	return &s3.PutObjectOutput{}, f.err
}

func TestToWebPDownscalesKeepingAspect(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 2048, 1024)), MaxImageSide)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 300, 600)), MaxImageSide)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
}

func TestUploadKeysByShopAndKind(t *testing.T) {
	api := &fakeS3{}
	imgs := NewImages(api, S3Config{Bucket: "media", PublicBaseURL: "https://cdn.test/"})

	url, err := imgs.Upload(context.Background(), 4, "products", bytes.NewReader(pngOf(t, 10, 10)))
	require.NoError(t, err)

	key := *api.in.Key
	assert.True(t, strings.HasPrefix(key, "4/products/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
	assert.Equal(t, "image/webp", *api.in.ContentType)
	assert.Equal(t, "https://cdn.test/"+key, url)

	body, err := io.ReadAll(api.in.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}

func TestUploadErrors(t *testing.T) {
	imgs := NewImages(&fakeS3{}, S3Config{Bucket: "media"})
	_, err := imgs.Upload(context.Background(), 1, "logo", strings.NewReader("not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	failing := NewImages(&fakeS3{err: errors.New("denied")}, S3Config{Bucket: "media"})
	_, err = failing.Upload(context.Background(), 1, "logo", bytes.NewReader(pngOf(t, 10, 10)))
	assert.True(t, httperr.IsBusiness(err, "object_store_unavailable"))

	var none *Images
	_, err = none.Upload(context.Background(), 1, "logo", bytes.NewReader(pngOf(t, 10, 10)))
	assert.True(t, httperr.IsKind(err, httperr.KindUpstream))
}
