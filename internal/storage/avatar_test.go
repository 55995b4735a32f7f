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
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, b)
	return &s3.PutObjectOutput{}, nil
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newStore(p ObjectPutter, base string) *AvatarStore {
	s := NewAvatarStore(p, "avatars-bucket", base, 1<<20)
	s.newID = func() string { return "fixed-id" }
	return s
}

func TestUpload_StoresWebp(t *testing.T) {
	p := &fakePutter{}
	s := newStore(p, "https://cdn.example.com/")

	url, err := s.Upload(context.Background(), 42, bytes.NewReader(pngImage(t, 1024, 256)))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/avatars/42/fixed-id.webp", url)
	require.Len(t, p.inputs, 1)
	assert.Equal(t, "avatars-bucket", *p.inputs[0].Bucket)
	assert.Equal(t, "avatars/42/fixed-id.webp", *p.inputs[0].Key)
	assert.Equal(t, "image/webp", *p.inputs[0].ContentType)

	cfg, err := webp.DecodeConfig(bytes.NewReader(p.bodies[0]))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestUpload_DefaultPublicURL(t *testing.T) {
	s := newStore(&fakePutter{}, "")
	url, err := s.Upload(context.Background(), 7, bytes.NewReader(pngImage(t, 10, 10)))
	require.NoError(t, err)
	assert.Equal(t, "https://avatars-bucket.s3.amazonaws.com/avatars/7/fixed-id.webp", url)
}

func TestUpload_Rejects(t *testing.T) {
	p := &fakePutter{}
	s := newStore(p, "")

	_, err := s.Upload(context.Background(), 1, strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	small := NewAvatarStore(p, "b", "", 16)
	_, err = small.Upload(context.Background(), 1, bytes.NewReader(pngImage(t, 10, 10)))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	assert.Empty(t, p.inputs)
}

func TestUpload_PutFailure(t *testing.T) {
	boom := errors.New("access denied")
	_, err := newStore(&fakePutter{err: boom}, "").Upload(context.Background(), 1, bytes.NewReader(pngImage(t, 8, 8)))
	assert.ErrorIs(t, err, boom)
}

func TestResize_KeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 400))
	assert.Same(t, image.Image(src), resize(src, MaxAvatarSide))

	tall := resize(image.NewRGBA(image.Rect(0, 0, 100, 2000)), MaxAvatarSide)
	assert.Equal(t, 25, tall.Bounds().Dx())
	assert.Equal(t, 512, tall.Bounds().Dy())
}

func TestNewS3Client(t *testing.T) {
	c := NewS3Client(S3Config{Region: "eu-west-3", Endpoint: "http://minio:9000", AccessKeyID: "k", SecretAccessKey: "s"})
	require.NotNil(t, c)
	assert.Equal(t, "eu-west-3", c.Options().Region)
	assert.True(t, c.Options().UsePathStyle)
}
