// Package storage keeps user avatars in an S3-compatible bucket as webp.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

const (
	// MaxAvatarSide is the longest edge of a stored avatar, in pixels.
	MaxAvatarSide = 512

	webpQuality = 80
)

var (
	ErrFileTooLarge = httperr.ErrInvalidArgument(
		"file_too_large", "The image exceeds the maximum allowed size.")

	ErrUnsupportedImage = httperr.ErrInvalidArgument(
		"unsupported_image", "Only JPEG, PNG and WebP images are accepted.")
)

// ObjectPutter is the subset of *s3.Client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type AvatarStore struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
	maxBytes      int64
	newID         func() string
}

func NewAvatarStore(client ObjectPutter, bucket, publicBaseURL string, maxBytes int64) *AvatarStore {
	return &AvatarStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      maxBytes,
		newID:         uuid.NewString,
	}
}

// Upload normalises the image read from r and stores it under
// avatars/{userID}/{uuid}.webp, returning its public URL.
func (s *AvatarStore) Upload(ctx context.Context, userID uint, r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if int64(len(raw)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	encoded, err := Normalize(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%s.webp", userID, s.newID())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(encoded),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("put avatar: %w", err)
	}

	return s.publicURL(key), nil
}

func (s *AvatarStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// Normalize decodes a JPEG, PNG or WebP image, shrinks it so neither side
// exceeds MaxAvatarSide and re-encodes it as webp.
func Normalize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := resize(src, MaxAvatarSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	nw, nh := maxSide, maxSide
	if w > h {
		nh = max(1, h*maxSide/w)
	} else {
		nw = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
