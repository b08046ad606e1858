package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/freelance-desk/internal/config"
)

// Kind decides where an image lands and how wide it may be.
type Kind struct {
	Folder   string
	MaxWidth int
}

var (
	KindInvoiceLogo    = Kind{Folder: "invoice-logos", MaxWidth: 512}
	KindPortfolioCover = Kind{Folder: "portfolio-covers", MaxWidth: 1600}
	KindLinkIcon       = Kind{Folder: "portfolio-icons", MaxWidth: 256}
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Offloader re-encodes data URL images to WebP and uploads them. A nil
// *Offloader stores nothing and hands values back unchanged.
type Offloader struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	quality float32
}

func NewOffloader(client ObjectPutter, bucket, publicBaseURL string) *Offloader {
	return &Offloader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		quality: 82,
	}
}

func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.Endpoint != "",
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// FromConfig returns nil when no bucket is configured.
func FromConfig(cfg config.S3Config) *Offloader {
	if !cfg.Enabled() {
		return nil
	}
	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return NewOffloader(NewS3Client(cfg), cfg.Bucket, base)
}

// Offload returns the public URL of the stored image. Empty values and
// remote URLs pass through.
func (o *Offloader) Offload(ctx context.Context, value string, kind Kind) (string, error) {
	if o == nil || value == "" || IsRemoteURL(value) {
		return value, nil
	}

	d, err := ParseDataURL(value)
	if err != nil {
		return "", err
	}
	raw, err := d.Decode()
	if err != nil {
		return "", fmt.Errorf("media: decode base64: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("media: decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, fitWidth(img, kind.MaxWidth), &webp.Options{Quality: o.quality}); err != nil {
		return "", fmt.Errorf("media: encode webp: %w", err)
	}

	key := fmt.Sprintf("%s/%s.webp", kind.Folder, uuid.NewString())
	if _, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	}); err != nil {
		return "", fmt.Errorf("media: upload %s: %w", key, err)
	}

	return o.baseURL + "/" + key, nil
}

func fitWidth(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
