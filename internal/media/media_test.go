package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateBytes(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello world!"))
	assert.Equal(t, 12, EstimateBytes(payload))

	payload = base64.StdEncoding.EncodeToString([]byte("hello"))
	assert.Equal(t, 5, EstimateBytes(payload))

	payload = base64.StdEncoding.EncodeToString([]byte("hell"))
	assert.Equal(t, 4, EstimateBytes(payload))

	assert.Equal(t, 0, EstimateBytes(""))
}

func TestParseDataURL(t *testing.T) {
	d, err := ParseDataURL("data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.MIME)
	assert.Equal(t, "AAAA", d.Payload)

	for _, bad := range []string{"AAAA", "data:text/plain;base64,AAAA", "data:image/png,AAAA", "data:image/png;base64"} {
		_, err := ParseDataURL(bad)
		assert.ErrorIs(t, err, ErrNotDataURL, bad)
	}
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("", MaxLinkIconBytes, "icon"))
	assert.NoError(t, ValidateImage("https://cdn.example.com/a.png", MaxLinkIconBytes, "icon"))

	small := "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, 1024))
	assert.NoError(t, ValidateImage(small, MaxLinkIconBytes, "icon"))

	big := "data:image/png;base64," + strings.Repeat("A", (MaxLinkIconBytes+10)*4/3)
	err := ValidateImage(big, MaxLinkIconBytes, "icon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "icon must be smaller than 220KB")

	err = ValidateImage("not an image", MaxLinkIconBytes, "icon")
	assert.EqualError(t, err, "icon must be an image data URL")
}

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestOffloadUploadsWebP(t *testing.T) {
	putter := &fakePutter{}
	o := NewOffloader(putter, "media", "https://cdn.example.com/")

	url, err := o.Offload(context.Background(), pngDataURL(t, 40, 20), KindInvoiceLogo)
	require.NoError(t, err)

	require.Len(t, putter.inputs, 1)
	assert.Equal(t, "media", *putter.inputs[0].Bucket)
	assert.Equal(t, "image/webp", *putter.inputs[0].ContentType)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/invoice-logos/"))
	assert.True(t, strings.HasSuffix(url, ".webp"))
	assert.Equal(t, "RIFF", string(putter.bodies[0][:4]))
}

func TestOffloadPassThrough(t *testing.T) {
	var nilOffloader *Offloader
	v, err := nilOffloader.Offload(context.Background(), "data:image/png;base64,AAAA", KindLinkIcon)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", v)

	o := NewOffloader(&fakePutter{}, "media", "https://cdn.example.com")
	v, err = o.Offload(context.Background(), "https://elsewhere.example.com/x.png", KindLinkIcon)
	require.NoError(t, err)
	assert.Equal(t, "https://elsewhere.example.com/x.png", v)
}

func TestFitWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	out := fitWidth(src, 250)
	assert.Equal(t, 250, out.Bounds().Dx())
	assert.Equal(t, 125, out.Bounds().Dy())

	assert.Same(t, src, fitWidth(src, 2000))
}
