// Package media validates base64 image data URLs and optionally moves them
// to object storage.
package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Byte ceilings for uploaded images.
const (
	MaxInvoiceLogoBytes    = 900 * 1024
	MaxPortfolioCoverBytes = 900 * 1024
	MaxLinkIconBytes       = 220 * 1024
)

var ErrNotDataURL = errors.New("media: not a base64 image data URL")

type DataURL struct {
	MIME    string
	Payload string
}

// ParseDataURL splits "data:image/png;base64,...." without decoding it.
func ParseDataURL(s string) (DataURL, error) {
	if !strings.HasPrefix(s, "data:") {
		return DataURL{}, ErrNotDataURL
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return DataURL{}, ErrNotDataURL
	}
	meta := s[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return DataURL{}, ErrNotDataURL
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if !strings.HasPrefix(mime, "image/") {
		return DataURL{}, ErrNotDataURL
	}
	return DataURL{MIME: mime, Payload: s[comma+1:]}, nil
}

// EstimateBytes computes the decoded size from the base64 length alone.
func EstimateBytes(payload string) int {
	padding := 0
	if strings.HasSuffix(payload, "==") {
		padding = 2
	} else if strings.HasSuffix(payload, "=") {
		padding = 1
	}
	n := len(payload)*3/4 - padding
	if n < 0 {
		return 0
	}
	return n
}

func (d DataURL) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Payload)
}

func IsRemoteURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// ValidateImage accepts "", an http(s) URL, or an image data URL of at most
// maxBytes. label names the field in the returned error.
func ValidateImage(value string, maxBytes int, label string) error {
	if value == "" || IsRemoteURL(value) {
		return nil
	}
	d, err := ParseDataURL(value)
	if err != nil {
		return fmt.Errorf("%s must be an image data URL", label)
	}
	if EstimateBytes(d.Payload) > maxBytes {
		return fmt.Errorf("%s must be smaller than %dKB", label, maxBytes/1024)
	}
	return nil
}
