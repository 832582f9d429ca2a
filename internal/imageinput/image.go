// Package imageinput validates uploaded images before they reach the analysis service.
package imageinput

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"postcraft/internal/domain"
)

// DefaultMaxBytes is the upload cap used when none is configured.
const DefaultMaxBytes int64 = 10 << 20

// AcceptedTypes lists the MIME types the analysis service is sent.
var AcceptedTypes = []string{"image/png", "image/jpeg", "image/webp"}

type Image struct {
	MIMEType string
	Data     []byte
}

func (img Image) Size() int64 { return int64(len(img.Data)) }

func accepted(mimeType string) bool {
	for _, t := range AcceptedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

func normalize(mimeType string) string {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return strings.ToLower(mt)
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// Validate checks type and size. maxBytes <= 0 selects DefaultMaxBytes.
func Validate(mimeType string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if mt := normalize(mimeType); !accepted(mt) {
		return fmt.Errorf("%q, upload PNG, JPEG or WEBP: %w", mimeType, domain.ErrUnsupportedImage)
	}
	if size > maxBytes {
		return fmt.Errorf("%.1fMB exceeds the %.0fMB limit: %w",
			float64(size)/(1<<20), float64(maxBytes)/(1<<20), domain.ErrImageTooLarge)
	}
	return nil
}

// Read consumes at most maxBytes+1 bytes from r and validates the result.
// An empty or generic declared type is replaced by the sniffed content type.
func Read(r io.Reader, declaredMIME string, maxBytes int64) (Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, maxBytes+1)); err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	data := buf.Bytes()
	mt := normalize(declaredMIME)
	if mt == "" || mt == "application/octet-stream" {
		mt = normalize(http.DetectContentType(data))
	}
	if err := Validate(mt, int64(len(data)), maxBytes); err != nil {
		return Image{}, err
	}
	return Image{MIMEType: mt, Data: data}, nil
}

// Load reads an image file, taking its type from the extension when known.
func Load(path string, maxBytes int64) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()
	img, err := Read(f, mime.TypeByExtension(filepath.Ext(path)), maxBytes)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, nil
}
