package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// ImageEncoder turns a selected file into the opaque payload stored on an item.
type ImageEncoder interface {
	Encode(ctx context.Context, fileName string, r io.Reader) (string, error)
}

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".heic", ".heif", ".webp"}

var allowedImageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

var ErrImageTooLarge = errors.New("image too large")

// DataURLEncoder produces data:<mime>;base64,... payloads.
type DataURLEncoder struct {
	MaxBytes int64
}

func (e DataURLEncoder) Encode(ctx context.Context, fileName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != "" && !slices.Contains(allowedImageExtensions, ext) {
		return "", fmt.Errorf("unsupported image extension: %s", ext)
	}

	limit := e.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > limit {
		return "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", errors.New("empty image")
	}

	mimeType := detectImageType(data, ext)
	if !allowedImageMimeTypes[mimeType] {
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}

	var buf bytes.Buffer
	buf.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(mimeType)
	buf.WriteString(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	_, _ = enc.Write(data)
	_ = enc.Close()
	return buf.String(), nil
}

// detectImageType sniffs the content; HEIC is not sniffed by net/http so the
// extension decides for it.
func detectImageType(data []byte, ext string) string {
	mimeType := http.DetectContentType(data)
	if mimeType == "application/octet-stream" && (ext == ".heic" || ext == ".heif") {
		return "image/heic"
	}
	return mimeType
}

// EncodeAsync runs enc in its own goroutine and hands the result to deliver.
// The returned channel closes once deliver has been called.
func EncodeAsync(ctx context.Context, enc ImageEncoder, fileName string, r io.Reader, deliver func(payload string, err error)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		payload, err := enc.Encode(ctx, fileName, r)
		deliver(payload, err)
	}()
	return done
}
