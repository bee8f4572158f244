package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotConfigured is returned by the disabled uploader.
var ErrNotConfigured = errors.New("object storage is not configured")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// TeamLogoKey builds the object key of a team logo.
func TeamLogoKey(teamID, ext string) string {
	return fmt.Sprintf("teams/%s/logo%s", teamID, ext)
}

// PlayerImageKey builds the object key of a player photo.
func PlayerImageKey(playerID, ext string) string {
	return fmt.Sprintf("players/%s/image%s", playerID, ext)
}

// ExtensionFromContentType maps an image MIME type to a file extension.
func ExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	}
	return "", fmt.Errorf("unsupported image content type: '%s'", strings.TrimSpace(contentType))
}

type disabledUploader struct{}

// NewDisabledUploader returns an uploader that refuses every write.
func NewDisabledUploader() FileUploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(context.Context, string, string, io.Reader) (*UploadResult, error) {
	return nil, ErrNotConfigured
}

func (disabledUploader) Delete(context.Context, string) error {
	return ErrNotConfigured
}

func (disabledUploader) GetPublicURL(string) string {
	return ""
}
