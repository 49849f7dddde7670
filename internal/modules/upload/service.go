package upload

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxFileSize caps incoming files before any decoding happens.
	MaxFileSize = 5 * 1024 * 1024

	// CacheControl is the caching metadata every stored image carries.
	CacheControl = "max-age=3600"
)

// AllowedMimeTypes are the declared content types accepted as-is.
// HEIC/HEIF inputs are matched separately by substring because phones
// report them with vendor-specific type strings.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/jpg":  true,
}

// Service validates incoming studio images, runs them through Prepare,
// and stores the result in the blob store. The caller's middleware has
// already rejected unauthenticated requests before the file is read.
type Service struct {
	blobs BlobStore
}

func NewService(blobs BlobStore) *Service {
	return &Service{blobs: blobs}
}

// ValidateHeader applies the pre-preparation checks: size cap and
// content-type allow-list. It runs before the file body is read.
func ValidateHeader(fh *multipart.FileHeader) error {
	if fh.Size == 0 {
		return ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return ErrFileTooLarge
	}

	mimeType := strings.Split(fh.Header.Get("Content-Type"), ";")[0]
	mimeType = strings.TrimSpace(mimeType)
	if !AllowedMimeTypes[mimeType] &&
		!strings.Contains(mimeType, "heic") &&
		!strings.Contains(mimeType, "heif") {
		return ErrUnsupportedType
	}

	return nil
}

// Upload validates the file, prepares it, and stores it under a key
// unique to this admin and moment. Returns the public URL the studio
// record will reference.
//
// The key combines the admin ID, a millisecond timestamp, and a random
// suffix, so concurrent sessions cannot collide; the store still
// refuses to overwrite (Upsert false) as the last line of defense.
func (s *Service) Upload(adminID int64, fh *multipart.FileHeader) (string, error) {
	if err := ValidateHeader(fh); err != nil {
		return "", err
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	img, err := Prepare(file)
	if err != nil {
		return "", err
	}

	suffix := strings.Split(uuid.New().String(), "-")[0]
	key := fmt.Sprintf("public/%d_%d_%s%s", adminID, time.Now().UnixMilli(), suffix, OutputExt)

	err = s.blobs.Put(key, img.Data, PutOptions{
		CacheControl: CacheControl,
		Upsert:       false,
	})
	if err != nil {
		return "", err
	}

	url, err := s.blobs.PublicURL(key)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", ErrURLResolution
	}

	return url, nil
}
