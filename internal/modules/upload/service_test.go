package upload

import (
	"bytes"
	"fmt"
	"image/color"
	"mime/multipart"
	"net/textproto"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// in-memory blob store capturing every Put
type fakeBlobStore struct {
	objects map[string][]byte
	lastOpt PutOptions
	putErr  error
	noURL   bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(path string, data []byte, opts PutOptions) error {
	f.lastOpt = opts
	if f.putErr != nil {
		return f.putErr
	}
	if !opts.Upsert {
		if _, ok := f.objects[path]; ok {
			return ErrKeyExists
		}
	}
	f.objects[path] = data
	return nil
}

func (f *fakeBlobStore) PublicURL(path string) (string, error) {
	if f.noURL {
		return "", ErrURLResolution
	}
	return "https://cdn.example.com/studio-images/" + path, nil
}

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	assert.NoError(t, err)
	return form.File["image"][0]
}

func TestValidateHeader_AcceptsAllowedTypes(t *testing.T) {
	data := pngBytes(t, 4, 4, color.White)
	for _, ct := range []string{"image/jpeg", "image/png", "image/jpg", "image/heic", "image/heif", "image/heic-sequence"} {
		fh := fileHeader(t, "a.png", ct, data)
		assert.NoError(t, ValidateHeader(fh), ct)
	}
}

func TestValidateHeader_RejectsUnsupportedTypes(t *testing.T) {
	data := pngBytes(t, 4, 4, color.White)
	for _, ct := range []string{"image/gif", "application/pdf", "text/html", "image/HEIC"} {
		fh := fileHeader(t, "a.bin", ct, data)
		assert.ErrorIs(t, ValidateHeader(fh), ErrUnsupportedType, ct)
	}
}

func TestValidateHeader_RejectsOversizedFile(t *testing.T) {
	fh := fileHeader(t, "a.png", "image/png", pngBytes(t, 4, 4, color.White))
	fh.Size = MaxFileSize + 1

	assert.ErrorIs(t, ValidateHeader(fh), ErrFileTooLarge)
}

func TestValidateHeader_RejectsEmptyFile(t *testing.T) {
	fh := fileHeader(t, "a.png", "image/png", pngBytes(t, 4, 4, color.White))
	fh.Size = 0

	assert.ErrorIs(t, ValidateHeader(fh), ErrEmptyFile)
}

func TestUpload_StoresPreparedImageAndReturnsURL(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := NewService(blobs)

	fh := fileHeader(t, "studio.png", "image/png", pngBytes(t, 2400, 1200, color.White))

	url, err := svc.Upload(7, fh)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/studio-images/public/7_"))
	assert.True(t, strings.HasSuffix(url, OutputExt))

	assert.Len(t, blobs.objects, 1)
	assert.Equal(t, CacheControl, blobs.lastOpt.CacheControl)
	assert.False(t, blobs.lastOpt.Upsert)

	for key, data := range blobs.objects {
		assert.Regexp(t, regexp.MustCompile(`^public/7_\d+_[0-9a-f]{8}\.jpg$`), key)
		// Stored object is the re-encoded JPEG, not the PNG input.
		img := decodeJPEG(t, data)
		assert.Equal(t, 1200, img.Bounds().Dx())
		assert.Equal(t, 600, img.Bounds().Dy())
	}
}

func TestUpload_UniqueKeysAcrossCalls(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := NewService(blobs)

	data := pngBytes(t, 16, 16, color.White)
	for i := 0; i < 3; i++ {
		_, err := svc.Upload(7, fileHeader(t, "same.png", "image/png", data))
		assert.NoError(t, err)
	}
	assert.Len(t, blobs.objects, 3)
}

func TestUpload_ValidationFailureSkipsBlobStore(t *testing.T) {
	blobs := newFakeBlobStore()
	svc := NewService(blobs)

	fh := fileHeader(t, "big.png", "image/png", pngBytes(t, 4, 4, color.White))
	fh.Size = MaxFileSize + 1

	_, err := svc.Upload(7, fh)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, blobs.objects)

	fh = fileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF"))
	_, err = svc.Upload(7, fh)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, blobs.objects)
}

func TestUpload_KeyCollisionIsHardFailure(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.putErr = ErrKeyExists
	svc := NewService(blobs)

	_, err := svc.Upload(7, fileHeader(t, "a.png", "image/png", pngBytes(t, 8, 8, color.White)))
	assert.ErrorIs(t, err, ErrKeyExists)
}

func TestUpload_UnresolvableURLFails(t *testing.T) {
	blobs := newFakeBlobStore()
	blobs.noURL = true
	svc := NewService(blobs)

	_, err := svc.Upload(7, fileHeader(t, "a.png", "image/png", pngBytes(t, 8, 8, color.White)))
	assert.ErrorIs(t, err, ErrURLResolution)
}
