package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery/internal/pkg/multipart"
)

const validAlbumHex = "64f1b2c3d4e5f60718293a4b"

func TestValidateUpload_Success(t *testing.T) {
	body := &multipart.Body{
		Fields: map[string]string{"albumId": validAlbumHex},
		Files: []multipart.Part{
			{FieldName: "file", FileName: "photo.jpg", ContentType: "image/jpeg", Content: []byte("0123456789")},
		},
	}

	file, albumID, err := validateUpload(body)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", file.FileName)
	assert.Equal(t, validAlbumHex, albumID.Hex())
}

func TestValidateUpload_NoFile(t *testing.T) {
	body := &multipart.Body{
		Fields: map[string]string{"albumId": validAlbumHex},
	}

	_, _, err := validateUpload(body)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestValidateUpload_MissingAlbumID(t *testing.T) {
	body := &multipart.Body{
		Fields: map[string]string{},
		Files: []multipart.Part{
			{FieldName: "file", FileName: "photo.jpg", ContentType: "image/jpeg", Content: []byte("x")},
		},
	}

	_, _, err := validateUpload(body)
	assert.ErrorIs(t, err, ErrInvalidAlbumID)
}

func TestValidateUpload_MalformedAlbumID(t *testing.T) {
	body := &multipart.Body{
		Fields: map[string]string{"albumId": "not-an-object-id"},
		Files: []multipart.Part{
			{FieldName: "file", FileName: "photo.jpg", ContentType: "image/jpeg", Content: []byte("x")},
		},
	}

	_, _, err := validateUpload(body)
	assert.ErrorIs(t, err, ErrInvalidAlbumID)
}

func TestValidateUpload_RejectsNonImage(t *testing.T) {
	// The declared filename does not matter, only the content type does.
	body := &multipart.Body{
		Fields: map[string]string{"albumId": validAlbumHex},
		Files: []multipart.Part{
			{FieldName: "file", FileName: "photo.jpg", ContentType: "text/plain", Content: []byte("x")},
		},
	}

	_, _, err := validateUpload(body)
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestValidateUpload_RejectsOversizedContent(t *testing.T) {
	// The check runs on the actual decoded length, whatever any size
	// header claimed.
	body := &multipart.Body{
		Fields: map[string]string{"albumId": validAlbumHex},
		Files: []multipart.Part{
			{FieldName: "file", FileName: "big.jpg", ContentType: "image/jpeg", Content: make([]byte, MaxUploadBytes+1)},
		},
	}

	_, _, err := validateUpload(body)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateUpload_FirstFilePartWins(t *testing.T) {
	body := &multipart.Body{
		Fields: map[string]string{"albumId": validAlbumHex},
		Files: []multipart.Part{
			{FieldName: "file", FileName: "first.jpg", ContentType: "image/jpeg", Content: []byte("1")},
			{FieldName: "file", FileName: "second.jpg", ContentType: "image/jpeg", Content: []byte("2")},
		},
	}

	file, _, err := validateUpload(body)
	require.NoError(t, err)
	assert.Equal(t, "first.jpg", file.FileName)
}
