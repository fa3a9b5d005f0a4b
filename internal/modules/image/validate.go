package image

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"gallery/internal/pkg/multipart"
)

// MaxUploadBytes caps one upload at 6 MiB, checked against the actual
// decoded byte length rather than any declared size.
const MaxUploadBytes = 6 << 20

// validateUpload applies the upload policy to a decoded body and picks the
// file part and target album. Only the first file part is considered;
// additional file parts are ignored.
func validateUpload(body *multipart.Body) (*multipart.Part, bson.ObjectID, error) {
	if len(body.Files) == 0 {
		return nil, bson.ObjectID{}, ErrNoFile
	}
	file := &body.Files[0]

	albumID, err := bson.ObjectIDFromHex(body.Fields["albumId"])
	if err != nil {
		return nil, bson.ObjectID{}, ErrInvalidAlbumID
	}

	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, bson.ObjectID{}, ErrUnsupportedMediaType
	}
	if len(file.Content) > MaxUploadBytes {
		return nil, bson.ObjectID{}, ErrFileTooLarge
	}

	return file, albumID, nil
}
