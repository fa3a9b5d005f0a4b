package image

import (
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"gallery/internal/middleware"
	"gallery/internal/pkg/multipart"
	"gallery/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images", h.Upload)
	rg.DELETE("/images/:id", h.Delete)
	rg.GET("/albums/:id/images", h.ListByAlbum)
}

// Upload ingests a multipart/form-data body with a required albumId field
// and one binary file field. The body may arrive base64-encoded when the
// client says so via Content-Transfer-Encoding.
func (h *Handler) Upload(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	mediaType, params, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		response.Error(c, http.StatusBadRequest, "Content-Type must be multipart/form-data")
		return
	}
	boundary := params["boundary"]
	if boundary == "" {
		response.Error(c, http.StatusBadRequest, "Boundary not found in Content-Type")
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if strings.EqualFold(c.GetHeader("Content-Transfer-Encoding"), "base64") {
		decoded, err := base64.StdEncoding.DecodeString(string(raw))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid base64 body")
			return
		}
		raw = decoded
	}

	body, err := multipart.Decode(raw, boundary)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Malformed multipart body")
		return
	}

	img, err := h.service.Upload(c.Request.Context(), ownerID, body)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile), errors.Is(err, ErrInvalidAlbumID):
			response.Error(c, http.StatusBadRequest, "File and valid albumId are required")
		case errors.Is(err, ErrUnsupportedMediaType):
			response.Error(c, http.StatusBadRequest, "Only image files are allowed")
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "File too large (max 6MB)")
		case errors.Is(err, ErrAlbumNotFound):
			response.Error(c, http.StatusNotFound, "Album not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to upload image")
		}
		return
	}

	response.Success(c, http.StatusOK, img)
}

func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	imageID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, imageID); err != nil {
		if errors.Is(err, ErrImageNotFound) {
			response.Error(c, http.StatusNotFound, "Image not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	response.Message(c, http.StatusOK, "Image successfully deleted")
}

func (h *Handler) ListByAlbum(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	albumID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid album ID")
		return
	}

	params := ListParams{
		Page:  queryInt64(c, "page", 1),
		Limit: queryInt64(c, "limit", 20),
		Sort:  c.DefaultQuery("sort", "random"),
	}

	images, pagination, err := h.service.ListByAlbum(c.Request.Context(), ownerID, albumID, params)
	if err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			response.Error(c, http.StatusNotFound, "Album not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to list images")
		return
	}

	response.SuccessPaged(c, http.StatusOK, images, pagination)
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
