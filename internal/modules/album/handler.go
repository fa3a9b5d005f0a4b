package album

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"gallery/internal/middleware"
	"gallery/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/albums", h.List)
	rg.POST("/albums", h.Create)
	rg.GET("/albums/:id", h.Get)
	rg.PUT("/albums/:id", h.Update)
	rg.DELETE("/albums/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req CreateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Album name is required")
		return
	}

	a, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.Error(c, http.StatusBadRequest, "Album name is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create album")
		return
	}

	response.Success(c, http.StatusOK, a)
}

func (h *Handler) List(c *gin.Context) {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	params := ListParams{
		Page:   queryInt64(c, "page", 1),
		Limit:  queryInt64(c, "limit", 50),
		Search: c.Query("search"),
		Sort:   c.DefaultQuery("sort", "newest"),
	}

	albums, pagination, err := h.service.List(c.Request.Context(), ownerID, params)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list albums")
		return
	}

	response.SuccessPaged(c, http.StatusOK, albums, pagination)
}

func (h *Handler) Get(c *gin.Context) {
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

	a, err := h.service.Get(c.Request.Context(), ownerID, albumID)
	if err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			response.Error(c, http.StatusNotFound, "Album not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load album")
		return
	}

	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Update(c *gin.Context) {
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

	var req UpdateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Album name is required")
		return
	}

	a, err := h.service.Update(c.Request.Context(), ownerID, albumID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			response.Error(c, http.StatusBadRequest, "Album name is required")
		case errors.Is(err, ErrAlbumNotFound):
			response.Error(c, http.StatusNotFound, "Album not found")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update album")
		}
		return
	}

	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
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

	if err := h.service.Delete(c.Request.Context(), ownerID, albumID); err != nil {
		if errors.Is(err, ErrAlbumNotFound) {
			response.Error(c, http.StatusNotFound, "Album not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete album")
		return
	}

	response.Message(c, http.StatusOK, "Album deleted successfully")
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
