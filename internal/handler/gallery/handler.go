package gallery

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/middleware"
	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/service/gallery"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/httputil"
)

type Handler struct {
	service *gallery.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *gallery.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/gallery", h.List)

	g := r.Group("/gallery", h.auth.Authenticate(), h.auth.RequireRole(model.RoleAdmin))
	g.POST("", h.Add)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Remove)
}

func (h *Handler) Add(c *gin.Context) {
	var req model.CreateGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	image, err := h.service.AddImage(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, image)
}

func (h *Handler) List(c *gin.Context) {
	images, err := h.service.ListImages(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, images)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid image ID", err))
		return
	}

	var req model.UpdateGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	image, err := h.service.UpdateImage(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, image)
}

func (h *Handler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid image ID", err))
		return
	}

	if err := h.service.RemoveImage(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
