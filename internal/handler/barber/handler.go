package barber

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/middleware"
	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/service/barber"
	"github.com/tmcosta/barbershop-api/internal/service/review"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/httputil"
)

type Handler struct {
	service *barber.Service
	reviews *review.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *barber.Service, reviews *review.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, reviews: reviews, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Public listings for the landing page.
	r.GET("/barbers", h.List)
	r.GET("/barbers/:id", h.Get)
	r.GET("/barbers/:id/reviews", h.ListReviews)

	g := r.Group("/barbers", h.auth.Authenticate(), h.auth.RequireRole(model.RoleAdmin))
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	b, err := h.service.CreateBarber(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid barber ID", err))
		return
	}

	b, err := h.service.GetBarber(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) List(c *gin.Context) {
	var (
		barbers []*model.Barber
		err     error
	)
	if c.Query("available") == "true" {
		barbers, err = h.service.ListAvailableBarbers(c.Request.Context())
	} else {
		barbers, err = h.service.ListBarbers(c.Request.Context())
	}
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, barbers)
}

func (h *Handler) ListReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid barber ID", err))
		return
	}

	reviews, err := h.reviews.ListReviewsForBarber(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reviews)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid barber ID", err))
		return
	}

	var req model.UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	b, err := h.service.UpdateBarber(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, b)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid barber ID", err))
		return
	}

	if err := h.service.DeleteBarber(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
