package order

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/middleware"
	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/service/order"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/httputil"
)

type Handler struct {
	service *order.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *order.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/orders", h.auth.Authenticate())
	g.POST("", h.Checkout)
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	staff := g.Group("", h.auth.RequireRole(model.RoleBarber, model.RoleAdmin))
	staff.POST("/deliver/:code", h.Deliver)
}

func (h *Handler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	clientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("missing user identity", nil))
		return
	}

	o, err := h.service.Checkout(c.Request.Context(), clientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, o)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid order ID", err))
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if c.GetString(middleware.ContextUserRole) == model.RoleClient {
		if clientID, ok := middleware.UserID(c); !ok || o.ClientID != clientID {
			httputil.RespondWithError(c, apperrors.Forbidden("not your order", nil))
			return
		}
	}
	httputil.RespondWithSuccess(c, o)
}

// List returns the caller's own orders, or every order for staff.
func (h *Handler) List(c *gin.Context) {
	role := c.GetString(middleware.ContextUserRole)
	if role == model.RoleAdmin || role == model.RoleBarber {
		orders, err := h.service.ListOrders(c.Request.Context())
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, orders)
		return
	}

	clientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("missing user identity", nil))
		return
	}
	orders, err := h.service.ListOrdersForClient(c.Request.Context(), clientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, orders)
}

func (h *Handler) Deliver(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("missing pickup code", nil))
		return
	}

	o, err := h.service.DeliverByPickupCode(c.Request.Context(), code)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, o)
}
