package appointment

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmcosta/barbershop-api/internal/middleware"
	"github.com/tmcosta/barbershop-api/internal/model"
	"github.com/tmcosta/barbershop-api/internal/service/appointment"
	apperrors "github.com/tmcosta/barbershop-api/pkg/errors"
	"github.com/tmcosta/barbershop-api/pkg/httputil"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *appointment.Service
	auth    *middleware.AuthMiddleware
}

func NewHandler(service *appointment.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Availability is public so the booking page works before sign-in.
	r.GET("/appointments/availability", h.Availability)

	g := r.Group("/appointments", h.auth.Authenticate())
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.POST("/:id/cancel", h.Cancel)
	g.GET("", h.auth.RequireRole(model.RoleBarber, model.RoleAdmin), h.List)
	g.PATCH("/:id/status", h.auth.RequireRole(model.RoleBarber, model.RoleAdmin), h.UpdateStatus)
	g.DELETE("/:id", h.auth.RequireRole(model.RoleAdmin), h.Delete)
}

// Availability returns the bookable slots for a date, service and barber
// choice. barber_id accepts a UUID or the literal "any".
func (h *Handler) Availability(c *gin.Context) {
	day, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid date, expected YYYY-MM-DD", err))
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid service ID", err))
		return
	}

	var selector appointment.BarberSelector
	switch barber := c.Query("barber_id"); barber {
	case "", "any":
		selector = appointment.AnyBarber()
	default:
		barberID, err := uuid.Parse(barber)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid barber ID", err))
			return
		}
		selector = appointment.SpecificBarber(barberID)
	}

	slots, err := h.service.AvailableSlotsForService(c.Request.Context(), day, serviceID, selector)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	clientID, ok := middleware.UserID(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("missing user identity", nil))
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), clientID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// Clients may only read their own appointments.
	if c.GetString(middleware.ContextUserRole) == model.RoleClient {
		if clientID, ok := middleware.UserID(c); !ok || apt.ClientID != clientID {
			httputil.RespondWithError(c, apperrors.Forbidden("not your appointment", nil))
			return
		}
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if id := c.Query("barber_id"); id != "" {
		barberID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid barber ID", err))
			return
		}
		filters.BarberID = barberID
	}
	if id := c.Query("client_id"); id != "" {
		clientID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid client ID", err))
			return
		}
		filters.ClientID = clientID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
		if !filters.Status.Valid() {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid status", nil))
			return
		}
	}
	if date := c.Query("start_date"); date != "" {
		start, err := time.Parse(dateLayout, date)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid start_date", err))
			return
		}
		filters.StartDate = start
	}
	if date := c.Query("end_date"); date != "" {
		end, err := time.Parse(dateLayout, date)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid end_date", err))
			return
		}
		filters.EndDate = end
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	apt, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.CancelReason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if c.GetString(middleware.ContextUserRole) == model.RoleClient {
		if clientID, ok := middleware.UserID(c); !ok || apt.ClientID != clientID {
			httputil.RespondWithError(c, apperrors.Forbidden("not your appointment", nil))
			return
		}
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.Reason == "" {
		body.Reason = "cancelled by client"
	}

	cancelled, err := h.service.CancelAppointment(c.Request.Context(), id, body.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cancelled)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nil)
}
