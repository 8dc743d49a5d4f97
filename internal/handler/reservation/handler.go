package reservation

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/handler"
	"github.com/pediclinic/booking-api/internal/middleware"
	"github.com/pediclinic/booking-api/internal/model"
	reservationService "github.com/pediclinic/booking-api/internal/service/reservation"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *reservationService.Service
}

func NewHandler(service *reservationService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the staff-facing reservation endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reservations", h.List)
	r.GET("/reservations/:id", h.Get)
	r.POST("/reservations/:id/confirm", h.Confirm)
	r.POST("/reservations/:id/attend", h.MarkAttended)
	r.POST("/reservations/:id/cancel", h.Cancel)
}

// RegisterClientRoutes mounts the responsible-party view of their own
// reservations.
func (h *Handler) RegisterClientRoutes(r *gin.RouterGroup) {
	r.GET("/my/reservations", h.ListMine)
	r.POST("/my/reservations/:id/cancel", h.CancelMine)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.ReservationFilters{}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid from date"))
			return
		}
		filters.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid to date"))
			return
		}
		filters.To = to
	}
	if v := c.Query("professional_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
			return
		}
		filters.ProfessionalID = id
	}
	if v := c.Query("patient_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		filters.PatientID = id
	}
	if v := c.Query("status"); v != "" {
		filters.Status = model.ReservationStatus(v)
	}

	reservations, err := h.service.ListByDateRange(c.Request.Context(), filters)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(present(reservations)))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reservation ID"))
		return
	}

	reservation, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(presentOne(reservation)))
}

func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

func (h *Handler) MarkAttended(c *gin.Context) {
	h.transition(c, h.service.MarkAttended)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*model.Reservation, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reservation ID"))
		return
	}

	reservation, err := fn(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(presentOne(reservation)))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reservation ID"))
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	reservation, err := h.service.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(presentOne(reservation)))
}

func (h *Handler) ListMine(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("session required"))
		return
	}

	reservations, err := h.service.ListByDateRange(c.Request.Context(), &model.ReservationFilters{
		ResponsibleID: session.ClientID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(present(reservations)))
}

func (h *Handler) CancelMine(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("session required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid reservation ID"))
		return
	}

	reservation, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if reservation.ResponsibleID != session.ClientID {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("reservation not found"))
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id, "cancelled by responsible party")
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(presentOne(cancelled)))
}

// presentOne adds the boundary-formatted date and slot label to the
// reservation payload.
func presentOne(r *model.Reservation) gin.H {
	return gin.H{
		"id":              r.ID,
		"patient_id":      r.PatientID,
		"responsible_id":  r.ResponsibleID,
		"professional_id": r.ProfessionalID,
		"service_id":      r.ServiceID,
		"date":            r.Date.Format(dateLayout),
		"time":            r.Slot().Label(),
		"reason":          r.Reason,
		"status":          r.Status,
		"price":           r.Price,
		"created_at":      r.CreatedAt,
	}
}

func present(reservations []*model.Reservation) []gin.H {
	out := make([]gin.H, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, presentOne(r))
	}
	return out
}
