package availability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/handler"
	"github.com/pediclinic/booking-api/internal/repository"
	availabilityService "github.com/pediclinic/booking-api/internal/service/availability"
)

const dateLayout = "2006-01-02"

// Handler exposes read-only availability: candidate dates and the slot
// grid. Results are point-in-time snapshots; the commit path revalidates.
type Handler struct {
	resolver      *availabilityService.Service
	professionals repository.ProfessionalRepository
	services      repository.ServiceRepository
}

func NewHandler(resolver *availabilityService.Service, professionals repository.ProfessionalRepository, services repository.ServiceRepository) *Handler {
	return &Handler{resolver: resolver, professionals: professionals, services: services}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/professionals/:id/dates", h.CandidateDates)
	r.GET("/professionals/:id/slots", h.SlotsForDate)
}

func (h *Handler) CandidateDates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	professional, err := h.professionals.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	dates := h.resolver.CandidateDates(professional.AttendanceDays, availabilityService.DefaultHorizon)
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(dateLayout))
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"dates": formatted}))
}

func (h *Handler) SlotsForDate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
		return
	}

	professional, err := h.professionals.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	service, err := h.services.Get(c.Request.Context(), serviceID)
	if err != nil {
		c.Error(err)
		return
	}

	slots := h.resolver.SlotsForDate(c.Request.Context(), professional, service, date)

	grid := make([]gin.H, 0, len(slots.All))
	for _, s := range slots.All {
		_, occupied := slots.Occupied[s]
		grid = append(grid, gin.H{"label": s.Label(), "occupied": occupied})
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"date":  date.Format(dateLayout),
		"slots": grid,
	}))
}
