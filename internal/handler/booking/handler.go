package booking

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/pediclinic/booking-api/internal/handler"
	"github.com/pediclinic/booking-api/internal/middleware"
	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/repository"
	"github.com/pediclinic/booking-api/internal/service/availability"
	bookingService "github.com/pediclinic/booking-api/internal/service/booking"
	"github.com/pediclinic/booking-api/pkg/metrics"
)

const dateLayout = "2006-01-02"

// draft pairs a workflow with the session that owns it; a draft is only
// visible to the client that started it.
type draft struct {
	workflow *bookingService.Workflow
	clientID uuid.UUID
}

// Handler exposes the booking wizard over HTTP. Drafts live in a TTL
// cache: an abandoned wizard simply expires, nothing is ever written
// until confirm.
type Handler struct {
	drafts        *gocache.Cache
	resolver      *availability.Service
	committer     bookingService.Committer
	patients      repository.PatientRepository
	services      repository.ServiceRepository
	professionals repository.ProfessionalRepository
	metrics       *metrics.Metrics
}

func NewHandler(
	draftTTL time.Duration,
	resolver *availability.Service,
	committer bookingService.Committer,
	patients repository.PatientRepository,
	services repository.ServiceRepository,
	professionals repository.ProfessionalRepository,
	m *metrics.Metrics,
) *Handler {
	drafts := gocache.New(draftTTL, draftTTL/2)
	// fires on expiry and on explicit delete, so the gauge tracks both
	// confirmed and abandoned drafts
	drafts.OnEvicted(func(string, interface{}) { m.ActiveDrafts.Dec() })

	return &Handler{
		drafts:        drafts,
		resolver:      resolver,
		committer:     committer,
		patients:      patients,
		services:      services,
		professionals: professionals,
		metrics:       m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.Start)
	r.GET("/bookings/:id", h.Get)
	r.PUT("/bookings/:id/patient", h.SelectPatient)
	r.PUT("/bookings/:id/category", h.SelectCategory)
	r.PUT("/bookings/:id/service", h.SelectService)
	r.PUT("/bookings/:id/professional", h.SelectProfessional)
	r.PUT("/bookings/:id/date", h.SelectDate)
	r.PUT("/bookings/:id/slot", h.SelectSlot)
	r.POST("/bookings/:id/confirm", h.Confirm)
}

func (h *Handler) Start(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("session required"))
		return
	}

	id := uuid.New().String()
	h.drafts.SetDefault(id, &draft{
		workflow: bookingService.NewWorkflow(session, h.resolver, h.committer),
		clientID: session.ClientID,
	})
	h.metrics.ActiveDrafts.Inc()

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"draft_id": id,
		"stage":    bookingService.StageSelectPatient.String(),
	}))
}

func (h *Handler) Get(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) SelectPatient(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	var req struct {
		PatientID string `json:"patient_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.patients.Get(c.Request.Context(), uuid.MustParse(req.PatientID))
	if err != nil {
		c.Error(err)
		return
	}
	if patient.ResponsibleID != d.clientID {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("patient does not belong to this account"))
		return
	}

	d.workflow.SelectPatient(patient)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) SelectCategory(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	var req struct {
		Category model.ServiceCategory `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown category"))
		return
	}

	d.workflow.SelectCategory(req.Category)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) SelectService(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	var req struct {
		ServiceID string `json:"service_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	service, err := h.services.Get(c.Request.Context(), uuid.MustParse(req.ServiceID))
	if err != nil {
		c.Error(err)
		return
	}
	if !service.Active {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("service is not offerable"))
		return
	}

	d.workflow.SelectService(service)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) SelectProfessional(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	var req struct {
		ProfessionalID string `json:"professional_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	professional, err := h.professionals.Get(c.Request.Context(), uuid.MustParse(req.ProfessionalID))
	if err != nil {
		c.Error(err)
		return
	}

	d.workflow.SelectProfessional(professional)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) SelectDate(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date, expected YYYY-MM-DD"))
		return
	}

	if err := d.workflow.SelectDate(c.Request.Context(), date); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) SelectSlot(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	slot, err := model.ParseSlotLabel(req.Label)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := d.workflow.SelectSlot(slot); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(workflowState(d.workflow)))
}

func (h *Handler) Confirm(c *gin.Context) {
	d, ok := h.draftFor(c)
	if !ok {
		return
	}

	reservation, err := d.workflow.Commit(c.Request.Context())
	if err != nil {
		// The draft survives every failed commit; conflicts and
		// timeouts are safe to retry after refreshing availability.
		c.Error(err)
		return
	}

	h.drafts.Delete(c.Param("id"))
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(reservation))
}

func (h *Handler) draftFor(c *gin.Context) (*draft, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("session required"))
		return nil, false
	}

	v, found := h.drafts.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("booking draft not found or expired"))
		return nil, false
	}

	d := v.(*draft)
	if d.clientID != session.ClientID {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse("booking draft not found or expired"))
		return nil, false
	}
	return d, true
}

// workflowState serializes the wizard for the client: stage, the draft so
// far, candidate dates, and the slot grid with occupancy flags. Slots
// leave the process as labels only.
func workflowState(w *bookingService.Workflow) gin.H {
	state := gin.H{"stage": w.Stage().String()}

	draft := w.Draft()
	summary := gin.H{}
	if draft.Patient != nil {
		summary["patient_id"] = draft.Patient.ID
	}
	if draft.Category != "" {
		summary["category"] = draft.Category
	}
	if draft.Service != nil {
		summary["service_id"] = draft.Service.ID
	}
	if draft.Professional != nil {
		summary["professional_id"] = draft.Professional.ID
	}
	if !draft.Date.IsZero() {
		summary["date"] = draft.Date.Format(dateLayout)
	}
	if draft.Slot != nil {
		summary["slot"] = draft.Slot.Label()
	}
	state["draft"] = summary

	if dates := w.Dates(); dates != nil {
		formatted := make([]string, 0, len(dates))
		for _, d := range dates {
			formatted = append(formatted, d.Format(dateLayout))
		}
		state["dates"] = formatted
	}

	if slots := w.Slots(); slots != nil {
		grid := make([]gin.H, 0, len(slots.All))
		for _, s := range slots.All {
			_, occupied := slots.Occupied[s]
			grid = append(grid, gin.H{"label": s.Label(), "occupied": occupied})
		}
		state["slots"] = grid
	}

	return state
}
