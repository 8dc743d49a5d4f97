package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pediclinic/booking-api/internal/handler"
	"github.com/pediclinic/booking-api/internal/middleware"
	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/repository"
)

// Handler lets a responsible party manage the children on their
// account. Patients are always scoped to the session; there is no
// cross-account access.
type Handler struct {
	patients repository.PatientRepository
}

func NewHandler(patients repository.PatientRepository) *Handler {
	return &Handler{patients: patients}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/my/patients", h.ListMine)
	r.POST("/my/patients", h.Create)
}

func (h *Handler) ListMine(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("session required"))
		return
	}

	patients, err := h.patients.ListByResponsible(c.Request.Context(), session.ClientID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) Create(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("session required"))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient := &model.Patient{
		ResponsibleID: session.ClientID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		BirthDate:     req.BirthDate,
		Document:      req.Document,
		Active:        true,
	}
	if err := h.patients.Create(c.Request.Context(), patient); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}
