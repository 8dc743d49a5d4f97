package professional

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/handler"
	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/repository"
)

type Handler struct {
	professionals repository.ProfessionalRepository
}

func NewHandler(professionals repository.ProfessionalRepository) *Handler {
	return &Handler{professionals: professionals}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/professionals", h.List)
	r.GET("/professionals/:id", h.Get)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/professionals", h.Create)
	r.PATCH("/professionals/:id", h.Update)
}

func (h *Handler) List(c *gin.Context) {
	professionals, err := h.professionals.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(professionals))
}

func (h *Handler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, handler.NewSuccessResponse(professional))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	serviceIDs := make([]uuid.UUID, 0, len(req.ServiceIDs))
	for _, raw := range req.ServiceIDs {
		serviceIDs = append(serviceIDs, uuid.MustParse(raw))
	}

	professional := &model.Professional{
		Name:           req.Name,
		Email:          req.Email,
		Shift:          req.Shift,
		AttendanceDays: req.AttendanceDays,
		ServiceIDs:     serviceIDs,
		Active:         true,
	}
	if err := h.professionals.Create(c.Request.Context(), professional); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(professional))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	var req model.UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	professional, err := h.professionals.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	if req.Name != nil {
		professional.Name = *req.Name
	}
	if req.Shift != nil {
		professional.Shift = *req.Shift
	}
	if req.AttendanceDays != nil {
		professional.AttendanceDays = *req.AttendanceDays
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	if err := h.professionals.Update(c.Request.Context(), professional); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(professional))
}
