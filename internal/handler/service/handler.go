package service

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/pediclinic/booking-api/internal/handler"
	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/repository"
)

const activeServicesKey = "services.active"

// Handler manages the service catalog. The active-service list is read
// on every booking, so it sits behind a short-lived cache that is
// dropped on any write.
type Handler struct {
	services      repository.ServiceRepository
	professionals repository.ProfessionalRepository
	cache         *gocache.Cache
}

func NewHandler(services repository.ServiceRepository, professionals repository.ProfessionalRepository) *Handler {
	return &Handler{
		services:      services,
		professionals: professionals,
		cache:         gocache.New(time.Minute, 5*time.Minute),
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/services", h.ListActive)
	r.GET("/services/:id/professionals", h.ListProfessionals)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/services", h.Create)
	r.PATCH("/services/:id", h.Update)
}

func (h *Handler) ListActive(c *gin.Context) {
	if cached, found := h.cache.Get(activeServicesKey); found {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(cached))
		return
	}

	services, err := h.services.ListActive(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	h.cache.SetDefault(activeServicesKey, services)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) ListProfessionals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	professionals, err := h.professionals.ListByService(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(professionals))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("unknown category"))
		return
	}

	service := &model.Service{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}
	if err := h.services.Create(c.Request.Context(), service); err != nil {
		c.Error(err)
		return
	}

	h.cache.Delete(activeServicesKey)
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(service))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	service, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		// Services are only ever soft-disabled; bookings keep their
		// reference either way.
		service.Active = *req.Active
	}

	if err := h.services.Update(c.Request.Context(), service); err != nil {
		c.Error(err)
		return
	}

	h.cache.Delete(activeServicesKey)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(service))
}
