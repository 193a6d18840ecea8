package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/utils"
)

// ServiceController manages CRUD operations for services.
type ServiceController struct {
	db *gorm.DB
}

// NewServiceController creates a new ServiceController instance.
func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{db: db}
}

type serviceCreateRequest struct {
	Name        string         `json:"name" binding:"required,min=1,max=100"`
	Description string         `json:"description" binding:"required,min=1,max=1000"`
	Icon        string         `json:"icon" binding:"omitempty,max=50"`
	Order       *utils.FlexInt `json:"order" binding:"required,gte=0"`
}

type serviceUpdateRequest struct {
	Name        *string        `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string        `json:"description" binding:"omitempty,min=1,max=1000"`
	Icon        *string        `json:"icon" binding:"omitempty,max=50"`
	Order       *utils.FlexInt `json:"order" binding:"omitempty,gte=0"`
}

// List returns services in display order.
func (c *ServiceController) List(ctx *gin.Context) {
	limit := parseLimit(ctx.Query("limit"))

	query := c.db.Order("display_order ASC").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		utils.ServerError(ctx, "list services", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"services": services, "count": len(services)})
}

// Get returns a single service.
func (c *ServiceController) Get(ctx *gin.Context) {
	var service models.Service
	if err := c.db.First(&service, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Service")
			return
		}
		utils.ServerError(ctx, "load service", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"service": service})
}

// Create persists a new service.
func (c *ServiceController) Create(ctx *gin.Context) {
	var req serviceCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	service := models.Service{
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeText(req.Description),
		Icon:        utils.SanitizeText(req.Icon),
		Order:       req.Order.Int(),
	}

	if err := c.db.Create(&service).Error; err != nil {
		utils.ServerError(ctx, "create service", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"service": service})
}

// Update applies a partial patch.
func (c *ServiceController) Update(ctx *gin.Context) {
	var req serviceUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	var service models.Service
	if err := c.db.First(&service, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Service")
			return
		}
		utils.ServerError(ctx, "update service", err)
		return
	}

	if req.Name != nil {
		service.Name = utils.SanitizeText(*req.Name)
	}
	if req.Description != nil {
		service.Description = utils.SanitizeText(*req.Description)
	}
	if req.Icon != nil {
		service.Icon = utils.SanitizeText(*req.Icon)
	}
	if req.Order != nil {
		service.Order = req.Order.Int()
	}

	if err := c.db.Save(&service).Error; err != nil {
		utils.ServerError(ctx, "update service", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"service": service})
}

// Delete removes a service.
func (c *ServiceController) Delete(ctx *gin.Context) {
	var service models.Service
	if err := c.db.First(&service, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Service")
			return
		}
		utils.ServerError(ctx, "delete service", err)
		return
	}

	if err := c.db.Delete(&service).Error; err != nil {
		utils.ServerError(ctx, "delete service", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
