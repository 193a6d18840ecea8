package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/utils"
)

// ProjectController manages CRUD operations for portfolio projects.
type ProjectController struct {
	db *gorm.DB
}

// NewProjectController creates a new ProjectController instance.
func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{db: db}
}

type projectCreateRequest struct {
	Name             string         `json:"name" binding:"required,min=1,max=100"`
	ShortDescription string         `json:"shortDescription" binding:"required,min=1,max=500"`
	Image            string         `json:"image" binding:"required,url"`
	Github           string         `json:"github" binding:"omitempty,url"`
	Link             string         `json:"link" binding:"required,url"`
	Status           string         `json:"status" binding:"required,oneof=COMPLETED IN_PROGRESS ARCHIVED"`
	Order            *utils.FlexInt `json:"order" binding:"required,gte=0"`
	TechnologyIDs    []uint         `json:"technologyIds" binding:"omitempty,dive,gt=0"`
}

type projectUpdateRequest struct {
	Name             *string        `json:"name" binding:"omitempty,min=1,max=100"`
	ShortDescription *string        `json:"shortDescription" binding:"omitempty,min=1,max=500"`
	Image            *string        `json:"image" binding:"omitempty,url"`
	Github           *string        `json:"github" binding:"omitempty,url"`
	Link             *string        `json:"link" binding:"omitempty,url"`
	Status           *string        `json:"status" binding:"omitempty,oneof=COMPLETED IN_PROGRESS ARCHIVED"`
	Order            *utils.FlexInt `json:"order" binding:"omitempty,gte=0"`
	TechnologyIDs    *[]uint        `json:"technologyIds" binding:"omitempty,dive,gt=0"`
}

// List returns projects ordered by display order, newest first within the
// same order. Optional filters: status, limit.
func (c *ProjectController) List(ctx *gin.Context) {
	status := strings.TrimSpace(ctx.Query("status"))
	limit := parseLimit(ctx.Query("limit"))

	cacheKey := fmt.Sprintf("cache:projects:list:status=%s:limit=%d", status, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	query := c.db.Preload("Technologies").Order("display_order ASC").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		utils.ServerError(ctx, "list projects", err)
		return
	}

	payload := gin.H{"projects": projects, "count": len(projects)}
	utils.CacheSetJSON(cacheKey, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// Get returns a single project with its technologies.
func (c *ProjectController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	if b, ok := utils.CacheGetBytes("cache:projects:detail:" + id); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var project models.Project
	if err := c.db.Preload("Technologies").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Project")
			return
		}
		utils.ServerError(ctx, "load project", err)
		return
	}

	payload := gin.H{"project": project}
	utils.CacheSetJSON("cache:projects:detail:"+id, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// Create validates, sanitizes and persists a new project.
func (c *ProjectController) Create(ctx *gin.Context) {
	var req projectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	project := models.Project{
		Name:             utils.SanitizeText(req.Name),
		ShortDescription: utils.SanitizeText(req.ShortDescription),
		Image:            utils.SanitizeURL(req.Image),
		Github:           utils.SanitizeURL(req.Github),
		Link:             utils.SanitizeURL(req.Link),
		Status:           req.Status,
		Order:            req.Order.Int(),
	}

	if err := c.db.Create(&project).Error; err != nil {
		utils.ServerError(ctx, "create project", err)
		return
	}

	if len(req.TechnologyIDs) > 0 {
		if err := c.replaceTechnologies(&project, req.TechnologyIDs); err != nil {
			utils.ServerError(ctx, "create project", err)
			return
		}
	}

	if err := c.db.Preload("Technologies").First(&project, project.ID).Error; err != nil {
		utils.ServerError(ctx, "create project", err)
		return
	}

	utils.InvalidateByPrefix("cache:projects:")
	ctx.JSON(http.StatusCreated, gin.H{"project": project})
}

// Update applies a partial patch; only supplied fields change. The
// technology set, when supplied, replaces the stored set wholesale.
func (c *ProjectController) Update(ctx *gin.Context) {
	var req projectUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	id := ctx.Param("id")
	var project models.Project
	if err := c.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Project")
			return
		}
		utils.ServerError(ctx, "update project", err)
		return
	}

	if req.Name != nil {
		project.Name = utils.SanitizeText(*req.Name)
	}
	if req.ShortDescription != nil {
		project.ShortDescription = utils.SanitizeText(*req.ShortDescription)
	}
	if req.Image != nil {
		project.Image = utils.SanitizeURL(*req.Image)
	}
	if req.Github != nil {
		project.Github = utils.SanitizeURL(*req.Github)
	}
	if req.Link != nil {
		project.Link = utils.SanitizeURL(*req.Link)
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.Order != nil {
		project.Order = req.Order.Int()
	}

	if err := c.db.Save(&project).Error; err != nil {
		utils.ServerError(ctx, "update project", err)
		return
	}

	if req.TechnologyIDs != nil {
		if err := c.replaceTechnologies(&project, *req.TechnologyIDs); err != nil {
			utils.ServerError(ctx, "update project", err)
			return
		}
	}

	if err := c.db.Preload("Technologies").First(&project, project.ID).Error; err != nil {
		utils.ServerError(ctx, "update project", err)
		return
	}

	utils.InvalidateByPrefix("cache:projects:")
	ctx.JSON(http.StatusOK, gin.H{"project": project})
}

// Delete removes a project and its technology associations.
func (c *ProjectController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	var project models.Project
	if err := c.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Project")
			return
		}
		utils.ServerError(ctx, "delete project", err)
		return
	}

	if err := c.db.Model(&project).Association("Technologies").Clear(); err != nil {
		utils.ServerError(ctx, "delete project", err)
		return
	}
	if err := c.db.Delete(&project).Error; err != nil {
		utils.ServerError(ctx, "delete project", err)
		return
	}

	utils.InvalidateByPrefix("cache:projects:")
	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// replaceTechnologies swaps the association set in one replace call.
// Unknown ids are dropped rather than rejected.
func (c *ProjectController) replaceTechnologies(project *models.Project, ids []uint) error {
	var techs []models.Technology
	if unique := utils.UniqueUint(ids); len(unique) > 0 {
		if err := c.db.Find(&techs, unique).Error; err != nil {
			return err
		}
	}
	return c.db.Model(project).Association("Technologies").Replace(&techs)
}
