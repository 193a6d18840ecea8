package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/utils"
)

// TechnologyController manages CRUD operations for technologies.
type TechnologyController struct {
	db *gorm.DB
}

// NewTechnologyController creates a new TechnologyController instance.
func NewTechnologyController(db *gorm.DB) *TechnologyController {
	return &TechnologyController{db: db}
}

type technologyCreateRequest struct {
	Label    string         `json:"label" binding:"required,min=1,max=100"`
	Value    *utils.FlexInt `json:"value" binding:"required,gte=0,lte=100"`
	Icon     string         `json:"icon" binding:"omitempty,max=50"`
	Href     string         `json:"href" binding:"omitempty,url"`
	Category string         `json:"category" binding:"required,oneof=DESIGN FRONTEND BACKEND DATABASE DEVOPS GENERAL"`
}

type technologyUpdateRequest struct {
	Label    *string        `json:"label" binding:"omitempty,min=1,max=100"`
	Value    *utils.FlexInt `json:"value" binding:"omitempty,gte=0,lte=100"`
	Icon     *string        `json:"icon" binding:"omitempty,max=50"`
	Href     *string        `json:"href" binding:"omitempty,url"`
	Category *string        `json:"category" binding:"omitempty,oneof=DESIGN FRONTEND BACKEND DATABASE DEVOPS GENERAL"`
}

// List returns technologies with the number of projects attached to each,
// optionally filtered by category.
func (c *TechnologyController) List(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))

	query := c.db.Order("label ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var techs []models.Technology
	if err := query.Find(&techs).Error; err != nil {
		utils.ServerError(ctx, "list technologies", err)
		return
	}

	counts, err := c.projectCounts()
	if err != nil {
		utils.ServerError(ctx, "list technologies", err)
		return
	}
	for i := range techs {
		techs[i].ProjectCount = counts[techs[i].ID]
	}

	ctx.JSON(http.StatusOK, gin.H{"technologies": techs, "count": len(techs)})
}

// Get returns a single technology with its project count.
func (c *TechnologyController) Get(ctx *gin.Context) {
	var tech models.Technology
	if err := c.db.First(&tech, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Technology")
			return
		}
		utils.ServerError(ctx, "load technology", err)
		return
	}

	tech.ProjectCount = c.db.Model(&tech).Association("Projects").Count()
	ctx.JSON(http.StatusOK, gin.H{"technology": tech})
}

// Create persists a new technology.
func (c *TechnologyController) Create(ctx *gin.Context) {
	var req technologyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	tech := models.Technology{
		Label:    utils.SanitizeText(req.Label),
		Value:    req.Value.Int(),
		Icon:     utils.SanitizeText(req.Icon),
		Href:     utils.SanitizeURL(req.Href),
		Category: req.Category,
	}

	if err := c.db.Create(&tech).Error; err != nil {
		utils.ServerError(ctx, "create technology", err)
		return
	}

	utils.InvalidateByPrefix("cache:projects:")
	ctx.JSON(http.StatusCreated, gin.H{"technology": tech})
}

// Update applies a partial patch.
func (c *TechnologyController) Update(ctx *gin.Context) {
	var req technologyUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	var tech models.Technology
	if err := c.db.First(&tech, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Technology")
			return
		}
		utils.ServerError(ctx, "update technology", err)
		return
	}

	if req.Label != nil {
		tech.Label = utils.SanitizeText(*req.Label)
	}
	if req.Value != nil {
		tech.Value = req.Value.Int()
	}
	if req.Icon != nil {
		tech.Icon = utils.SanitizeText(*req.Icon)
	}
	if req.Href != nil {
		tech.Href = utils.SanitizeURL(*req.Href)
	}
	if req.Category != nil {
		tech.Category = *req.Category
	}

	if err := c.db.Save(&tech).Error; err != nil {
		utils.ServerError(ctx, "update technology", err)
		return
	}

	// Projects embed their technologies, so those cached payloads are stale now.
	utils.InvalidateByPrefix("cache:projects:")
	ctx.JSON(http.StatusOK, gin.H{"technology": tech})
}

// Delete removes a technology and its project associations.
func (c *TechnologyController) Delete(ctx *gin.Context) {
	var tech models.Technology
	if err := c.db.First(&tech, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Technology")
			return
		}
		utils.ServerError(ctx, "delete technology", err)
		return
	}

	if err := c.db.Model(&tech).Association("Projects").Clear(); err != nil {
		utils.ServerError(ctx, "delete technology", err)
		return
	}
	if err := c.db.Delete(&tech).Error; err != nil {
		utils.ServerError(ctx, "delete technology", err)
		return
	}

	utils.InvalidateByPrefix("cache:projects:")
	ctx.JSON(http.StatusOK, gin.H{"message": "Technology deleted successfully"})
}

// projectCounts groups the join table once instead of counting per row.
func (c *TechnologyController) projectCounts() (map[uint]int64, error) {
	type row struct {
		TechnologyID uint
		Cnt          int64
	}
	var rows []row
	err := c.db.Table("project_technologies").
		Select("technology_id, COUNT(*) AS cnt").
		Group("technology_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.TechnologyID] = r.Cnt
	}
	return counts, nil
}
