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

// SkillController manages CRUD operations for skills.
type SkillController struct {
	db *gorm.DB
}

// NewSkillController creates a new SkillController instance.
func NewSkillController(db *gorm.DB) *SkillController {
	return &SkillController{db: db}
}

type skillCreateRequest struct {
	Label string         `json:"label" binding:"required,min=1,max=100"`
	Type  string         `json:"type" binding:"required,oneof=TECHNICAL SOFT"`
	Icon  string         `json:"icon" binding:"omitempty,max=50"`
	Order *utils.FlexInt `json:"order" binding:"required,gte=0"`
}

type skillUpdateRequest struct {
	Label *string        `json:"label" binding:"omitempty,min=1,max=100"`
	Type  *string        `json:"type" binding:"omitempty,oneof=TECHNICAL SOFT"`
	Icon  *string        `json:"icon" binding:"omitempty,max=50"`
	Order *utils.FlexInt `json:"order" binding:"omitempty,gte=0"`
}

// List returns skills, optionally filtered by type.
func (c *SkillController) List(ctx *gin.Context) {
	skillType := strings.TrimSpace(ctx.Query("type"))
	limit := parseLimit(ctx.Query("limit"))

	query := c.db.Order("display_order ASC").Order("created_at DESC")
	if skillType != "" {
		query = query.Where("type = ?", skillType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var skills []models.Skill
	if err := query.Find(&skills).Error; err != nil {
		utils.ServerError(ctx, "list skills", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"skills": skills, "count": len(skills)})
}

// Get returns a single skill.
func (c *SkillController) Get(ctx *gin.Context) {
	var skill models.Skill
	if err := c.db.First(&skill, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Skill")
			return
		}
		utils.ServerError(ctx, "load skill", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"skill": skill})
}

// Create persists a new skill. This operation is intentionally left
// ungated; the route table in routes/ reflects that.
func (c *SkillController) Create(ctx *gin.Context) {
	var req skillCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	skill := models.Skill{
		Label: utils.SanitizeText(req.Label),
		Type:  req.Type,
		Icon:  utils.SanitizeText(req.Icon),
		Order: req.Order.Int(),
	}

	if err := c.db.Create(&skill).Error; err != nil {
		utils.ServerError(ctx, "create skill", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"skill": skill})
}

// Update applies a partial patch.
func (c *SkillController) Update(ctx *gin.Context) {
	var req skillUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	var skill models.Skill
	if err := c.db.First(&skill, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Skill")
			return
		}
		utils.ServerError(ctx, "update skill", err)
		return
	}

	if req.Label != nil {
		skill.Label = utils.SanitizeText(*req.Label)
	}
	if req.Type != nil {
		skill.Type = *req.Type
	}
	if req.Icon != nil {
		skill.Icon = utils.SanitizeText(*req.Icon)
	}
	if req.Order != nil {
		skill.Order = req.Order.Int()
	}

	if err := c.db.Save(&skill).Error; err != nil {
		utils.ServerError(ctx, "update skill", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"skill": skill})
}

// Delete removes a skill.
func (c *SkillController) Delete(ctx *gin.Context) {
	var skill models.Skill
	if err := c.db.First(&skill, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Skill")
			return
		}
		utils.ServerError(ctx, "delete skill", err)
		return
	}

	if err := c.db.Delete(&skill).Error; err != nil {
		utils.ServerError(ctx, "delete skill", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Skill deleted successfully"})
}
