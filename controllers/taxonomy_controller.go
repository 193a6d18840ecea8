package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/utils"
)

// TaxonomyController serves post categories and tags.
type TaxonomyController struct {
	db *gorm.DB
}

// NewTaxonomyController creates a new TaxonomyController instance.
func NewTaxonomyController(db *gorm.DB) *TaxonomyController {
	return &TaxonomyController{db: db}
}

type taxonomyCreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ListCategories returns all categories in name order.
func (c *TaxonomyController) ListCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := c.db.Order("name ASC").Find(&categories).Error; err != nil {
		utils.ServerError(ctx, "list categories", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// CreateCategory adds a new category.
func (c *TaxonomyController) CreateCategory(ctx *gin.Context) {
	var req taxonomyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	category := models.Category{Name: utils.SanitizeText(req.Name)}
	if err := c.db.Create(&category).Error; err != nil {
		utils.ServerError(ctx, "create category", err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListTags returns all tags in name order.
func (c *TaxonomyController) ListTags(ctx *gin.Context) {
	var tags []models.Tag
	if err := c.db.Order("name ASC").Find(&tags).Error; err != nil {
		utils.ServerError(ctx, "list tags", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tags": tags, "count": len(tags)})
}

// CreateTag adds a new tag.
func (c *TaxonomyController) CreateTag(ctx *gin.Context) {
	var req taxonomyCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	tag := models.Tag{Name: utils.SanitizeText(req.Name)}
	if err := c.db.Create(&tag).Error; err != nil {
		utils.ServerError(ctx, "create tag", err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusCreated, gin.H{"tag": tag})
}
