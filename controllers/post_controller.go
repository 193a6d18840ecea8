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

// PostController manages CRUD operations for blog posts.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

type postCreateRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Subtitle    string `json:"subtitle" binding:"omitempty,max=300"`
	Content     string `json:"content" binding:"required,min=1"`
	Slug        string `json:"slug" binding:"required,min=1,max=200,slug"`
	Image       string `json:"image" binding:"omitempty,url"`
	Status      string `json:"status" binding:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
	AuthorID    uint   `json:"authorId" binding:"required,gt=0"`
	CategoryIDs []uint `json:"categoryIds" binding:"omitempty,dive,gt=0"`
	TagIDs      []uint `json:"tagIds" binding:"omitempty,dive,gt=0"`
}

// postUpdateRequest deliberately has no authorId field: authorship is
// immutable after create, and a supplied authorId is ignored, not rejected.
type postUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Subtitle    *string `json:"subtitle" binding:"omitempty,max=300"`
	Content     *string `json:"content" binding:"omitempty,min=1"`
	Slug        *string `json:"slug" binding:"omitempty,min=1,max=200,slug"`
	Image       *string `json:"image" binding:"omitempty,url"`
	Status      *string `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	CategoryIDs *[]uint `json:"categoryIds" binding:"omitempty,dive,gt=0"`
	TagIDs      *[]uint `json:"tagIds" binding:"omitempty,dive,gt=0"`
}

// List returns posts newest first. Optional filters: status, category
// (category name), tag (tag name), limit.
func (c *PostController) List(ctx *gin.Context) {
	status := strings.TrimSpace(ctx.Query("status"))
	category := strings.TrimSpace(ctx.Query("category"))
	tag := strings.TrimSpace(ctx.Query("tag"))
	limit := parseLimit(ctx.Query("limit"))

	cacheKey := fmt.Sprintf("cache:posts:list:status=%s:cat=%s:tag=%s:limit=%d", status, category, tag, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	query := c.db.Preload("Author").Preload("Categories").Preload("Tags").
		Order("posts.created_at DESC")
	if status != "" {
		query = query.Where("posts.status = ?", status)
	}
	if category != "" {
		query = query.
			Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Joins("JOIN categories ON categories.id = post_categories.category_id").
			Where("categories.name = ?", category)
	}
	if tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", tag)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		utils.ServerError(ctx, "list posts", err)
		return
	}

	payload := gin.H{"posts": posts, "count": len(posts)}
	utils.CacheSetJSON(cacheKey, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// Get returns a single post with author, categories and tags.
func (c *PostController) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	if b, ok := utils.CacheGetBytes("cache:posts:detail:" + id); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var post models.Post
	if err := c.db.Preload("Author").Preload("Categories").Preload("Tags").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Post")
			return
		}
		utils.ServerError(ctx, "load post", err)
		return
	}

	payload := gin.H{"post": post}
	utils.CacheSetJSON("cache:posts:detail:"+id, payload, time.Hour)
	ctx.JSON(http.StatusOK, payload)
}

// Create validates, sanitizes and persists a new post. A post created
// directly as PUBLISHED gets its publication timestamp immediately.
func (c *PostController) Create(ctx *gin.Context) {
	var req postCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	var author models.User
	if err := c.db.First(&author, req.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ValidationFailed(ctx, []utils.FieldError{{Field: "authorId", Message: "must reference an existing user"}})
			return
		}
		utils.ServerError(ctx, "create post", err)
		return
	}

	if taken, err := c.slugTaken(req.Slug, 0); err != nil {
		utils.ServerError(ctx, "create post", err)
		return
	} else if taken {
		utils.ValidationFailed(ctx, []utils.FieldError{{Field: "slug", Message: "is already in use"}})
		return
	}

	post := models.Post{
		Title:    utils.SanitizeText(req.Title),
		Subtitle: utils.SanitizeText(req.Subtitle),
		Content:  utils.SanitizeHTML(req.Content),
		Slug:     req.Slug,
		Image:    utils.SanitizeURL(req.Image),
		Status:   req.Status,
		AuthorID: req.AuthorID,
	}
	if req.Status == models.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := c.db.Create(&post).Error; err != nil {
		utils.ServerError(ctx, "create post", err)
		return
	}

	if err := c.replaceAssociations(&post, req.CategoryIDs, req.TagIDs); err != nil {
		utils.ServerError(ctx, "create post", err)
		return
	}

	if err := c.db.Preload("Author").Preload("Categories").Preload("Tags").First(&post, post.ID).Error; err != nil {
		utils.ServerError(ctx, "create post", err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusCreated, gin.H{"post": post})
}

// Update applies a partial patch. The publication timestamp is set only on
// the write that actually moves the post into PUBLISHED; re-saving an
// already published post keeps the original timestamp.
func (c *PostController) Update(ctx *gin.Context) {
	var req postUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	id := ctx.Param("id")
	var post models.Post
	if err := c.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Post")
			return
		}
		utils.ServerError(ctx, "update post", err)
		return
	}

	if req.Slug != nil && *req.Slug != post.Slug {
		if taken, err := c.slugTaken(*req.Slug, post.ID); err != nil {
			utils.ServerError(ctx, "update post", err)
			return
		} else if taken {
			utils.ValidationFailed(ctx, []utils.FieldError{{Field: "slug", Message: "is already in use"}})
			return
		}
		post.Slug = *req.Slug
	}

	if req.Title != nil {
		post.Title = utils.SanitizeText(*req.Title)
	}
	if req.Subtitle != nil {
		post.Subtitle = utils.SanitizeText(*req.Subtitle)
	}
	if req.Content != nil {
		post.Content = utils.SanitizeHTML(*req.Content)
	}
	if req.Image != nil {
		post.Image = utils.SanitizeURL(*req.Image)
	}
	if req.Status != nil {
		if *req.Status == models.PostStatusPublished && post.Status != models.PostStatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = *req.Status
	}

	if err := c.db.Save(&post).Error; err != nil {
		utils.ServerError(ctx, "update post", err)
		return
	}

	if req.CategoryIDs != nil {
		if err := c.replaceCategories(&post, *req.CategoryIDs); err != nil {
			utils.ServerError(ctx, "update post", err)
			return
		}
	}
	if req.TagIDs != nil {
		if err := c.replaceTags(&post, *req.TagIDs); err != nil {
			utils.ServerError(ctx, "update post", err)
			return
		}
	}

	if err := c.db.Preload("Author").Preload("Categories").Preload("Tags").First(&post, post.ID).Error; err != nil {
		utils.ServerError(ctx, "update post", err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusOK, gin.H{"post": post})
}

// Delete removes a post and its category/tag associations.
func (c *PostController) Delete(ctx *gin.Context) {
	var post models.Post
	if err := c.db.First(&post, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "Post")
			return
		}
		utils.ServerError(ctx, "delete post", err)
		return
	}

	if err := c.db.Model(&post).Association("Categories").Clear(); err != nil {
		utils.ServerError(ctx, "delete post", err)
		return
	}
	if err := c.db.Model(&post).Association("Tags").Clear(); err != nil {
		utils.ServerError(ctx, "delete post", err)
		return
	}
	if err := c.db.Delete(&post).Error; err != nil {
		utils.ServerError(ctx, "delete post", err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (c *PostController) slugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := c.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *PostController) replaceAssociations(post *models.Post, categoryIDs, tagIDs []uint) error {
	if len(categoryIDs) > 0 {
		if err := c.replaceCategories(post, categoryIDs); err != nil {
			return err
		}
	}
	if len(tagIDs) > 0 {
		if err := c.replaceTags(post, tagIDs); err != nil {
			return err
		}
	}
	return nil
}

// replaceCategories swaps the category set in one replace call. Unknown
// ids are dropped rather than rejected.
func (c *PostController) replaceCategories(post *models.Post, ids []uint) error {
	var cats []models.Category
	if unique := utils.UniqueUint(ids); len(unique) > 0 {
		if err := c.db.Find(&cats, unique).Error; err != nil {
			return err
		}
	}
	return c.db.Model(post).Association("Categories").Replace(&cats)
}

func (c *PostController) replaceTags(post *models.Post, ids []uint) error {
	var tags []models.Tag
	if unique := utils.UniqueUint(ids); len(unique) > 0 {
		if err := c.db.Find(&tags, unique).Error; err != nil {
			return err
		}
	}
	return c.db.Model(post).Association("Tags").Replace(&tags)
}
