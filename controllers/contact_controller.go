package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foliohq/folio/config"
	"github.com/foliohq/folio/models"
	"github.com/foliohq/folio/utils"
)

// ContactController receives messages from the public contact form.
type ContactController struct {
	db *gorm.DB
}

// NewContactController creates a new ContactController instance.
func NewContactController(db *gorm.DB) *ContactController {
	return &ContactController{db: db}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// Submit stores the message and forwards it by mail. Delivery happens in
// the background so a slow SMTP server cannot stall the response; the
// stored row is the durable copy either way.
func (c *ContactController) Submit(ctx *gin.Context) {
	var req contactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BindFailure(ctx, err)
		return
	}

	msg := models.ContactMessage{
		Name:    utils.SanitizeText(req.Name),
		Email:   req.Email,
		Message: utils.SanitizeText(req.Message),
	}
	if err := c.db.Create(&msg).Error; err != nil {
		utils.ServerError(ctx, "send message", err)
		return
	}

	cfg := config.Get()
	recipient := cfg.ContactRecipient
	if recipient == "" {
		recipient = cfg.SMTPFrom
	}
	if recipient != "" && cfg.SMTPHost != "" {
		go func(to, name, email, body string) {
			subject := fmt.Sprintf("Contact form: %s", name)
			content := fmt.Sprintf("From: %s <%s>\r\n\r\n%s", name, email, body)
			if err := utils.SendMail(to, subject, content); err != nil && utils.Sugar != nil {
				utils.Sugar.Warnw("contact mail delivery failed", "error", err)
			}
		}(recipient, msg.Name, msg.Email, msg.Message)
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully"})
}
