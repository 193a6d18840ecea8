package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/models"
)

func TestContactSubmit(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid message persisted without auth", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/contact", map[string]interface{}{
			"name":    "Visitor",
			"email":   "visitor@example.com",
			"message": "I would like to work with you.",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.JSONEq(t, `{"message":"Message sent successfully"}`, w.Body.String())

		var stored models.ContactMessage
		require.NoError(t, env.db.First(&stored).Error)
		assert.Equal(t, "Visitor", stored.Name)
		assert.Equal(t, "visitor@example.com", stored.Email)
	})

	t.Run("message markup stripped before storage", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/contact", map[string]interface{}{
			"name":    "<b>Spam</b> Bot",
			"email":   "bot@example.com",
			"message": "hi <script>alert(1)</script>there",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var stored models.ContactMessage
		require.NoError(t, env.db.Where("email = ?", "bot@example.com").First(&stored).Error)
		assert.Equal(t, "Spam Bot", stored.Name)
		assert.NotContains(t, stored.Message, "script")
	})

	t.Run("invalid email and oversized message rejected together", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/contact", map[string]interface{}{
			"name":    "V",
			"email":   "not-an-email",
			"message": strings.Repeat("a", 5001),
		}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		msgs := fieldMessages(t, w)
		assert.Equal(t, "must be a valid email address", msgs["email"])
		assert.Equal(t, "must be at most 5000 characters", msgs["message"])
	})
}
