package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/models"
)

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "admin@example.com")

	t.Run("create requires a token", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/categories", map[string]interface{}{"name": "golang"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create with token", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/categories", map[string]interface{}{"name": "golang"}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		category := decode(t, w)["category"].(map[string]interface{})
		assert.Equal(t, "golang", category["name"])
	})

	t.Run("name markup stripped", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/categories", map[string]interface{}{"name": "<i>web</i>"}, token)
		require.Equal(t, http.StatusCreated, w.Code)
		category := decode(t, w)["category"].(map[string]interface{})
		assert.Equal(t, "web", category["name"])
	})

	t.Run("list is public and name ordered", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/categories", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.EqualValues(t, 2, body["count"])
		cats := body["categories"].([]interface{})
		require.Len(t, cats, 2)
		assert.Equal(t, "golang", cats[0].(map[string]interface{})["name"])
		assert.Equal(t, "web", cats[1].(map[string]interface{})["name"])
	})

	t.Run("empty name rejected", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/categories", map[string]interface{}{"name": ""}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "is required", fieldMessages(t, w)["name"])
	})
}

func TestTags(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "admin@example.com")

	require.NoError(t, env.db.Create(&models.Tag{Name: "tips"}).Error)

	t.Run("create", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/tags", map[string]interface{}{"name": "tools"}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		tag := decode(t, w)["tag"].(map[string]interface{})
		assert.Equal(t, "tools", tag["name"])
	})

	t.Run("list", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/tags", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 2, decode(t, w)["count"])
	})
}
