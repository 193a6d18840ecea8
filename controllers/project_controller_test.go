package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/models"
)

func validProjectBody() map[string]interface{} {
	return map[string]interface{}{
		"name":             "Portfolio Site",
		"shortDescription": "Personal portfolio built with Go",
		"image":            "https://cdn.example.com/portfolio.png",
		"github":           "https://github.com/example/portfolio",
		"link":             "https://example.com",
		"status":           "COMPLETED",
		"order":            1,
	}
}

func TestProjectCreate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "admin@example.com")

	t.Run("valid payload returns 201 with the created project", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/projects", validProjectBody(), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decode(t, w)
		project := body["project"].(map[string]interface{})
		assert.Equal(t, "Portfolio Site", project["name"])
		assert.Equal(t, "COMPLETED", project["status"])
		assert.EqualValues(t, 1, project["order"])
	})

	t.Run("order accepts numeric string and zero", func(t *testing.T) {
		payload := validProjectBody()
		payload["order"] = "0"
		w := env.request(t, http.MethodPost, "/api/projects", payload, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		project := decode(t, w)["project"].(map[string]interface{})
		assert.EqualValues(t, 0, project["order"])
	})

	t.Run("all violations reported at once", func(t *testing.T) {
		payload := validProjectBody()
		payload["name"] = ""
		payload["github"] = "not-a-url"
		payload["status"] = "DONE"
		w := env.request(t, http.MethodPost, "/api/projects", payload, token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		msgs := fieldMessages(t, w)
		assert.Equal(t, "is required", msgs["name"])
		assert.Equal(t, "must be a valid URL", msgs["github"])
		assert.Equal(t, "must be one of COMPLETED, IN_PROGRESS, ARCHIVED", msgs["status"])
		assert.Len(t, msgs, 3)
	})

	t.Run("lowercase status enum rejected", func(t *testing.T) {
		payload := validProjectBody()
		payload["status"] = "completed"
		w := env.request(t, http.MethodPost, "/api/projects", payload, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, fieldMessages(t, w), "status")
	})

	t.Run("malformed body returns invalid request body", func(t *testing.T) {
		w := env.requestRaw(t, http.MethodPost, "/api/projects", `{broken`, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decode(t, w)["error"])
	})

	t.Run("name markup stripped before persisting", func(t *testing.T) {
		payload := validProjectBody()
		payload["name"] = "<b>Clean</b> Name"
		w := env.request(t, http.MethodPost, "/api/projects", payload, token)
		require.Equal(t, http.StatusCreated, w.Code)

		project := decode(t, w)["project"].(map[string]interface{})
		assert.Equal(t, "Clean Name", project["name"])
	})

	t.Run("script scheme github degrades to empty", func(t *testing.T) {
		payload := validProjectBody()
		payload["github"] = "javascript:alert(1)"
		w := env.request(t, http.MethodPost, "/api/projects", payload, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		project := decode(t, w)["project"].(map[string]interface{})
		assert.Equal(t, "", project["github"])
	})

	t.Run("without token returns 401 and writes nothing", func(t *testing.T) {
		var before int64
		require.NoError(t, env.db.Model(&models.Project{}).Count(&before).Error)

		w := env.request(t, http.MethodPost, "/api/projects", validProjectBody(), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

		var after int64
		require.NoError(t, env.db.Model(&models.Project{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})
}

func TestProjectCreateWithTechnologies(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "admin@example.com")

	tech := models.Technology{Label: "Go", Value: 90, Category: models.TechnologyCategoryBackend}
	require.NoError(t, env.db.Create(&tech).Error)

	payload := validProjectBody()
	payload["technologyIds"] = []uint{tech.ID, tech.ID, 9999}
	w := env.request(t, http.MethodPost, "/api/projects", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	project := decode(t, w)["project"].(map[string]interface{})
	techs := project["technologies"].([]interface{})
	// duplicate and unknown ids are dropped, not rejected
	require.Len(t, techs, 1)
	assert.Equal(t, "Go", techs[0].(map[string]interface{})["label"])
}

func TestProjectListAndGet(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Create(&models.Project{Name: "B", ShortDescription: "b", Link: "https://b.io", Status: models.ProjectStatusCompleted, Order: 2}).Error)
	require.NoError(t, env.db.Create(&models.Project{Name: "A", ShortDescription: "a", Link: "https://a.io", Status: models.ProjectStatusInProgress, Order: 1}).Error)

	t.Run("list is public and ordered by display order", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/projects", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.EqualValues(t, 2, body["count"])
		projects := body["projects"].([]interface{})
		require.Len(t, projects, 2)
		assert.Equal(t, "A", projects[0].(map[string]interface{})["name"])
		assert.Equal(t, "B", projects[1].(map[string]interface{})["name"])
	})

	t.Run("status filter applies", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/projects?status=COMPLETED", nil, "")
		body := decode(t, w)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("limit caps the result", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/projects?limit=1", nil, "")
		body := decode(t, w)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("get returns the single project envelope", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/projects/1", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		require.Contains(t, body, "project")
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/projects/999", nil, "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
	})
}

func TestProjectUpdate(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "admin@example.com")

	project := models.Project{Name: "Orig", ShortDescription: "desc", Link: "https://x.io", Status: models.ProjectStatusInProgress, Order: 3}
	require.NoError(t, env.db.Create(&project).Error)

	t.Run("partial patch leaves other fields alone", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, "/api/projects/1", map[string]interface{}{"name": "Renamed"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		updated := decode(t, w)["project"].(map[string]interface{})
		assert.Equal(t, "Renamed", updated["name"])
		assert.Equal(t, "desc", updated["shortDescription"])
		assert.Equal(t, "IN_PROGRESS", updated["status"])
	})

	t.Run("invalid field in patch rejected", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, "/api/projects/1", map[string]interface{}{"link": "nope"}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, fieldMessages(t, w), "link")
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, "/api/projects/999", map[string]interface{}{"name": "X"}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())
	})

	t.Run("without token returns 401", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, "/api/projects/1", map[string]interface{}{"name": "Nope"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var stored models.Project
		require.NoError(t, env.db.First(&stored, project.ID).Error)
		assert.NotEqual(t, "Nope", stored.Name)
	})
}

func TestProjectDelete(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "admin@example.com")

	project := models.Project{Name: "Doomed", ShortDescription: "d", Link: "https://d.io", Status: models.ProjectStatusArchived}
	require.NoError(t, env.db.Create(&project).Error)

	t.Run("without token returns 401", func(t *testing.T) {
		w := env.request(t, http.MethodDelete, "/api/projects/1", nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete succeeds with confirmation message", func(t *testing.T) {
		w := env.request(t, http.MethodDelete, "/api/projects/1", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Project deleted successfully"}`, w.Body.String())

		var count int64
		require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("second delete returns 404", func(t *testing.T) {
		w := env.request(t, http.MethodDelete, "/api/projects/1", nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
