package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/models"
)

func validPostBody(authorID uint, slug string) map[string]interface{} {
	return map[string]interface{}{
		"title":    "First Post",
		"subtitle": "An introduction",
		"content":  "<p>Hello <strong>world</strong></p>",
		"slug":     slug,
		"status":   "DRAFT",
		"authorId": authorID,
	}
}

func TestPostCreate(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "author@example.com")

	t.Run("draft gets no publication timestamp", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/posts", validPostBody(user.ID, "first-post"), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		post := decode(t, w)["post"].(map[string]interface{})
		assert.Equal(t, "DRAFT", post["status"])
		assert.Nil(t, post["publishedAt"])
		author := post["author"].(map[string]interface{})
		assert.Equal(t, "author@example.com", author["email"])
	})

	t.Run("publishing on create sets the timestamp", func(t *testing.T) {
		payload := validPostBody(user.ID, "published-post")
		payload["status"] = "PUBLISHED"
		w := env.request(t, http.MethodPost, "/api/posts", payload, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		post := decode(t, w)["post"].(map[string]interface{})
		assert.NotNil(t, post["publishedAt"])
	})

	t.Run("script content sanitized before storage", func(t *testing.T) {
		payload := validPostBody(user.ID, "clean-post")
		payload["content"] = `<p>safe</p><script>document.cookie</script>`
		w := env.request(t, http.MethodPost, "/api/posts", payload, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var stored models.Post
		require.NoError(t, env.db.Where("slug = ?", "clean-post").First(&stored).Error)
		assert.Equal(t, "<p>safe</p>", stored.Content)
	})

	t.Run("unknown author rejected as a field violation", func(t *testing.T) {
		payload := validPostBody(9999, "orphan-post")
		w := env.request(t, http.MethodPost, "/api/posts", payload, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must reference an existing user", fieldMessages(t, w)["authorId"])
	})

	t.Run("duplicate slug rejected as a field violation", func(t *testing.T) {
		payload := validPostBody(user.ID, "first-post")
		w := env.request(t, http.MethodPost, "/api/posts", payload, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "is already in use", fieldMessages(t, w)["slug"])
	})

	t.Run("slug format enforced", func(t *testing.T) {
		payload := validPostBody(user.ID, "Bad Slug")
		w := env.request(t, http.MethodPost, "/api/posts", payload, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "must be lowercase alphanumeric segments separated by single hyphens", fieldMessages(t, w)["slug"])
	})

	t.Run("without token returns 401", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/posts", validPostBody(user.ID, "nope"), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPostPublishTransition(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "author@example.com")

	post := models.Post{Title: "T", Content: "<p>c</p>", Slug: "t", Status: models.PostStatusDraft, AuthorID: user.ID}
	require.NoError(t, env.db.Create(&post).Error)

	// First publish stamps the time.
	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{"status": "PUBLISHED"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var published models.Post
	require.NoError(t, env.db.First(&published, post.ID).Error)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	// Re-saving an already published post keeps the original stamp.
	time.Sleep(10 * time.Millisecond)
	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{"title": "T2", "status": "PUBLISHED"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var again models.Post
	require.NoError(t, env.db.First(&again, post.ID).Error)
	require.NotNil(t, again.PublishedAt)
	assert.WithinDuration(t, firstStamp, *again.PublishedAt, time.Millisecond)

	// Unpublishing keeps the stamp; republishing refreshes it.
	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{"status": "DRAFT"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{"status": "PUBLISHED"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var republished models.Post
	require.NoError(t, env.db.First(&republished, post.ID).Error)
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, republished.PublishedAt.After(firstStamp))
}

func TestPostUpdate(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "author@example.com")
	other, _ := env.createUser(t, "other@example.com")

	post := models.Post{Title: "T", Content: "<p>c</p>", Slug: "t", Status: models.PostStatusDraft, AuthorID: user.ID}
	require.NoError(t, env.db.Create(&post).Error)
	taken := models.Post{Title: "U", Content: "<p>c</p>", Slug: "taken", Status: models.PostStatusDraft, AuthorID: user.ID}
	require.NoError(t, env.db.Create(&taken).Error)

	t.Run("authorId in patch is ignored", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{
			"title":    "New Title",
			"authorId": other.ID,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var stored models.Post
		require.NoError(t, env.db.First(&stored, post.ID).Error)
		assert.Equal(t, user.ID, stored.AuthorID)
		assert.Equal(t, "New Title", stored.Title)
	})

	t.Run("slug collision rejected", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{"slug": "taken"}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "is already in use", fieldMessages(t, w)["slug"])
	})

	t.Run("own slug resubmitted is fine", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), map[string]interface{}{"slug": "t"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, "/api/posts/999", map[string]interface{}{"title": "X"}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
	})
}

func TestPostAssociationsAndFilters(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "author@example.com")

	goCat := models.Category{Name: "golang"}
	require.NoError(t, env.db.Create(&goCat).Error)
	webCat := models.Category{Name: "web"}
	require.NoError(t, env.db.Create(&webCat).Error)
	tipTag := models.Tag{Name: "tips"}
	require.NoError(t, env.db.Create(&tipTag).Error)

	payload := validPostBody(user.ID, "tagged-post")
	payload["status"] = "PUBLISHED"
	payload["categoryIds"] = []uint{goCat.ID}
	payload["tagIds"] = []uint{tipTag.ID}
	w := env.request(t, http.MethodPost, "/api/posts", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)["post"].(map[string]interface{})
	require.Len(t, created["categories"].([]interface{}), 1)
	require.Len(t, created["tags"].([]interface{}), 1)
	postID := uint(created["id"].(float64))

	second := validPostBody(user.ID, "plain-post")
	w = env.request(t, http.MethodPost, "/api/posts", second, token)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("category filter narrows the list", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/posts?category=golang", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.EqualValues(t, 1, body["count"])
		posts := body["posts"].([]interface{})
		require.Len(t, posts, 1)
		assert.Equal(t, "tagged-post", posts[0].(map[string]interface{})["slug"])
	})

	t.Run("tag filter narrows the list", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/posts?tag=tips", nil, "")
		body := decode(t, w)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("status filter narrows the list", func(t *testing.T) {
		w := env.request(t, http.MethodGet, "/api/posts?status=DRAFT", nil, "")
		body := decode(t, w)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("patch replaces the category set", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", postID), map[string]interface{}{
			"categoryIds": []uint{webCat.ID},
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		cats := decode(t, w)["post"].(map[string]interface{})["categories"].([]interface{})
		require.Len(t, cats, 1)
		assert.Equal(t, "web", cats[0].(map[string]interface{})["name"])
	})

	t.Run("empty id list clears associations", func(t *testing.T) {
		w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/posts/%d", postID), map[string]interface{}{
			"tagIds": []uint{},
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		tags := decode(t, w)["post"].(map[string]interface{})["tags"]
		if tags != nil {
			assert.Empty(t, tags.([]interface{}))
		}
	})
}

func TestPostDelete(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "author@example.com")

	cat := models.Category{Name: "golang"}
	require.NoError(t, env.db.Create(&cat).Error)
	post := models.Post{Title: "T", Content: "<p>c</p>", Slug: "t", Status: models.PostStatusDraft, AuthorID: user.ID, Categories: []models.Category{cat}}
	require.NoError(t, env.db.Create(&post).Error)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Post deleted successfully"}`, w.Body.String())

	var posts int64
	require.NoError(t, env.db.Model(&models.Post{}).Count(&posts).Error)
	assert.EqualValues(t, 0, posts)

	// The category itself survives; only the link is removed.
	var cats int64
	require.NoError(t, env.db.Model(&models.Category{}).Count(&cats).Error)
	assert.EqualValues(t, 1, cats)
}
