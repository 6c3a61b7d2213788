package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druktrails/bhutan-tourism-api/models"
)

func TestAboutHandlerServesDefaults(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/about", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	about := decodeInto[models.AboutContent](t, rr)

	def := models.DefaultAboutContent()
	assert.Equal(t, def.Hero.Title, about.Hero.Title)
	assert.Len(t, about.Mission.Items, len(def.Mission.Items))
	assert.Len(t, env.db.Docs("about"), 1)
}

func TestUpdateAboutHandler(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{
		"story": map[string]string{"title": "Our Journey", "content": "Three generations of guides."},
		"mission": map[string]interface{}{
			"title": "Why we guide",
			"items": []map[string]string{{"title": "Listen first", "description": "Every trip starts with a call."}},
		},
	}

	rr := env.do(t, http.MethodPut, "/api/v1/admin/about", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodPut, "/api/v1/admin/about", body, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	about := decodeInto[models.AboutContent](t, rr)

	assert.Equal(t, "Our Journey", about.Story.Title)
	assert.Equal(t, models.DefaultAboutContent().Hero.Title, about.Hero.Title)
	require.Len(t, about.Mission.Items, 1)
	assert.Equal(t, "Listen first", about.Mission.Items[0].Title)
	assert.Equal(t, models.AboutSchemaVersion, about.SchemaVersion)

	rr = env.do(t, http.MethodGet, "/api/v1/about", nil, "")
	assert.Equal(t, "Our Journey", decodeInto[models.AboutContent](t, rr).Story.Title)
}
