package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druktrails/bhutan-tourism-api/models"
)

func TestDestinationsHandlerPaginates(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/destinations?page=2&pageSize=4", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeInto[models.Page[models.Destination]](t, rr)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 4, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(6), page.TotalItems)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestDestinationsHandlerOutOfRangePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/destinations?page=9", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestDestinationsHandlerFiltersByRegion(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/destinations?region=central", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeInto[models.Page[models.Destination]](t, rr)

	var slugs []string
	for _, d := range page.Items {
		slugs = append(slugs, d.Slug)
	}
	assert.ElementsMatch(t, []string{"phobjikha", "bumthang"}, slugs)
}

func TestAllDestinationsHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/destinations/all", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Len(t, decodeInto[[]models.Destination](t, rr), 6)
}

func TestDestinationBySlugHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/destinations/paro", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Paro", decodeInto[models.Destination](t, rr).Name)

	rr = env.do(t, http.MethodGet, "/api/v1/destinations/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "destination not found, not found", responseMessage(t, rr))
}

func TestDestinationByIDHandler(t *testing.T) {
	env := newTestEnv(t)
	paro := decodeInto[models.Destination](t, env.do(t, http.MethodGet, "/api/v1/destinations/paro", nil, ""))

	rr := env.do(t, http.MethodGet, "/api/v1/admin/destinations/"+paro.HexID(), nil, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "paro", decodeInto[models.Destination](t, rr).Slug)

	rr = env.do(t, http.MethodGet, "/api/v1/admin/destinations/not-an-id", nil, env.admin.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateDestinationHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/admin/destinations", map[string]interface{}{
		"_id": "5fc51e36c72ff10004dca381", "name": "Haa", "slug": "haa", "region": "west",
	}, env.admin.Token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeInto[models.Destination](t, rr)
	assert.NotEqual(t, "5fc51e36c72ff10004dca381", created.HexID())
	assert.False(t, created.CreatedAt.IsZero())

	rr = env.do(t, http.MethodGet, "/api/v1/destinations/haa", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateDestinationHandlerRejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/admin/destinations", map[string]interface{}{
		"slug": "Not A Slug", "image": "not a url",
	}, env.admin.Token)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeInto[models.ErrorMessageResponse](t, rr)

	assert.Equal(t, "validation failed", resp.Response.Message)
	assert.Equal(t, "is required", resp.Response.Fields["name"])
	assert.Contains(t, resp.Response.Fields, "slug")
	assert.Equal(t, "must be a valid URL", resp.Response.Fields["image"])

	rr = env.do(t, http.MethodPost, "/api/v1/admin/destinations", "{not json", env.admin.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateDestinationHandlerDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/admin/destinations", map[string]interface{}{
		"name": "Paro Again", "slug": "paro",
	}, env.admin.Token)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "destination slug already exists, paro", responseMessage(t, rr))
}

func TestUpdateDestinationHandlerMergesFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPatch, "/api/v1/admin/destinations/paro", map[string]interface{}{
		"region": "western", "priority": 3,
	}, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeInto[models.Destination](t, rr)

	assert.Equal(t, "western", updated.Region)
	assert.Equal(t, 3, updated.Priority)
	assert.Equal(t, "Paro", updated.Name)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestUpdateDestinationHandlerRenamesSlug(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPatch, "/api/v1/admin/destinations/paro", map[string]interface{}{"slug": "paro-valley"}, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "paro-valley", decodeInto[models.Destination](t, rr).Slug)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/destinations/paro", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/destinations/paro-valley", nil, "").Code)
}

func TestUpdateDestinationHandlerErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		path string
		body interface{}
		code int
	}{
		{"slug taken", "/api/v1/admin/destinations/paro", map[string]interface{}{"slug": "thimphu"}, http.StatusConflict},
		{"invalid slug", "/api/v1/admin/destinations/paro", map[string]interface{}{"slug": "Bad Slug"}, http.StatusBadRequest},
		{"invalid priority", "/api/v1/admin/destinations/paro", map[string]interface{}{"priority": -1}, http.StatusBadRequest},
		{"empty body", "/api/v1/admin/destinations/paro", map[string]interface{}{}, http.StatusBadRequest},
		{"unknown keys only", "/api/v1/admin/destinations/paro", map[string]interface{}{"colour": "red"}, http.StatusBadRequest},
		{"unknown slug", "/api/v1/admin/destinations/nowhere", map[string]interface{}{"region": "east"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPatch, tt.path, tt.body, env.admin.Token)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
		})
	}
}

func TestDeleteDestinationHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodDelete, "/api/v1/admin/destinations/trashigang", nil, env.admin.Token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/v1/admin/destinations/trashigang", nil, env.admin.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExperiencesHandlerFilters(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"?destination=paro", []string{"tigers-nest-hike", "paro-tsechu", "druk-path-trail"}},
		{"?category=festival", []string{"paro-tsechu", "crane-festival"}},
		{"?category=festival&destination=phobjikha", []string{"crane-festival"}},
		{"?category=rafting", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := env.do(t, http.MethodGet, "/api/v1/experiences"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, rr.Code)
			page := decodeInto[models.Page[models.Experience]](t, rr)

			var slugs []string
			for _, e := range page.Items {
				slugs = append(slugs, e.Slug)
			}
			assert.ElementsMatch(t, tt.want, slugs)
		})
	}
}

func TestExperienceTypesHandlers(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/experience-types/all", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	all := decodeInto[[]models.ExperienceType](t, rr)
	require.Len(t, all, 4)
	assert.Equal(t, "festival", all[0].Slug)

	rr = env.do(t, http.MethodGet, "/api/v1/experience-types?pageSize=2", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeInto[models.Page[models.ExperienceType]](t, rr)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalPages)

	rr = env.do(t, http.MethodPost, "/api/v1/admin/experience-types", map[string]interface{}{
		"slug": "birding", "title": "Birding", "displayOrder": 5,
	}, env.admin.Token)
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestToursHandlerFeaturedFilter(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/tours?featured=true", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	featured := decodeInto[models.Page[models.Tour]](t, rr)
	assert.Len(t, featured.Items, 2)
	for _, tour := range featured.Items {
		assert.True(t, tour.Featured)
	}

	rr = env.do(t, http.MethodGet, "/api/v1/tours", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	all := decodeInto[models.Page[models.Tour]](t, rr)
	require.Len(t, all.Items, 4)
	assert.True(t, all.Items[0].Featured)
	assert.True(t, all.Items[1].Featured)
	assert.False(t, all.Items[2].Featured)

	rr = env.do(t, http.MethodGet, "/api/v1/tours?featured=maybe", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHotelsHandlerFiltersByDestinationID(t *testing.T) {
	env := newTestEnv(t)
	paro := decodeInto[models.Destination](t, env.do(t, http.MethodGet, "/api/v1/destinations/paro", nil, ""))

	rr := env.do(t, http.MethodGet, "/api/v1/hotels?destination="+paro.HexID(), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	page := decodeInto[models.Page[models.Hotel]](t, rr)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "zhiwa-ling-heritage", page.Items[0].Slug)
}

func TestUpdateHotelHandlerByID(t *testing.T) {
	env := newTestEnv(t)
	hotel := decodeInto[models.Hotel](t, env.do(t, http.MethodGet, "/api/v1/hotels/hotel-druk", nil, ""))
	path := "/api/v1/admin/hotels/" + hotel.HexID()

	rr := env.do(t, http.MethodPatch, path, map[string]interface{}{"rating": 4.5}, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 4.5, decodeInto[models.Hotel](t, rr).Rating)

	rr = env.do(t, http.MethodPatch, path, map[string]interface{}{"slug": "hotel-druk"}, env.admin.Token)
	assert.Equal(t, http.StatusOK, rr.Code, "keeping its own slug is not a conflict")

	rr = env.do(t, http.MethodPatch, path, map[string]interface{}{"slug": "zhiwa-ling-heritage"}, env.admin.Token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, http.MethodPatch, path, map[string]interface{}{"rating": 6}, env.admin.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/v1/admin/hotels/nope", nil, env.admin.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodDelete, path, nil, env.admin.Token)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/hotels/hotel-druk", nil, "").Code)
}
