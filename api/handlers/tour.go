package handlers

import (
	"net/http"
	"strconv"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// Tour exists for dependency injection
type Tour struct {
	DB databases.TourDatabase
	contentResource[models.Tour, *models.Tour]
}

// NewTour wires the tour handlers to db
func NewTour(db databases.TourDatabase, v *Validator) Tour {
	return Tour{
		DB:              db,
		contentResource: contentResource[models.Tour, *models.Tour]{store: db, validator: v, name: "tour"},
	}
}

// ToursHandler returns a page of tours, featured first. featured=true|false and
// category narrow the list.
func (t Tour) ToursHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	q := r.URL.Query()
	filter := databases.TourFilter{Category: q.Get("category")}
	if raw := q.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			config.ErrorStatus("invalid featured value", http.StatusBadRequest, w, err)
			return
		}
		filter.Featured = &featured
	}
	p, err := t.DB.List(r.Context(), page, size, filter)
	respondPage(w, "tours", p, err)
}

// AllToursHandler returns every tour
func (t Tour) AllToursHandler(w http.ResponseWriter, r *http.Request) {
	all, err := t.DB.All(r.Context())
	respondAll(w, "tours", all, err)
}

// TourBySlugHandler returns one tour
func (t Tour) TourBySlugHandler(w http.ResponseWriter, r *http.Request) {
	t.bySlug(w, r)
}

// TourByIDHandler returns one tour by id
func (t Tour) TourByIDHandler(w http.ResponseWriter, r *http.Request) {
	t.byIDHandler(w, r)
}

// CreateTourHandler creates a tour
func (t Tour) CreateTourHandler(w http.ResponseWriter, r *http.Request) {
	t.create(w, r)
}

// UpdateTourHandler applies a partial update by slug
func (t Tour) UpdateTourHandler(w http.ResponseWriter, r *http.Request) {
	t.update(w, r)
}

// DeleteTourHandler deletes a tour by slug
func (t Tour) DeleteTourHandler(w http.ResponseWriter, r *http.Request) {
	t.delete(w, r)
}
