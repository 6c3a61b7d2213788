package handlers

import (
	"net/http"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// Experience exists for dependency injection
type Experience struct {
	DB databases.ExperienceDatabase
	contentResource[models.Experience, *models.Experience]
}

// NewExperience wires the experience handlers to db
func NewExperience(db databases.ExperienceDatabase, v *Validator) Experience {
	return Experience{
		DB:              db,
		contentResource: contentResource[models.Experience, *models.Experience]{store: db, validator: v, name: "experience"},
	}
}

// ExperiencesHandler returns a page of experiences. category and destination
// (a destination slug) narrow the list.
func (e Experience) ExperiencesHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	q := r.URL.Query()
	p, err := e.DB.List(r.Context(), page, size, databases.ExperienceFilter{
		Category:        q.Get("category"),
		DestinationSlug: q.Get("destination"),
	})
	respondPage(w, "experiences", p, err)
}

// ExperienceBySlugHandler returns one experience
func (e Experience) ExperienceBySlugHandler(w http.ResponseWriter, r *http.Request) {
	e.bySlug(w, r)
}

// ExperienceByIDHandler returns one experience by id
func (e Experience) ExperienceByIDHandler(w http.ResponseWriter, r *http.Request) {
	e.byIDHandler(w, r)
}

// CreateExperienceHandler creates an experience
func (e Experience) CreateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	e.create(w, r)
}

// UpdateExperienceHandler applies a partial update by slug
func (e Experience) UpdateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	e.update(w, r)
}

// DeleteExperienceHandler deletes an experience by slug
func (e Experience) DeleteExperienceHandler(w http.ResponseWriter, r *http.Request) {
	e.delete(w, r)
}
