package handlers

import (
	"net/http"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// ExperienceType exists for dependency injection
type ExperienceType struct {
	DB databases.ExperienceTypeDatabase
	contentResource[models.ExperienceType, *models.ExperienceType]
}

// NewExperienceType wires the experience type handlers to db
func NewExperienceType(db databases.ExperienceTypeDatabase, v *Validator) ExperienceType {
	return ExperienceType{
		DB:              db,
		contentResource: contentResource[models.ExperienceType, *models.ExperienceType]{store: db, validator: v, name: "experience type"},
	}
}

func (e ExperienceType) ExperienceTypesHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	p, err := e.DB.List(r.Context(), page, size)
	respondPage(w, "experience types", p, err)
}

func (e ExperienceType) AllExperienceTypesHandler(w http.ResponseWriter, r *http.Request) {
	all, err := e.DB.All(r.Context())
	respondAll(w, "experience types", all, err)
}

func (e ExperienceType) ExperienceTypeBySlugHandler(w http.ResponseWriter, r *http.Request) {
	e.bySlug(w, r)
}

func (e ExperienceType) ExperienceTypeByIDHandler(w http.ResponseWriter, r *http.Request) {
	e.byIDHandler(w, r)
}

func (e ExperienceType) CreateExperienceTypeHandler(w http.ResponseWriter, r *http.Request) {
	e.create(w, r)
}

func (e ExperienceType) UpdateExperienceTypeHandler(w http.ResponseWriter, r *http.Request) {
	e.update(w, r)
}

func (e ExperienceType) DeleteExperienceTypeHandler(w http.ResponseWriter, r *http.Request) {
	e.delete(w, r)
}
