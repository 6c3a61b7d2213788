package handlers

import (
	"net/http"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// Destination exists for dependency injection
type Destination struct {
	DB databases.DestinationDatabase
	contentResource[models.Destination, *models.Destination]
}

// NewDestination wires the destination handlers to db
func NewDestination(db databases.DestinationDatabase, v *Validator) Destination {
	return Destination{
		DB:              db,
		contentResource: contentResource[models.Destination, *models.Destination]{store: db, validator: v, name: "destination"},
	}
}

// DestinationsHandler returns a page of destinations, optionally filtered by region
func (d Destination) DestinationsHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	p, err := d.DB.List(r.Context(), page, size, databases.DestinationFilter{Region: r.URL.Query().Get("region")})
	respondPage(w, "destinations", p, err)
}

// AllDestinationsHandler returns every destination in display order
func (d Destination) AllDestinationsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := d.DB.All(r.Context())
	respondAll(w, "destinations", all, err)
}

// DestinationBySlugHandler returns one destination
func (d Destination) DestinationBySlugHandler(w http.ResponseWriter, r *http.Request) {
	d.bySlug(w, r)
}

// DestinationByIDHandler returns one destination by id
func (d Destination) DestinationByIDHandler(w http.ResponseWriter, r *http.Request) {
	d.byIDHandler(w, r)
}

// CreateDestinationHandler creates a destination, 409 on a duplicate slug
func (d Destination) CreateDestinationHandler(w http.ResponseWriter, r *http.Request) {
	d.create(w, r)
}

// UpdateDestinationHandler applies a partial update by slug
func (d Destination) UpdateDestinationHandler(w http.ResponseWriter, r *http.Request) {
	d.update(w, r)
}

// DeleteDestinationHandler deletes a destination by slug
func (d Destination) DeleteDestinationHandler(w http.ResponseWriter, r *http.Request) {
	d.delete(w, r)
}
