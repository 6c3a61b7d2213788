package handlers

import (
	"net/http"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// Hotel exists for dependency injection. Admin edits and deletes hotels by id.
type Hotel struct {
	DB databases.HotelDatabase
	contentResource[models.Hotel, *models.Hotel]
}

// NewHotel wires the hotel handlers to db
func NewHotel(db databases.HotelDatabase, v *Validator) Hotel {
	return Hotel{
		DB:              db,
		contentResource: contentResource[models.Hotel, *models.Hotel]{store: db, validator: v, name: "hotel", byID: true},
	}
}

// HotelsHandler returns a page of hotels, destination filters by destination id
func (h Hotel) HotelsHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	p, err := h.DB.List(r.Context(), page, size, databases.HotelFilter{Destination: r.URL.Query().Get("destination")})
	respondPage(w, "hotels", p, err)
}

// HotelBySlugHandler returns one hotel
func (h Hotel) HotelBySlugHandler(w http.ResponseWriter, r *http.Request) {
	h.bySlug(w, r)
}

// HotelByIDHandler returns one hotel by id
func (h Hotel) HotelByIDHandler(w http.ResponseWriter, r *http.Request) {
	h.byIDHandler(w, r)
}

// CreateHotelHandler creates a hotel
func (h Hotel) CreateHotelHandler(w http.ResponseWriter, r *http.Request) {
	h.create(w, r)
}

// UpdateHotelHandler applies a partial update by id
func (h Hotel) UpdateHotelHandler(w http.ResponseWriter, r *http.Request) {
	h.update(w, r)
}

// DeleteHotelHandler deletes a hotel by id
func (h Hotel) DeleteHotelHandler(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r)
}
