package handlers

import (
	"net/http"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// About exists for dependency injection
type About struct {
	DB databases.AboutDatabase
}

// AboutHandler returns the about page content, creating it from the default
// template on first read
func (a About) AboutHandler(w http.ResponseWriter, r *http.Request) {
	content, err := a.DB.Get(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get about content", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// UpdateAboutHandler replaces the stored about content. Empty fields fall back to
// the defaults on the next read.
func (a About) UpdateAboutHandler(w http.ResponseWriter, r *http.Request) {
	var content models.AboutContent
	if err := decodeBody(r, &content); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := a.DB.Update(r.Context(), &content); err != nil {
		config.ErrorStatus("failed to update about content", http.StatusInternalServerError, w, err)
		return
	}
	a.AboutHandler(w, r)
}
