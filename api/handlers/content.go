package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// contentStore is the subset of an entity database the shared content handlers need.
// Every entity database satisfies it for its own model type.
type contentStore[T any] interface {
	FindBySlug(ctx context.Context, slug string) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (string, error)
	Update(ctx context.Context, key string, fields bson.M) (int64, error)
	Delete(ctx context.Context, key string) (int64, error)
}

// slugged is implemented by models that carry a public slug
type slugged interface {
	GetSlug() string
	HexID() string
}

// contentResource implements get/create/update/delete for one entity. byID selects
// the id as the update/delete key instead of the slug.
type contentResource[T any, PT interface {
	*T
	slugged
}] struct {
	store     contentStore[T]
	validator *Validator
	name      string
	byID      bool
}

func (c contentResource[T, PT]) respondOne(w http.ResponseWriter, doc *T, err error) {
	if err != nil {
		config.ErrorStatus("failed to get "+c.name, http.StatusInternalServerError, w, err)
		return
	}
	if doc == nil {
		config.ErrorStatus(c.name+" not found", http.StatusNotFound, w, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (c contentResource[T, PT]) bySlug(w http.ResponseWriter, r *http.Request) {
	doc, err := c.store.FindBySlug(r.Context(), mux.Vars(r)["slug"])
	c.respondOne(w, doc, err)
}

func (c contentResource[T, PT]) byIDHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := c.store.FindByID(r.Context(), mux.Vars(r)["id"])
	c.respondOne(w, doc, err)
}

// slugTaken reports whether another document already uses slug. except is the key
// of the document being edited, empty on create.
func (c contentResource[T, PT]) slugTaken(ctx context.Context, slug, except string) (bool, error) {
	existing, err := c.store.FindBySlug(ctx, slug)
	if err != nil || existing == nil {
		return false, err
	}
	if c.byID {
		return PT(existing).HexID() != except, nil
	}
	return slug != except, nil
}

func (c contentResource[T, PT]) create(w http.ResponseWriter, r *http.Request) {
	var doc T
	if err := decodeBody(r, &doc); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := c.validator.Struct(&doc); err != nil {
		writeValidation(w, err)
		return
	}
	taken, err := c.slugTaken(r.Context(), PT(&doc).GetSlug(), "")
	if err != nil {
		config.ErrorStatus("failed to check slug", http.StatusInternalServerError, w, err)
		return
	}
	if taken {
		config.ErrorStatus(c.name+" slug already exists", http.StatusConflict, w, errors.New(PT(&doc).GetSlug()))
		return
	}
	if _, err := c.store.Create(r.Context(), &doc); err != nil {
		config.ErrorStatus("failed to create "+c.name, http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &doc)
}

func (c contentResource[T, PT]) key(r *http.Request) string {
	if c.byID {
		return mux.Vars(r)["id"]
	}
	return mux.Vars(r)["slug"]
}

func (c contentResource[T, PT]) update(w http.ResponseWriter, r *http.Request) {
	key := c.key(r)
	doc, fields, names, err := decodePatch[T](r)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := c.validator.Partial(doc, names...); err != nil {
		writeValidation(w, err)
		return
	}
	if len(fields) == 0 {
		config.ErrorStatus("nothing to update", http.StatusBadRequest, w, errors.New("empty body"))
		return
	}
	newSlug, slugChanged := keyOf(fields, "slug")
	if slugChanged {
		taken, err := c.slugTaken(r.Context(), newSlug, key)
		if err != nil {
			config.ErrorStatus("failed to check slug", http.StatusInternalServerError, w, err)
			return
		}
		if taken {
			config.ErrorStatus(c.name+" slug already exists", http.StatusConflict, w, errors.New(newSlug))
			return
		}
	}

	n, err := c.store.Update(r.Context(), key, fields)
	if err != nil {
		config.ErrorStatus("failed to update "+c.name, http.StatusInternalServerError, w, err)
		return
	}
	if n == 0 {
		config.ErrorStatus(c.name+" not found", http.StatusNotFound, w, errNotFound)
		return
	}

	var updated *T
	switch {
	case c.byID:
		updated, err = c.store.FindByID(r.Context(), key)
	case slugChanged:
		updated, err = c.store.FindBySlug(r.Context(), newSlug)
	default:
		updated, err = c.store.FindBySlug(r.Context(), key)
	}
	c.respondOne(w, updated, err)
}

func (c contentResource[T, PT]) delete(w http.ResponseWriter, r *http.Request) {
	n, err := c.store.Delete(r.Context(), c.key(r))
	if err != nil {
		config.ErrorStatus("failed to delete "+c.name, http.StatusInternalServerError, w, err)
		return
	}
	if n == 0 {
		config.ErrorStatus(c.name+" not found", http.StatusNotFound, w, errNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondPage writes a list result
func respondPage[T any](w http.ResponseWriter, name string, page *models.Page[T], err error) {
	if err != nil {
		config.ErrorStatus("failed to list "+name, http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// respondAll writes an unpaginated list, never null
func respondAll[T any](w http.ResponseWriter, name string, items []T, err error) {
	if err != nil {
		config.ErrorStatus("failed to list "+name, http.StatusInternalServerError, w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
