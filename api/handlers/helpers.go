package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

var errNotFound = errors.New("not found")

// writeJSON marshals v and writes it with status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// writeValidation reports field errors in the ErrorMessageResponse shape
func writeValidation(w http.ResponseWriter, err error) {
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		config.ErrorStatus("invalid request body", http.StatusBadRequest, w, err)
		return
	}
	zap.S().Debugw("validation failed", "fields", verrs)
	writeJSON(w, http.StatusBadRequest, models.ErrorMessageResponse{
		Response: models.MessageError{Message: "validation failed", Fields: verrs},
	})
}

// pagination reads page and pageSize from the query. Also accepts page_size and
// limit; the repositories clamp out of range values.
func pagination(r *http.Request) (int, int) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size := 0
	for _, key := range []string{"pageSize", "page_size", "limit"} {
		if v, err := strconv.Atoi(q.Get(key)); err == nil {
			size = v
			break
		}
	}
	return page, size
}

// decodeBody reads a JSON object into dst
func decodeBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("malformed json: %w", err)
	}
	return nil
}

// patchField links the json, bson and Go names of one updatable field
type patchField struct {
	goName string
	json   string
	bson   string
}

// patchFields lists the top level tagged fields of t, skipping embedded structs so
// identifiers and timestamps are never patchable
func patchFields(t reflect.Type) []patchField {
	var out []patchField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || f.PkgPath != "" {
			continue
		}
		j := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		b := strings.SplitN(f.Tag.Get("bson"), ",", 2)[0]
		if j == "" || j == "-" || b == "" || b == "-" {
			continue
		}
		out = append(out, patchField{goName: f.Name, json: j, bson: b})
	}
	return out
}

// decodePatch decodes a partial JSON document. It returns the decoded value, the
// bson fields for the keys present in the body and their Go field names for partial
// validation.
func decodePatch[T any](r *http.Request) (*T, bson.M, []string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed json: %w", err)
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, nil, nil, fmt.Errorf("malformed json: %w", err)
	}

	b, err := bson.Marshal(&doc)
	if err != nil {
		return nil, nil, nil, err
	}
	full := bson.M{}
	if err := bson.Unmarshal(b, &full); err != nil {
		return nil, nil, nil, err
	}

	fields := bson.M{}
	var names []string
	for _, f := range patchFields(reflect.TypeOf(doc)) {
		if _, ok := raw[f.json]; !ok {
			continue
		}
		fields[f.bson] = full[f.bson]
		names = append(names, f.goName)
	}
	return &doc, fields, names, nil
}

// keyOf returns the string value of the bson field key in fields, if present
func keyOf(fields bson.M, key string) (string, bool) {
	v, ok := fields[key].(string)
	return v, ok
}
