package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/api/handlers"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/databases/memdb"
	"github.com/druktrails/bhutan-tourism-api/models"
)

func enquiry(extra map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{
		"firstName":  "Sonam",
		"lastName":   "Wangmo",
		"email":      "sonam@example.com",
		"travelDate": "2027-04-12",
		"travelers":  2,
		"message":    "Looking for a quiet itinerary in spring.",
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

func TestSubmitTourRequestHandler(t *testing.T) {
	env := newTestEnv(t)
	tour := decodeInto[models.Tour](t, env.do(t, http.MethodGet, "/api/v1/tours/druk-path-trek", nil, ""))
	exp := decodeInto[models.Experience](t, env.do(t, http.MethodGet, "/api/v1/experiences/tigers-nest-hike", nil, ""))
	hotel := decodeInto[models.Hotel](t, env.do(t, http.MethodGet, "/api/v1/hotels/zhiwa-ling-heritage", nil, ""))

	rr := env.do(t, http.MethodPost, "/api/v1/tour-requests", enquiry(map[string]interface{}{
		"tourId":        tour.HexID(),
		"experienceIds": []string{exp.HexID(), exp.HexID()},
		"hotelIds":      []string{hotel.HexID()},
		"status":        "approved",
	}), "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeInto[models.TourRequest](t, rr)

	assert.Equal(t, models.TourRequestPending, created.Status)
	assert.Equal(t, "Druk Path Trek", created.TourName)
	require.NotNil(t, created.TourID)
	assert.Equal(t, tour.HexID(), created.TourID.Hex())

	after := decodeInto[models.Tour](t, env.do(t, http.MethodGet, "/api/v1/tours/druk-path-trek", nil, ""))
	assert.Equal(t, tour.Priority+1, after.Priority)
	afterExp := decodeInto[models.Experience](t, env.do(t, http.MethodGet, "/api/v1/experiences/tigers-nest-hike", nil, ""))
	assert.Equal(t, exp.Priority+1, afterExp.Priority, "duplicate ids count once")
	afterHotel := decodeInto[models.Hotel](t, env.do(t, http.MethodGet, "/api/v1/hotels/zhiwa-ling-heritage", nil, ""))
	assert.Equal(t, hotel.Priority+1, afterHotel.Priority)

	require.Eventually(t, func() bool { return len(env.mailer.messages()) == 2 }, time.Second, 10*time.Millisecond)
	msg := env.mailer.messages()[0]
	assert.Equal(t, "ops@druktrails.bt", msg.ToEmail)
	assert.Equal(t, "New tour request from Sonam Wangmo for Druk Path Trek", msg.Subject)
	assert.Contains(t, msg.HTML, "https://cms.druktrails.bt/admin/tour-requests")

	ack := env.mailer.messages()[1]
	assert.Equal(t, created.Email, ack.ToEmail)
	assert.Equal(t, "Kuzuzangpo Sonam, we received your enquiry", ack.Subject)
	assert.Contains(t, ack.PlainText, "Druk Path Trek")
}

func TestSubmitTourRequestHandlerUnknownTour(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/v1/tour-requests", enquiry(map[string]interface{}{
		"tourId": "5fc51e36c72ff10004dca381",
	}), "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeInto[models.TourRequest](t, rr)

	assert.Nil(t, created.TourID)
	assert.Empty(t, created.TourName)
}

func TestSubmitTourRequestHandlerMailFailureStillAccepts(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("sendgrid down")

	rr := env.do(t, http.MethodPost, "/api/v1/tour-requests", enquiry(nil), "")

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Eventually(t, func() bool { return len(env.mailer.messages()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestSubmitTourRequestHandlerValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"missing first name", enquiry(map[string]interface{}{"firstName": ""}), "firstName"},
		{"bad email", enquiry(map[string]interface{}{"email": "sonam-at-example"}), "email"},
		{"bad tour id", enquiry(map[string]interface{}{"tourId": "druk-path-trek"}), "tourId"},
		{"bad experience id", enquiry(map[string]interface{}{"experienceIds": []string{"nope"}}), "experienceIds[0]"},
		{"too many travelers", enquiry(map[string]interface{}{"travelers": 500}), "travelers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/v1/tour-requests", tt.body, "")
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			resp := decodeInto[models.ErrorMessageResponse](t, rr)
			assert.Contains(t, resp.Response.Fields, tt.field)
		})
	}

	rr := env.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Contains(t, rr.Body.String(), `tourism_tour_requests_total{outcome="invalid"} 5`)
	assert.Empty(t, env.mailer.messages())
}

func TestSubmitTourRequestHandlerRateLimited(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.EnquiryRatePerMinute = 1 })

	rr := env.do(t, http.MethodPost, "/api/v1/tour-requests", enquiry(nil), "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/v1/tour-requests", enquiry(nil), "")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	out := env.do(t, http.MethodGet, "/metrics", nil, "").Body.String()
	assert.Contains(t, out, `tourism_tour_requests_total{outcome="accepted"} 1`)
	assert.Contains(t, out, `tourism_tour_requests_total{outcome="limited"} 1`)
}

func TestTourRequestsHandlerByStatus(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/admin/tour-requests?status=pending", nil, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(3), decodeInto[models.Page[models.TourRequest]](t, rr).TotalItems)

	rr = env.do(t, http.MethodGet, "/api/v1/admin/tour-requests?status=approved", nil, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(0), decodeInto[models.Page[models.TourRequest]](t, rr).TotalItems)

	rr = env.do(t, http.MethodGet, "/api/v1/admin/tour-requests?status=booked", nil, env.admin.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateTourRequestStatusHandler(t *testing.T) {
	env := newTestEnv(t)
	page, err := databases.NewTourRequestDatabase(env.db, databases.NewTourDatabase(env.db)).
		List(context.Background(), 1, 10, databases.TourRequestFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	id := page.Items[0].HexID()
	path := "/api/v1/admin/tour-requests/" + id + "/status"

	rr := env.do(t, http.MethodPatch, path, map[string]string{"status": "approved"}, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, models.TourRequestApproved, decodeInto[models.TourRequest](t, rr).Status)

	rr = env.do(t, http.MethodPatch, path, map[string]string{"status": "pending"}, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code, "decisions can be reopened")
	assert.Equal(t, models.TourRequestPending, decodeInto[models.TourRequest](t, rr).Status)

	rr = env.do(t, http.MethodPatch, path, map[string]string{"status": "booked"}, env.admin.Token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, strings.HasPrefix(responseMessage(t, rr), "invalid status"))

	rr = env.do(t, http.MethodPatch, "/api/v1/admin/tour-requests/5fc51e36c72ff10004dca381/status", map[string]string{"status": "approved"}, env.admin.Token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTourRequestByIDAndDeleteHandlers(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodPost, "/api/v1/tour-requests", enquiry(nil), "")
	require.Equal(t, http.StatusCreated, rr.Code)
	id := decodeInto[models.TourRequest](t, rr).HexID()

	rr = env.do(t, http.MethodGet, "/api/v1/admin/tour-requests/"+id, nil, env.admin.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "sonam@example.com", decodeInto[models.TourRequest](t, rr).Email)

	rr = env.do(t, http.MethodGet, "/api/v1/admin/tour-requests/"+id, nil, env.guest.Token)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/admin/tour-requests/"+id, nil, env.admin.Token).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/admin/tour-requests/"+id, nil, env.admin.Token).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/admin/tour-requests/"+id, nil, env.admin.Token).Code)
}

type ctxRecordingPriority struct {
	mu   sync.Mutex
	errs []error
}

func (p *ctxRecordingPriority) Bump(ctx context.Context, targets databases.PriorityTargets) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, ctx.Err())
}

func TestSubmitTourRequestHandlerBumpOutlivesClient(t *testing.T) {
	db := memdb.New()
	priority := &ctxRecordingPriority{}
	h := handlers.NewTourRequest(
		databases.NewTourRequestDatabase(db, databases.NewTourDatabase(db)),
		priority, nil, nil, "", "", handlers.NewValidator(),
	)

	b, err := json.Marshal(enquiry(nil))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tour-requests", bytes.NewReader(b)).WithContext(ctx)
	rr := httptest.NewRecorder()

	h.SubmitTourRequestHandler(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, priority.errs, 1)
	assert.NoError(t, priority.errs[0])
}
