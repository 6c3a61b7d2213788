package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
	"github.com/druktrails/bhutan-tourism-api/notifications"
	templates "github.com/druktrails/bhutan-tourism-api/templates/html"
)

// enquiry outcomes reported to the EnquiryObserver
const (
	EnquiryAccepted = "accepted"
	EnquiryInvalid  = "invalid"
	EnquiryLimited  = "limited"
	EnquiryFailed   = "failed"
)

// notifyTimeout bounds the admin notification send after a submission
const notifyTimeout = 30 * time.Second

// EnquiryObserver records the outcome of public tour request submissions
type EnquiryObserver interface {
	ObserveEnquiry(outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveEnquiry(string) {}

// TourRequest exists for dependency injection
type TourRequest struct {
	DB          databases.TourRequestDatabase
	Priority    databases.PriorityDatabase
	Mailer      notifications.Mailer
	Metrics     EnquiryObserver
	NotifyEmail string
	AdminURL    string
	validator   *Validator
}

// NewTourRequest wires the tour request handlers. mailer may be nil and notifyEmail
// empty, in which case no notification is sent.
func NewTourRequest(db databases.TourRequestDatabase, priority databases.PriorityDatabase, mailer notifications.Mailer, metrics EnquiryObserver, notifyEmail, adminURL string, v *Validator) TourRequest {
	return TourRequest{
		DB:          db,
		Priority:    priority,
		Mailer:      mailer,
		Metrics:     metrics,
		NotifyEmail: notifyEmail,
		AdminURL:    adminURL,
		validator:   v,
	}
}

// tourRequestPayload is the public enquiry form
type tourRequestPayload struct {
	FirstName      string   `json:"firstName" validate:"required,max=80"`
	LastName       string   `json:"lastName" validate:"required,max=80"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"omitempty,max=32"`
	Destination    string   `json:"destination" validate:"max=120"`
	TravelDate     string   `json:"travelDate" validate:"max=40"`
	Travelers      int      `json:"travelers" validate:"gte=0,lte=100"`
	Message        string   `json:"message" validate:"max=5000"`
	TourID         string   `json:"tourId" validate:"omitempty,mongodb"`
	ExperienceIDs  []string `json:"experienceIds" validate:"omitempty,max=50,dive,mongodb"`
	DestinationIDs []string `json:"destinationIds" validate:"omitempty,max=50,dive,mongodb"`
	HotelIDs       []string `json:"hotelIds" validate:"omitempty,max=50,dive,mongodb"`
}

func (p tourRequestPayload) toModel() models.TourRequest {
	tr := models.TourRequest{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		Destination:    p.Destination,
		TravelDate:     p.TravelDate,
		Travelers:      p.Travelers,
		Message:        p.Message,
		ExperienceIDs:  p.ExperienceIDs,
		DestinationIDs: p.DestinationIDs,
		HotelIDs:       p.HotelIDs,
	}
	if oid, err := primitive.ObjectIDFromHex(p.TourID); err == nil {
		tr.TourID = &oid
	}
	return tr
}

func (t TourRequest) observer() EnquiryObserver {
	if t.Metrics == nil {
		return noopObserver{}
	}
	return t.Metrics
}

// SubmitTourRequestHandler stores a public enquiry as pending, raises the priority
// of everything it references and notifies the admins in the background
func (t TourRequest) SubmitTourRequestHandler(w http.ResponseWriter, r *http.Request) {
	var p tourRequestPayload
	if err := decodeBody(r, &p); err != nil {
		t.observer().ObserveEnquiry(EnquiryInvalid)
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := t.validator.Struct(&p); err != nil {
		t.observer().ObserveEnquiry(EnquiryInvalid)
		writeValidation(w, err)
		return
	}

	tr := p.toModel()
	if _, err := t.DB.Submit(r.Context(), &tr); err != nil {
		t.observer().ObserveEnquiry(EnquiryFailed)
		config.ErrorStatus("failed to submit tour request", http.StatusInternalServerError, w, err)
		return
	}
	t.observer().ObserveEnquiry(EnquiryAccepted)

	targets := databases.PriorityTargets{
		Experiences:  tr.ExperienceIDs,
		Destinations: tr.DestinationIDs,
		Hotels:       tr.HotelIDs,
	}
	if tr.TourID != nil {
		targets.Tours = []string{tr.TourID.Hex()}
	}
	// the request is stored, so a client hanging up must not cancel the ranking
	t.Priority.Bump(context.WithoutCancel(r.Context()), targets)

	zap.S().Infow("tour request submitted", "id", tr.HexID(), "tour", tr.TourName)
	go t.notify(tr)

	writeJSON(w, http.StatusCreated, tr)
}

func (t TourRequest) notify(tr models.TourRequest) {
	if t.Mailer == nil || t.NotifyEmail == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	subject, html, plain := templates.RenderTourRequestNotification(tr, t.AdminURL)
	err := t.Mailer.Send(ctx, notifications.Message{
		ToEmail:   t.NotifyEmail,
		Subject:   subject,
		HTML:      html,
		PlainText: plain,
	})
	if err != nil {
		zap.S().Errorw("failed to send tour request notification", "id", tr.HexID(), "error", err)
	}

	subject, html, plain = templates.RenderTourRequestAcknowledgement(tr)
	err = t.Mailer.Send(ctx, notifications.Message{
		ToEmail:   tr.Email,
		ToName:    tr.FullName(),
		Subject:   subject,
		HTML:      html,
		PlainText: plain,
	})
	if err != nil {
		zap.S().Errorw("failed to send tour request acknowledgement", "id", tr.HexID(), "error", err)
	}
}

// TourRequestsHandler returns a page of tour requests, newest first, optionally by status
func (t TourRequest) TourRequestsHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	status := models.TourRequestStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		config.ErrorStatus("invalid status", http.StatusBadRequest, w, databases.ErrInvalidStatus)
		return
	}
	p, err := t.DB.List(r.Context(), page, size, databases.TourRequestFilter{Status: status})
	respondPage(w, "tour requests", p, err)
}

// TourRequestByIDHandler returns one tour request
func (t TourRequest) TourRequestByIDHandler(w http.ResponseWriter, r *http.Request) {
	tr, err := t.DB.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("failed to get tour request", http.StatusInternalServerError, w, err)
		return
	}
	if tr == nil {
		config.ErrorStatus("tour request not found", http.StatusNotFound, w, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

type statusPayload struct {
	Status models.TourRequestStatus `json:"status"`
}

// UpdateTourRequestStatusHandler moves a tour request to any known status
func (t TourRequest) UpdateTourRequestStatusHandler(w http.ResponseWriter, r *http.Request) {
	var p statusPayload
	if err := decodeBody(r, &p); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	id := mux.Vars(r)["id"]
	n, err := t.DB.UpdateStatus(r.Context(), id, p.Status)
	if err != nil {
		if errors.Is(err, databases.ErrInvalidStatus) {
			config.ErrorStatus("invalid status", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to update tour request", http.StatusInternalServerError, w, err)
		return
	}
	if n == 0 {
		config.ErrorStatus("tour request not found", http.StatusNotFound, w, errNotFound)
		return
	}
	zap.S().Infow("tour request status changed", "id", id, "status", p.Status)
	t.TourRequestByIDHandler(w, r)
}

// DeleteTourRequestHandler removes a tour request
func (t TourRequest) DeleteTourRequestHandler(w http.ResponseWriter, r *http.Request) {
	n, err := t.DB.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("failed to delete tour request", http.StatusInternalServerError, w, err)
		return
	}
	if n == 0 {
		config.ErrorStatus("tour request not found", http.StatusNotFound, w, errNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
