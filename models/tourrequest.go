package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TourRequestStatus is the review state of an enquiry
type TourRequestStatus string

// tour request statuses
const (
	TourRequestPending  TourRequestStatus = "pending"
	TourRequestApproved TourRequestStatus = "approved"
	TourRequestRejected TourRequestStatus = "rejected"
)

// Valid reports whether s is one of the known statuses
func (s TourRequestStatus) Valid() bool {
	switch s {
	case TourRequestPending, TourRequestApproved, TourRequestRejected:
		return true
	}
	return false
}

// TourRequest holds the structure for the tourRequests collection. TourName is copied
// from the tour at submission so the lead stays readable if the tour is deleted.
type TourRequest struct {
	Base           `bson:",inline"`
	FirstName      string              `json:"firstName" bson:"firstName" validate:"required,max=80"`
	LastName       string              `json:"lastName" bson:"lastName" validate:"required,max=80"`
	Email          string              `json:"email" bson:"email" validate:"required,email"`
	Phone          string              `json:"phone" bson:"phone" validate:"omitempty,max=32"`
	Destination    string              `json:"destination" bson:"destination"`
	TravelDate     string              `json:"travelDate" bson:"travelDate"`
	Travelers      int                 `json:"travelers" bson:"travelers" validate:"gte=0,lte=100"`
	Message        string              `json:"message" bson:"message" validate:"max=5000"`
	TourID         *primitive.ObjectID `json:"tourId" bson:"tourId"`
	TourName       string              `json:"tourName" bson:"tourName"`
	ExperienceIDs  []string            `json:"experienceIds,omitempty" bson:"experienceIds,omitempty"`
	DestinationIDs []string            `json:"destinationIds,omitempty" bson:"destinationIds,omitempty"`
	HotelIDs       []string            `json:"hotelIds,omitempty" bson:"hotelIds,omitempty"`
	Status         TourRequestStatus   `json:"status" bson:"status"`
}

// FullName joins the first and last name for display
func (t TourRequest) FullName() string {
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}
