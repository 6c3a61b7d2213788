package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const tourRequestName = "tourRequests"

// ErrInvalidStatus is returned when a tour request status is not one of the known values
var ErrInvalidStatus = errors.New("invalid tour request status")

// TourRequestFilter narrows a tour request listing
type TourRequestFilter struct {
	Status models.TourRequestStatus
}

// TourRequestDatabase contains the methods to use with the tour request database
type TourRequestDatabase interface {
	List(ctx context.Context, page, pageSize int, filter TourRequestFilter) (*models.Page[models.TourRequest], error)
	FindByID(ctx context.Context, id string) (*models.TourRequest, error)
	Submit(ctx context.Context, tr *models.TourRequest) (string, error)
	Create(ctx context.Context, tr *models.TourRequest) (string, error)
	UpdateStatus(ctx context.Context, id string, status models.TourRequestStatus) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type tourRequestDatabase struct {
	*repository[models.TourRequest, *models.TourRequest]
	tours TourDatabase
}

// NewTourRequestDatabase initializes a new instance of tour request database. tours is
// used to copy the tour title onto new requests.
func NewTourRequestDatabase(db DatabaseHelper, tours TourDatabase) TourRequestDatabase {
	return &tourRequestDatabase{
		repository: newRepository[models.TourRequest](db, tourRequestName, bson.D{
			{Key: "createdAt", Value: -1},
		}),
		tours: tours,
	}
}

func (t *tourRequestDatabase) List(ctx context.Context, page, pageSize int, filter TourRequestFilter) (*models.Page[models.TourRequest], error) {
	f := bson.M{}
	if filter.Status != "" {
		f["status"] = string(filter.Status)
	}
	return t.list(ctx, page, pageSize, f)
}

// Submit stores a new enquiry as pending. When a tour is referenced its current
// title is copied into TourName; an unknown tour drops the reference.
func (t *tourRequestDatabase) Submit(ctx context.Context, tr *models.TourRequest) (string, error) {
	tr.Status = models.TourRequestPending
	tr.TourName = ""
	if tr.TourID != nil {
		tour, err := t.tours.FindByID(ctx, tr.TourID.Hex())
		if err != nil {
			return "", fmt.Errorf("failed to look up requested tour: %w", err)
		}
		if tour == nil {
			tr.TourID = nil
		} else {
			tr.TourName = tour.Title
		}
	}
	return t.Create(ctx, tr)
}

// UpdateStatus sets the review status. Any known status may replace any other so
// admins can reopen or reverse a decision.
func (t *tourRequestDatabase) UpdateStatus(ctx context.Context, id string, status models.TourRequestStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return t.updateByID(ctx, id, bson.M{"status": string(status)})
}

func (t *tourRequestDatabase) Delete(ctx context.Context, id string) (int64, error) {
	return t.deleteByID(ctx, id)
}
