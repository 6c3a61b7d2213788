package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const hotelName = "hotels"

// HotelFilter narrows a hotel listing. Destination is a destination id.
type HotelFilter struct {
	Destination string
}

// HotelDatabase contains the methods to use with the hotel database. Hotels are
// edited and deleted by id, looked up publicly by slug.
type HotelDatabase interface {
	List(ctx context.Context, page, pageSize int, filter HotelFilter) (*models.Page[models.Hotel], error)
	FindBySlug(ctx context.Context, slug string) (*models.Hotel, error)
	FindByID(ctx context.Context, id string) (*models.Hotel, error)
	Create(ctx context.Context, h *models.Hotel) (string, error)
	Update(ctx context.Context, id string, fields bson.M) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type hotelDatabase struct {
	*repository[models.Hotel, *models.Hotel]
}

// NewHotelDatabase initializes a new instance of hotel database with the provided db connection
func NewHotelDatabase(db DatabaseHelper) HotelDatabase {
	return &hotelDatabase{
		repository: newRepository[models.Hotel](db, hotelName, bson.D{
			{Key: "priority", Value: 1},
			{Key: "name", Value: 1},
		}),
	}
}

func (h *hotelDatabase) List(ctx context.Context, page, pageSize int, filter HotelFilter) (*models.Page[models.Hotel], error) {
	f := bson.M{}
	if filter.Destination != "" {
		f["destination"] = filter.Destination
	}
	return h.list(ctx, page, pageSize, f)
}

func (h *hotelDatabase) Update(ctx context.Context, id string, fields bson.M) (int64, error) {
	return h.updateByID(ctx, id, fields)
}

func (h *hotelDatabase) Delete(ctx context.Context, id string) (int64, error) {
	return h.deleteByID(ctx, id)
}
