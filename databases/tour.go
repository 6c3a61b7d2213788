package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const tourName = "tours"

// TourFilter narrows a tour listing. A nil Featured means both.
type TourFilter struct {
	Category string
	Featured *bool
}

// TourDatabase contains the methods to use with the tour database
type TourDatabase interface {
	List(ctx context.Context, page, pageSize int, filter TourFilter) (*models.Page[models.Tour], error)
	All(ctx context.Context) ([]models.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tour, error)
	FindByID(ctx context.Context, id string) (*models.Tour, error)
	Create(ctx context.Context, t *models.Tour) (string, error)
	Update(ctx context.Context, slug string, fields bson.M) (int64, error)
	Delete(ctx context.Context, slug string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type tourDatabase struct {
	*repository[models.Tour, *models.Tour]
}

// NewTourDatabase initializes a new instance of tour database with the provided db connection
func NewTourDatabase(db DatabaseHelper) TourDatabase {
	return &tourDatabase{
		repository: newRepository[models.Tour](db, tourName, bson.D{
			{Key: "featured", Value: -1},
			{Key: "createdAt", Value: -1},
		}),
	}
}

func (t *tourDatabase) List(ctx context.Context, page, pageSize int, filter TourFilter) (*models.Page[models.Tour], error) {
	f := bson.M{}
	if filter.Category != "" {
		f["category"] = filter.Category
	}
	if filter.Featured != nil {
		f["featured"] = *filter.Featured
	}
	return t.list(ctx, page, pageSize, f)
}

func (t *tourDatabase) Update(ctx context.Context, slug string, fields bson.M) (int64, error) {
	return t.update(ctx, bson.M{"slug": slug}, fields)
}

func (t *tourDatabase) Delete(ctx context.Context, slug string) (int64, error) {
	return t.delete(ctx, bson.M{"slug": slug})
}
