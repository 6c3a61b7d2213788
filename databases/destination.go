package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const destinationName = "destinations"

// DestinationFilter narrows a destination listing
type DestinationFilter struct {
	Region string
}

// DestinationDatabase contains the methods to use with the destination database
type DestinationDatabase interface {
	List(ctx context.Context, page, pageSize int, filter DestinationFilter) (*models.Page[models.Destination], error)
	All(ctx context.Context) ([]models.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*models.Destination, error)
	FindByID(ctx context.Context, id string) (*models.Destination, error)
	Create(ctx context.Context, d *models.Destination) (string, error)
	Update(ctx context.Context, slug string, fields bson.M) (int64, error)
	Delete(ctx context.Context, slug string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type destinationDatabase struct {
	*repository[models.Destination, *models.Destination]
}

// NewDestinationDatabase initializes a new instance of destination database with the provided db connection
func NewDestinationDatabase(db DatabaseHelper) DestinationDatabase {
	return &destinationDatabase{
		repository: newRepository[models.Destination](db, destinationName, bson.D{
			{Key: "priority", Value: 1},
			{Key: "name", Value: 1},
		}),
	}
}

func (d *destinationDatabase) List(ctx context.Context, page, pageSize int, filter DestinationFilter) (*models.Page[models.Destination], error) {
	f := bson.M{}
	if filter.Region != "" {
		f["region"] = filter.Region
	}
	return d.list(ctx, page, pageSize, f)
}

func (d *destinationDatabase) Update(ctx context.Context, slug string, fields bson.M) (int64, error) {
	return d.update(ctx, bson.M{"slug": slug}, fields)
}

func (d *destinationDatabase) Delete(ctx context.Context, slug string) (int64, error) {
	return d.delete(ctx, bson.M{"slug": slug})
}
