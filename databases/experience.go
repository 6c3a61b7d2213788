package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const experienceName = "experiences"

// ExperienceFilter narrows an experience listing
type ExperienceFilter struct {
	Category        string
	DestinationSlug string
}

// ExperienceDatabase contains the methods to use with the experience database
type ExperienceDatabase interface {
	List(ctx context.Context, page, pageSize int, filter ExperienceFilter) (*models.Page[models.Experience], error)
	FindBySlug(ctx context.Context, slug string) (*models.Experience, error)
	FindByID(ctx context.Context, id string) (*models.Experience, error)
	Create(ctx context.Context, e *models.Experience) (string, error)
	Update(ctx context.Context, slug string, fields bson.M) (int64, error)
	Delete(ctx context.Context, slug string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type experienceDatabase struct {
	*repository[models.Experience, *models.Experience]
}

// NewExperienceDatabase initializes a new instance of experience database with the provided db connection
func NewExperienceDatabase(db DatabaseHelper) ExperienceDatabase {
	return &experienceDatabase{
		repository: newRepository[models.Experience](db, experienceName, bson.D{
			{Key: "priority", Value: 1},
			{Key: "title", Value: 1},
		}),
	}
}

func (e *experienceDatabase) List(ctx context.Context, page, pageSize int, filter ExperienceFilter) (*models.Page[models.Experience], error) {
	f := bson.M{}
	if filter.Category != "" {
		f["category"] = filter.Category
	}
	if filter.DestinationSlug != "" {
		f["destinationSlug"] = filter.DestinationSlug
	}
	return e.list(ctx, page, pageSize, f)
}

func (e *experienceDatabase) Update(ctx context.Context, slug string, fields bson.M) (int64, error) {
	return e.update(ctx, bson.M{"slug": slug}, fields)
}

func (e *experienceDatabase) Delete(ctx context.Context, slug string) (int64, error) {
	return e.delete(ctx, bson.M{"slug": slug})
}
