package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const experienceTypeName = "experienceTypes"

// ExperienceTypeDatabase contains the methods to use with the experience type database
type ExperienceTypeDatabase interface {
	List(ctx context.Context, page, pageSize int) (*models.Page[models.ExperienceType], error)
	All(ctx context.Context) ([]models.ExperienceType, error)
	FindBySlug(ctx context.Context, slug string) (*models.ExperienceType, error)
	FindByID(ctx context.Context, id string) (*models.ExperienceType, error)
	Create(ctx context.Context, et *models.ExperienceType) (string, error)
	Update(ctx context.Context, slug string, fields bson.M) (int64, error)
	Delete(ctx context.Context, slug string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type experienceTypeDatabase struct {
	*repository[models.ExperienceType, *models.ExperienceType]
}

// NewExperienceTypeDatabase initializes a new instance of experience type database with the provided db connection
func NewExperienceTypeDatabase(db DatabaseHelper) ExperienceTypeDatabase {
	return &experienceTypeDatabase{
		repository: newRepository[models.ExperienceType](db, experienceTypeName, bson.D{
			{Key: "displayOrder", Value: 1},
			{Key: "title", Value: 1},
		}),
	}
}

func (e *experienceTypeDatabase) List(ctx context.Context, page, pageSize int) (*models.Page[models.ExperienceType], error) {
	return e.list(ctx, page, pageSize, bson.M{})
}

func (e *experienceTypeDatabase) Update(ctx context.Context, slug string, fields bson.M) (int64, error) {
	return e.update(ctx, bson.M{"slug": slug}, fields)
}

func (e *experienceTypeDatabase) Delete(ctx context.Context, slug string) (int64, error) {
	return e.delete(ctx, bson.M{"slug": slug})
}
