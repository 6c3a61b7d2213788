package databases

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const userName = "users"

// UserFilter narrows a user listing
type UserFilter struct {
	Role models.Role
}

// UserDatabase contains the methods to use with the user database. Emails are
// stored lower case.
type UserDatabase interface {
	List(ctx context.Context, page, pageSize int, filter UserFilter) (*models.Page[models.User], error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (string, error)
	Update(ctx context.Context, id string, fields bson.M) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type userDatabase struct {
	*repository[models.User, *models.User]
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		repository: newRepository[models.User](db, userName, bson.D{
			{Key: "createdAt", Value: -1},
		}),
	}
}

func (u *userDatabase) List(ctx context.Context, page, pageSize int, filter UserFilter) (*models.Page[models.User], error) {
	f := bson.M{}
	if filter.Role != "" {
		f["role"] = string(filter.Role)
	}
	return u.list(ctx, page, pageSize, f)
}

func (u *userDatabase) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

func (u *userDatabase) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return u.findOne(ctx, bson.M{"username": username})
}

func (u *userDatabase) Create(ctx context.Context, user *models.User) (string, error) {
	user.Email = normalizeEmail(user.Email)
	return u.repository.Create(ctx, user)
}

func (u *userDatabase) Update(ctx context.Context, id string, fields bson.M) (int64, error) {
	return u.updateByID(ctx, id, fields)
}

func (u *userDatabase) Delete(ctx context.Context, id string) (int64, error) {
	return u.deleteByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
