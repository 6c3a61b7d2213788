package models

// Role is the access level of a back-office user
type Role string

// user roles
const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// User holds the structure for the users collection. PasswordHash is a bcrypt hash and
// is never serialized to JSON.
type User struct {
	Base         `bson:",inline"`
	Email        string `json:"email" bson:"email"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         Role   `json:"role" bson:"role"`
}

// CreateUserRequest is the admin payload for creating a back-office user
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=40,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     Role   `json:"role" validate:"required,oneof=admin guest"`
}

// UpdateUserRequest is the admin payload for editing a user, empty fields are left alone
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=40,alphanum"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     Role   `json:"role" validate:"omitempty,oneof=admin guest"`
}
