package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shaj13/go-guardian/auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// User exists for dependency injection
type User struct {
	DB        databases.UserDatabase
	validator *Validator
}

// NewUser wires the user handlers to db
func NewUser(db databases.UserDatabase, v *Validator) User {
	return User{DB: db, validator: v}
}

// UsersHandler returns a page of back-office users, optionally by role
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	role := models.Role(r.URL.Query().Get("role"))
	if role != "" && role != models.RoleAdmin && role != models.RoleGuest {
		config.ErrorStatus("invalid role", http.StatusBadRequest, w, errors.New(string(role)))
		return
	}
	p, err := u.DB.List(r.Context(), page, size, databases.UserFilter{Role: role})
	respondPage(w, "users", p, err)
}

// UserHandler returns a user by id
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := u.DB.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		config.ErrorStatus("failed to get user", http.StatusInternalServerError, w, err)
		return
	}
	if user == nil {
		config.ErrorStatus("user not found", http.StatusNotFound, w, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUserHandler creates a user, 409 when the email or username is taken
func (u User) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := u.validator.Struct(&req); err != nil {
		writeValidation(w, err)
		return
	}

	existing, err := u.DB.FindByEmail(r.Context(), req.Email)
	if err != nil {
		config.ErrorStatus("failed to check email", http.StatusInternalServerError, w, err)
		return
	}
	if existing != nil {
		config.ErrorStatus("email already in use", http.StatusConflict, w, errors.New(req.Email))
		return
	}
	if ok := u.usernameFree(w, r, req.Username, ""); !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if _, err := u.DB.Create(r.Context(), &user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}
	zap.S().Infow("user created", "id", user.HexID(), "role", user.Role)
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUserHandler changes the username, password or role of a user
func (u User) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req models.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if err := u.validator.Struct(&req); err != nil {
		writeValidation(w, err)
		return
	}

	fields := bson.M{}
	if req.Username != "" {
		if ok := u.usernameFree(w, r, req.Username, id); !ok {
			return
		}
		fields["username"] = req.Username
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
			return
		}
		fields["passwordHash"] = string(hash)
	}
	if req.Role != "" {
		fields["role"] = string(req.Role)
	}
	if len(fields) == 0 {
		config.ErrorStatus("nothing to update", http.StatusBadRequest, w, errors.New("empty body"))
		return
	}

	n, err := u.DB.Update(r.Context(), id, fields)
	if err != nil {
		config.ErrorStatus("failed to update user", http.StatusInternalServerError, w, err)
		return
	}
	if n == 0 {
		config.ErrorStatus("user not found", http.StatusNotFound, w, errNotFound)
		return
	}
	u.UserHandler(w, r)
}

// DeleteUserHandler removes a user. Admins cannot delete their own account.
func (u User) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if info := auth.User(r); info != nil && info.ID() == id {
		config.ErrorStatus("cannot delete the signed in user", http.StatusBadRequest, w, errors.New(id))
		return
	}
	n, err := u.DB.Delete(r.Context(), id)
	if err != nil {
		config.ErrorStatus("failed to delete user", http.StatusInternalServerError, w, err)
		return
	}
	if n == 0 {
		config.ErrorStatus("user not found", http.StatusNotFound, w, errNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// usernameFree writes a 409 and returns false when another user has username
func (u User) usernameFree(w http.ResponseWriter, r *http.Request, username, except string) bool {
	existing, err := u.DB.FindByUsername(r.Context(), username)
	if err != nil {
		config.ErrorStatus("failed to check username", http.StatusInternalServerError, w, err)
		return false
	}
	if existing != nil && existing.HexID() != except {
		config.ErrorStatus("username already in use", http.StatusConflict, w, errors.New(username))
		return false
	}
	return true
}
