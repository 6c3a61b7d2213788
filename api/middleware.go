package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// credentialCacheTTL bounds how long a validated credential is trusted without
// going back to the user store or re-parsing the token
const credentialCacheTTL = 5 * time.Minute

var errInvalidCredentials = errors.New("invalid credentials")

// Authenticator issues and verifies admin credentials. Requests authenticate either
// with basic auth (email or username plus password) or with a bearer JWT obtained
// from CreateToken.
type Authenticator struct {
	DB     databases.UserDatabase
	secret []byte
	ttl    time.Duration

	authenticator auth.Authenticator
}

// NewAuthenticator sets up the go-guardian basic and bearer strategies
func NewAuthenticator(users databases.UserDatabase, secret string, ttl time.Duration) *Authenticator {
	a := &Authenticator{
		DB:            users,
		secret:        []byte(secret),
		ttl:           ttl,
		authenticator: auth.New(),
	}
	cache := store.NewFIFO(context.Background(), credentialCacheTTL)
	basicStrategy := basic.New(a.ValidateUser, cache)
	tokenStrategy := bearer.New(a.ValidateToken, cache)

	a.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	a.authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
	return a
}

// Middleware rejects unauthenticated requests and stores the user on the request
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Warnw("unauthorized",
				"url", r.URL.String())
			writeAuthError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		zap.S().Debugw("user authenticated", "user", user.UserName())
		next.ServeHTTP(w, auth.RequestWithUser(user, r))
	})
}

// RequireRole only lets through users that hold one of roles. It must run after
// Middleware.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.User(r)
			if user == nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, g := range user.Groups() {
				for _, role := range roles {
					if g == string(role) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			zap.S().Warnw("forbidden", "user", user.UserName(), "url", r.URL.String())
			writeAuthError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(fmt.Sprintf(`{"response": %q}`, msg)))
}

// TokenResponse is returned by CreateToken
type TokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	ID        string      `json:"_id"`
	Role      models.Role `json:"role"`
}

// CreateToken exchanges basic auth credentials for a signed JWT
func (a *Authenticator) CreateToken(w http.ResponseWriter, r *http.Request) {
	login, password, ok := r.BasicAuth()
	if !ok {
		config.ErrorStatus("basic auth failed", http.StatusUnauthorized, w, errInvalidCredentials)
		return
	}

	user, err := a.lookup(r.Context(), login)
	if err != nil {
		config.ErrorStatus("failed to get user", http.StatusInternalServerError, w, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		config.ErrorStatus("basic auth failed", http.StatusUnauthorized, w, errInvalidCredentials)
		return
	}

	token, expiresAt, err := a.IssueToken(*user)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(TokenResponse{Token: token, ExpiresAt: expiresAt, ID: user.ID.Hex(), Role: user.Role})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// IssueToken signs an HS256 JWT for user
func (a *Authenticator) IssueToken(user models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(a.ttl)
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateUser checks basic auth credentials against the user store
func (a *Authenticator) ValidateUser(ctx context.Context, r *http.Request, login, password string) (auth.Info, error) {
	user, err := a.lookup(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return auth.NewDefaultUser(user.Email, user.ID.Hex(), []string{string(user.Role)}, nil), nil
}

// ValidateToken verifies a JWT issued by IssueToken
func (a *Authenticator) ValidateToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidCredentials
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errInvalidCredentials
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return auth.NewDefaultUser(email, sub, []string{role}, nil), nil
}

// lookup finds a user by email when login looks like one, by username otherwise
func (a *Authenticator) lookup(ctx context.Context, login string) (*models.User, error) {
	if strings.Contains(login, "@") {
		return a.DB.FindByEmail(ctx, login)
	}
	return a.DB.FindByUsername(ctx, login)
}
