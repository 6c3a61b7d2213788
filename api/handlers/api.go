package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/api"
	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
	"github.com/druktrails/bhutan-tourism-api/notifications"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Mailer  notifications.Mailer
	Metrics *api.Metrics

	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// NewApp builds an App with its routes over an already connected database
func NewApp(conf config.Config, db databases.DatabaseHelper, mailer notifications.Mailer) *App {
	a := &App{Config: conf, Mailer: mailer, dbHelper: db}
	a.initializeRoutes()
	return a
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Metrics == nil {
		a.Metrics = api.NewMetrics()
	}
	v := NewValidator()
	authn := api.NewAuthenticator(databases.NewUserDatabase(a.dbHelper), a.Config.JWTSecret, a.Config.JWTTTL)

	tours := databases.NewTourDatabase(a.dbHelper)
	d := NewDestination(databases.NewDestinationDatabase(a.dbHelper), v)
	e := NewExperience(databases.NewExperienceDatabase(a.dbHelper), v)
	et := NewExperienceType(databases.NewExperienceTypeDatabase(a.dbHelper), v)
	h := NewHotel(databases.NewHotelDatabase(a.dbHelper), v)
	t := NewTour(tours, v)
	tr := NewTourRequest(
		databases.NewTourRequestDatabase(a.dbHelper, tours),
		databases.NewPriorityDatabase(a.dbHelper),
		a.Mailer,
		a.Metrics,
		a.Config.AdminNotifyEmail,
		AdminURL(a.Config.BaseURL, "/tour-requests"),
		v,
	)
	about := About{DB: databases.NewAboutDatabase(a.dbHelper)}
	u := NewUser(databases.NewUserDatabase(a.dbHelper), v)
	cloudinaryHandler := CloudinaryHandler{Config: a.Config.Cloudinary}

	limiter := api.NewRateLimiter(a.Config.EnquiryRatePerMinute)
	limiter.TrustProxy = a.Config.TrustProxy
	limiter.OnLimited = func(r *http.Request) {
		a.Metrics.ObserveEnquiry(EnquiryLimited)
	}

	r := mux.NewRouter()
	r.Use(a.Metrics.Middleware, api.TimeoutMiddleware(a.Config.RequestTimeout))

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", a.Metrics.Handler()).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()

	apiV1.HandleFunc("/auth/token", authn.CreateToken).Methods("POST")

	apiV1.HandleFunc("/destinations", d.DestinationsHandler).Methods("GET")
	apiV1.HandleFunc("/destinations/all", d.AllDestinationsHandler).Methods("GET")
	apiV1.HandleFunc("/destinations/{slug}", d.DestinationBySlugHandler).Methods("GET")

	apiV1.HandleFunc("/experiences", e.ExperiencesHandler).Methods("GET")
	apiV1.HandleFunc("/experiences/{slug}", e.ExperienceBySlugHandler).Methods("GET")

	apiV1.HandleFunc("/experience-types", et.ExperienceTypesHandler).Methods("GET")
	apiV1.HandleFunc("/experience-types/all", et.AllExperienceTypesHandler).Methods("GET")
	apiV1.HandleFunc("/experience-types/{slug}", et.ExperienceTypeBySlugHandler).Methods("GET")

	apiV1.HandleFunc("/hotels", h.HotelsHandler).Methods("GET")
	apiV1.HandleFunc("/hotels/{slug}", h.HotelBySlugHandler).Methods("GET")

	apiV1.HandleFunc("/tours", t.ToursHandler).Methods("GET")
	apiV1.HandleFunc("/tours/all", t.AllToursHandler).Methods("GET")
	apiV1.HandleFunc("/tours/{slug}", t.TourBySlugHandler).Methods("GET")

	apiV1.HandleFunc("/about", about.AboutHandler).Methods("GET")

	apiV1.Handle("/tour-requests", limiter.Limit(http.HandlerFunc(tr.SubmitTourRequestHandler))).Methods("POST")

	admin := apiV1.PathPrefix("/admin").Subrouter()
	admin.Use(authn.Middleware, api.RequireRole(models.RoleAdmin))

	admin.HandleFunc("/destinations", d.CreateDestinationHandler).Methods("POST")
	admin.HandleFunc("/destinations/{id}", d.DestinationByIDHandler).Methods("GET")
	admin.HandleFunc("/destinations/{slug}", d.UpdateDestinationHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/destinations/{slug}", d.DeleteDestinationHandler).Methods("DELETE")

	admin.HandleFunc("/experiences", e.CreateExperienceHandler).Methods("POST")
	admin.HandleFunc("/experiences/{id}", e.ExperienceByIDHandler).Methods("GET")
	admin.HandleFunc("/experiences/{slug}", e.UpdateExperienceHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/experiences/{slug}", e.DeleteExperienceHandler).Methods("DELETE")

	admin.HandleFunc("/experience-types", et.CreateExperienceTypeHandler).Methods("POST")
	admin.HandleFunc("/experience-types/{id}", et.ExperienceTypeByIDHandler).Methods("GET")
	admin.HandleFunc("/experience-types/{slug}", et.UpdateExperienceTypeHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/experience-types/{slug}", et.DeleteExperienceTypeHandler).Methods("DELETE")

	admin.HandleFunc("/hotels", h.CreateHotelHandler).Methods("POST")
	admin.HandleFunc("/hotels/{id}", h.HotelByIDHandler).Methods("GET")
	admin.HandleFunc("/hotels/{id}", h.UpdateHotelHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/hotels/{id}", h.DeleteHotelHandler).Methods("DELETE")

	admin.HandleFunc("/tours", t.CreateTourHandler).Methods("POST")
	admin.HandleFunc("/tours/{id}", t.TourByIDHandler).Methods("GET")
	admin.HandleFunc("/tours/{slug}", t.UpdateTourHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/tours/{slug}", t.DeleteTourHandler).Methods("DELETE")

	admin.HandleFunc("/tour-requests", tr.TourRequestsHandler).Methods("GET")
	admin.HandleFunc("/tour-requests/{id}", tr.TourRequestByIDHandler).Methods("GET")
	admin.HandleFunc("/tour-requests/{id}/status", tr.UpdateTourRequestStatusHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/tour-requests/{id}", tr.DeleteTourRequestHandler).Methods("DELETE")

	admin.HandleFunc("/about", about.UpdateAboutHandler).Methods("PUT")

	admin.HandleFunc("/users", u.UsersHandler).Methods("GET")
	admin.HandleFunc("/users", u.CreateUserHandler).Methods("POST")
	admin.HandleFunc("/users/{id}", u.UserHandler).Methods("GET")
	admin.HandleFunc("/users/{id}", u.UpdateUserHandler).Methods("PATCH", "PUT")
	admin.HandleFunc("/users/{id}", u.DeleteUserHandler).Methods("DELETE")

	admin.HandleFunc("/uploads/signature", cloudinaryHandler.GenerateSignature).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().Errorw("failed to create new client", "error", err)
		return err
	}

	if err := client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().Errorw("failed to connect to database", "error", err)
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Infow("bhutan-tourism-api has connected to the database", "database", a.Config.DatabaseName)

	if _, err := databases.NewAboutDatabase(a.dbHelper).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate about content: %w", err)
	}

	if a.Mailer == nil {
		a.Mailer = notifications.New(&a.Config)
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Database returns the database the routes were built over
func (a *App) Database() databases.DatabaseHelper {
	return a.dbHelper
}

// Close disconnects from the database when Initialize opened the connection
func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// AdminURL links notification emails back into the admin UI
func AdminURL(baseURL, path string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/admin" + path
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
