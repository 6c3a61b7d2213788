// Package docs Druk Trails Tourism API.
//
// Content and enquiry API behind the Druk Trails website and back office.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/druktrails/bhutan-tourism-api/api"
	"github.com/druktrails/bhutan-tourism-api/api/handlers"
	"github.com/druktrails/bhutan-tourism-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges basic auth credentials for a bearer token.
// responses:
//   200: tokenResponse
//   401: errorResponse

// A signed token and when it expires
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body api.TokenResponse
}

// swagger:route GET /api/v1/destinations destinations listDestinations
// Lists destinations a page at a time, optionally by region.
// responses:
//   200: destinationsResponse

// A page of destinations
// swagger:response destinationsResponse
type destinationsResponseWrapper struct {
	// in:body
	Body models.Page[models.Destination]
}

// swagger:route GET /api/v1/destinations/{slug} destinations destinationBySlug
// Gets a single destination by slug.
// responses:
//   200: destinationResponse
//   404: errorResponse

// A single destination
// swagger:response destinationResponse
type destinationResponseWrapper struct {
	// in:body
	Body models.Destination
}

// swagger:route GET /api/v1/tours tours listTours
// Lists tours, featured first.
// responses:
//   200: toursResponse

// A page of tours
// swagger:response toursResponse
type toursResponseWrapper struct {
	// in:body
	Body models.Page[models.Tour]
}

// swagger:route GET /api/v1/about about aboutContent
// Gets the about page content.
// responses:
//   200: aboutResponse

// The about page
// swagger:response aboutResponse
type aboutResponseWrapper struct {
	// in:body
	Body models.AboutContent
}

// swagger:route POST /api/v1/tour-requests tourRequests submitTourRequest
// Submits an enquiry. Limited per client IP.
// responses:
//   201: tourRequestResponse
//   400: validationResponse
//   429: errorResponse

// The stored enquiry, always pending
// swagger:response tourRequestResponse
type tourRequestResponseWrapper struct {
	// in:body
	Body models.TourRequest
}

// swagger:route POST /api/v1/admin/uploads/signature uploads uploadSignature
// Signs a direct upload to Cloudinary.
// responses:
//   200: uploadSignatureResponse
//   503: errorResponse

// Parameters to post with the upload
// swagger:response uploadSignatureResponse
type uploadSignatureResponseWrapper struct {
	// in:body
	Body handlers.UploadSignature
}

// Field level validation errors
// swagger:response validationResponse
type validationResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}

// A message describing what went wrong
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body struct {
		Response string `json:"response"`
	}
}
