package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by every collection struct so the generic repository can
// assign identifiers and timestamps on insert
type Document interface {
	SetID(id primitive.ObjectID)
	Stamp(now time.Time)
}

// Base holds the identifier and audit timestamps shared by all collections
type Base struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SetID replaces the identifier, discarding anything the caller supplied
func (b *Base) SetID(id primitive.ObjectID) {
	b.ID = id
}

// HexID returns the identifier as a hex string
func (b Base) HexID() string {
	return b.ID.Hex()
}

// Stamp sets both timestamps, used on insert only
func (b *Base) Stamp(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Coordinates is a WGS84 point used for map pins
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" bson:"lng" validate:"gte=-180,lte=180"`
}

// HealthCheckResponse returns the health check response duh
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
