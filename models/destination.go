package models

// Destination holds the structure for the destinations collection
type Destination struct {
	Base        `bson:",inline"`
	Name        string      `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Slug        string      `json:"slug" bson:"slug" validate:"required,slug"`
	Region      string      `json:"region" bson:"region"`
	Description string      `json:"description" bson:"description"`
	Image       string      `json:"image" bson:"image" validate:"omitempty,url"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
	Priority    int         `json:"priority" bson:"priority" validate:"gte=0"`
}

// GetSlug returns the public url key
func (d Destination) GetSlug() string {
	return d.Slug
}
