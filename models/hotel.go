package models

// Hotel holds the structure for the hotels collection. Destination is the hex id of
// the destination the hotel belongs to.
type Hotel struct {
	Base        `bson:",inline"`
	Name        string      `json:"name" bson:"name" validate:"required,min=2,max=160"`
	Slug        string      `json:"slug" bson:"slug" validate:"required,slug"`
	Location    string      `json:"location" bson:"location"`
	Description string      `json:"description" bson:"description"`
	Destination string      `json:"destination" bson:"destination" validate:"omitempty,mongodb"`
	Rating      float64     `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	PriceRange  string      `json:"priceRange" bson:"priceRange"`
	Rooms       int         `json:"rooms" bson:"rooms" validate:"gte=0"`
	Amenities   []string    `json:"amenities" bson:"amenities"`
	Image       string      `json:"image" bson:"image" validate:"omitempty,url"`
	Gallery     []string    `json:"gallery" bson:"gallery" validate:"omitempty,dive,url"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
	Price       float64     `json:"price" bson:"price" validate:"gte=0"`
	Priority    int         `json:"priority" bson:"priority" validate:"gte=0"`
}

// GetSlug returns the public url key
func (h Hotel) GetSlug() string {
	return h.Slug
}
