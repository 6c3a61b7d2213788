package models

// Experience holds the structure for the experiences collection. Destinations holds
// destination ids, DestinationSlug the primary destination used for public links.
type Experience struct {
	Base            `bson:",inline"`
	Slug            string      `json:"slug" bson:"slug" validate:"required,slug"`
	Title           string      `json:"title" bson:"title" validate:"required,min=2,max=160"`
	Category        string      `json:"category" bson:"category"`
	Description     string      `json:"description" bson:"description"`
	Image           string      `json:"image" bson:"image" validate:"omitempty,url"`
	Gallery         []string    `json:"gallery" bson:"gallery" validate:"omitempty,dive,url"`
	Duration        string      `json:"duration" bson:"duration"`
	Difficulty      string      `json:"difficulty" bson:"difficulty" validate:"omitempty,oneof=easy moderate challenging"`
	DestinationSlug string      `json:"destinationSlug" bson:"destinationSlug"`
	Destinations    []string    `json:"destinations" bson:"destinations" validate:"omitempty,dive,mongodb"`
	Coordinates     Coordinates `json:"coordinates" bson:"coordinates"`
	Priority        int         `json:"priority" bson:"priority" validate:"gte=0"`
}

// ExperienceType holds the structure for the experienceTypes collection, the taxonomy
// behind Experience.Category
type ExperienceType struct {
	Base         `bson:",inline"`
	Slug         string `json:"slug" bson:"slug" validate:"required,slug"`
	Title        string `json:"title" bson:"title" validate:"required,min=2,max=120"`
	Description  string `json:"description" bson:"description"`
	Image        string `json:"image" bson:"image" validate:"omitempty,url"`
	DisplayOrder int    `json:"displayOrder" bson:"displayOrder" validate:"gte=0"`
}

// GetSlug returns the public url key
func (e Experience) GetSlug() string {
	return e.Slug
}

// GetSlug returns the public url key
func (e ExperienceType) GetSlug() string {
	return e.Slug
}
