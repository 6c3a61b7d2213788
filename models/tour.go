package models

// Tour holds the structure for the tours collection
type Tour struct {
	Base        `bson:",inline"`
	Title       string  `json:"title" bson:"title" validate:"required,min=2,max=160"`
	Slug        string  `json:"slug" bson:"slug" validate:"required,slug"`
	Category    string  `json:"category" bson:"category"`
	Description string  `json:"description" bson:"description"`
	Image       string  `json:"image" bson:"image" validate:"omitempty,url"`
	Duration    string  `json:"duration" bson:"duration"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
	Featured    bool    `json:"featured" bson:"featured"`
	Priority    int     `json:"priority" bson:"priority" validate:"gte=0"`
}

// GetSlug returns the public url key
func (t Tour) GetSlug() string {
	return t.Slug
}
