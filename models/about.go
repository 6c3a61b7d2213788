package models

import "time"

// AboutDocumentID is the fixed _id of the single about document
const AboutDocumentID = "about"

// AboutSchemaVersion is the version written by the current code. Version 1 documents
// may still store mission and sustainable as a bare {title, content} object.
const AboutSchemaVersion = 2

// AboutContent holds the structure for the singleton about collection document
type AboutContent struct {
	ID            string           `json:"_id" bson:"_id"`
	SchemaVersion int              `json:"schemaVersion" bson:"schemaVersion"`
	Hero          AboutSection     `json:"hero" bson:"hero"`
	Story         AboutSection     `json:"story" bson:"story"`
	Mission       AboutListSection `json:"mission" bson:"mission"`
	Purpose       AboutSection     `json:"purpose" bson:"purpose"`
	Sustainable   AboutListSection `json:"sustainable" bson:"sustainable"`
	UpdatedAt     time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// AboutSection is a titled block of copy with an optional image
type AboutSection struct {
	Title    string `json:"title" bson:"title"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	Content  string `json:"content" bson:"content"`
	Image    string `json:"image" bson:"image"`
}

// AboutListSection is a section that renders an ordered list of items. Documents
// written before the items list existed only carry Title and Content.
type AboutListSection struct {
	Title    string      `json:"title" bson:"title"`
	Subtitle string      `json:"subtitle" bson:"subtitle"`
	Content  string      `json:"content" bson:"content"`
	Image    string      `json:"image" bson:"image"`
	Items    []AboutItem `json:"items" bson:"items,omitempty"`
}

// AboutItem is one entry of a list section
type AboutItem struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon,omitempty" bson:"icon,omitempty"`
}

// DefaultAboutContent returns the template used when nothing has been stored yet and
// as the base every stored document is merged over
func DefaultAboutContent() AboutContent {
	return AboutContent{
		ID:            AboutDocumentID,
		SchemaVersion: AboutSchemaVersion,
		Hero: AboutSection{
			Title:    "Discover the Land of the Thunder Dragon",
			Subtitle: "Journeys through Bhutan crafted by local hands",
			Image:    "https://res.cloudinary.com/druktrails/image/upload/about/hero.jpg",
		},
		Story: AboutSection{
			Title:   "Our Story",
			Content: "We started as a small family of guides in Paro and grew into a team that has welcomed travellers from every continent to the valleys, dzongs and high passes of Bhutan.",
			Image:   "https://res.cloudinary.com/druktrails/image/upload/about/story.jpg",
		},
		Mission: AboutListSection{
			Title:    "Our Mission",
			Subtitle: "What guides every itinerary",
			Items: []AboutItem{
				{Title: "Authentic encounters", Description: "Travel alongside the people who live here, not around them.", Icon: "users"},
				{Title: "Thoughtful pace", Description: "Itineraries that leave room for festivals, farmhouses and quiet mornings.", Icon: "compass"},
				{Title: "Care in every detail", Description: "Permits, guides and transport handled by one local team.", Icon: "shield"},
			},
		},
		Purpose: AboutSection{
			Title:   "Gross National Happiness",
			Content: "Bhutan measures progress by the wellbeing of its people. We design trips that contribute to it.",
		},
		Sustainable: AboutListSection{
			Title:    "High Value, Low Impact",
			Subtitle: "Tourism that gives back",
			Items: []AboutItem{
				{Title: "Sustainable Development Fee", Description: "Every night you spend funds healthcare, education and conservation.", Icon: "leaf"},
				{Title: "Local partners", Description: "We work with family-run guesthouses and community guides.", Icon: "home"},
			},
		},
	}
}

// NormalizeLegacy converts legacy list sections into the items shape in place. It
// reports whether anything changed.
func (a *AboutContent) NormalizeLegacy() bool {
	m := a.Mission.normalizeLegacy()
	s := a.Sustainable.normalizeLegacy()
	return m || s
}

func (s *AboutListSection) normalizeLegacy() bool {
	if s.Items != nil {
		return false
	}
	if s.Title == "" && s.Content == "" {
		return false
	}
	s.Items = []AboutItem{{Title: s.Title, Description: s.Content}}
	return true
}

// MergeDefaults returns a copy of a where every empty field falls back to def. Item
// lists are taken whole from a when it has any.
func (a AboutContent) MergeDefaults(def AboutContent) AboutContent {
	out := a
	out.ID = AboutDocumentID
	out.Hero = a.Hero.merge(def.Hero)
	out.Story = a.Story.merge(def.Story)
	out.Mission = a.Mission.merge(def.Mission)
	out.Purpose = a.Purpose.merge(def.Purpose)
	out.Sustainable = a.Sustainable.merge(def.Sustainable)
	if out.SchemaVersion == 0 {
		out.SchemaVersion = 1
	}
	return out
}

func (s AboutSection) merge(def AboutSection) AboutSection {
	return AboutSection{
		Title:    firstNonEmpty(s.Title, def.Title),
		Subtitle: firstNonEmpty(s.Subtitle, def.Subtitle),
		Content:  firstNonEmpty(s.Content, def.Content),
		Image:    firstNonEmpty(s.Image, def.Image),
	}
}

func (s AboutListSection) merge(def AboutListSection) AboutListSection {
	out := AboutListSection{
		Title:    firstNonEmpty(s.Title, def.Title),
		Subtitle: firstNonEmpty(s.Subtitle, def.Subtitle),
		Content:  firstNonEmpty(s.Content, def.Content),
		Image:    firstNonEmpty(s.Image, def.Image),
		Items:    s.Items,
	}
	if len(out.Items) == 0 {
		out.Items = append([]AboutItem(nil), def.Items...)
	}
	return out
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
