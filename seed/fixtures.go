package seed

import "github.com/druktrails/bhutan-tourism-api/models"

const imageBase = "https://res.cloudinary.com/druktrails/image/upload/"

func destinations() []models.Destination {
	return []models.Destination{
		{Name: "Paro", Slug: "paro", Region: "west", Image: imageBase + "destinations/paro.jpg",
			Description: "Home of Taktsang, the Tiger's Nest, and the country's only international airport.",
			Coordinates: models.Coordinates{Lat: 27.4287, Lng: 89.4164}},
		{Name: "Thimphu", Slug: "thimphu", Region: "west", Image: imageBase + "destinations/thimphu.jpg",
			Description: "The capital, where Tashichho Dzong overlooks the Wang Chhu.",
			Coordinates: models.Coordinates{Lat: 27.4728, Lng: 89.6390}},
		{Name: "Punakha", Slug: "punakha", Region: "west", Image: imageBase + "destinations/punakha.jpg",
			Description: "The old winter capital at the meeting of the Pho Chhu and Mo Chhu rivers.",
			Coordinates: models.Coordinates{Lat: 27.5921, Lng: 89.8797}},
		{Name: "Phobjikha", Slug: "phobjikha", Region: "central", Image: imageBase + "destinations/phobjikha.jpg",
			Description: "A glacial valley and winter home of the black-necked cranes.",
			Coordinates: models.Coordinates{Lat: 27.4616, Lng: 90.1793}},
		{Name: "Bumthang", Slug: "bumthang", Region: "central", Image: imageBase + "destinations/bumthang.jpg",
			Description: "The spiritual heartland, dotted with some of the oldest temples in the kingdom.",
			Coordinates: models.Coordinates{Lat: 27.5490, Lng: 90.7525}},
		{Name: "Trashigang", Slug: "trashigang", Region: "east", Image: imageBase + "destinations/trashigang.jpg",
			Description: "Gateway to the little visited east and the semi-nomadic Brokpa of Merak and Sakteng.",
			Coordinates: models.Coordinates{Lat: 27.3330, Lng: 91.5530}},
	}
}

func experienceTypes() []models.ExperienceType {
	return []models.ExperienceType{
		{Slug: "festival", Title: "Festivals", DisplayOrder: 1, Description: "Masked dances and tsechu celebrations."},
		{Slug: "trekking", Title: "Trekking", DisplayOrder: 2, Description: "High passes, lakes and yak herder camps."},
		{Slug: "cultural", Title: "Culture & Heritage", DisplayOrder: 3, Description: "Dzongs, monasteries and living traditions."},
		{Slug: "wellness", Title: "Wellness", DisplayOrder: 4, Description: "Hot stone baths, meditation and quiet retreats."},
	}
}

// experiences reference destinations by slug; the loader resolves ids
type experienceFixture struct {
	models.Experience
	destinationSlugs []string
}

func experiences() []experienceFixture {
	return []experienceFixture{
		{Experience: models.Experience{Slug: "tigers-nest-hike", Title: "Hike to the Tiger's Nest", Category: "cultural",
			Duration: "5 hours", Difficulty: "moderate", DestinationSlug: "paro", Image: imageBase + "experiences/taktsang.jpg",
			Description: "Climb through blue pine forest to the cliffside monastery of Taktsang."},
			destinationSlugs: []string{"paro"}},
		{Experience: models.Experience{Slug: "paro-tsechu", Title: "Paro Tsechu", Category: "festival",
			Duration: "5 days", Difficulty: "easy", DestinationSlug: "paro", Image: imageBase + "experiences/paro-tsechu.jpg",
			Description: "Spring festival ending with the unveiling of the giant thangka at dawn."},
			destinationSlugs: []string{"paro"}},
		{Experience: models.Experience{Slug: "crane-festival", Title: "Black-necked Crane Festival", Category: "festival",
			Duration: "1 day", Difficulty: "easy", DestinationSlug: "phobjikha", Image: imageBase + "experiences/cranes.jpg",
			Description: "Celebrate the return of the cranes at Gangtey Goenpa every November."},
			destinationSlugs: []string{"phobjikha"}},
		{Experience: models.Experience{Slug: "hot-stone-bath", Title: "Traditional Hot Stone Bath", Category: "wellness",
			Duration: "2 hours", Difficulty: "easy", DestinationSlug: "thimphu", Image: imageBase + "experiences/dotsho.jpg",
			Description: "River stones heated in a fire and dropped into a wooden tub with artemesia leaves."},
			destinationSlugs: []string{"thimphu", "paro"}},
		{Experience: models.Experience{Slug: "druk-path-trail", Title: "Druk Path Trail", Category: "trekking",
			Duration: "6 days", Difficulty: "challenging", DestinationSlug: "paro", Image: imageBase + "experiences/druk-path.jpg",
			Description: "Alpine lakes and ridge views between Paro and Thimphu."},
			destinationSlugs: []string{"paro", "thimphu"}},
	}
}

type hotelFixture struct {
	models.Hotel
	destinationSlug string
}

func hotels() []hotelFixture {
	return []hotelFixture{
		{Hotel: models.Hotel{Name: "Zhiwa Ling Heritage", Slug: "zhiwa-ling-heritage", Location: "Satsam Chorten, Paro",
			Rating: 5, PriceRange: "$$$", Rooms: 45, Price: 420, Amenities: []string{"spa", "restaurant", "hot stone bath"},
			Image: imageBase + "hotels/zhiwa-ling.jpg"}, destinationSlug: "paro"},
		{Hotel: models.Hotel{Name: "Hotel Druk", Slug: "hotel-druk", Location: "Norzin Lam, Thimphu",
			Rating: 4, PriceRange: "$$", Rooms: 54, Price: 180, Amenities: []string{"restaurant", "wifi"},
			Image: imageBase + "hotels/hotel-druk.jpg"}, destinationSlug: "thimphu"},
		{Hotel: models.Hotel{Name: "Dhensa Boutique Resort", Slug: "dhensa-boutique-resort", Location: "Nezigang, Punakha",
			Rating: 5, PriceRange: "$$$", Rooms: 20, Price: 390, Amenities: []string{"pool", "spa", "yoga"},
			Image: imageBase + "hotels/dhensa.jpg"}, destinationSlug: "punakha"},
		{Hotel: models.Hotel{Name: "Gakiling Guesthouse", Slug: "gakiling-guesthouse", Location: "Gangtey, Phobjikha",
			Rating: 3.5, PriceRange: "$", Rooms: 12, Price: 75, Amenities: []string{"farmhouse dinner"},
			Image: imageBase + "hotels/gakiling.jpg"}, destinationSlug: "phobjikha"},
	}
}

func tours() []models.Tour {
	return []models.Tour{
		{Title: "Western Bhutan Highlights", Slug: "western-bhutan-highlights", Category: "cultural", Duration: "7 days",
			Price: 2450, Featured: true, Image: imageBase + "tours/western-highlights.jpg",
			Description: "Paro, Thimphu and Punakha with the Tiger's Nest hike."},
		{Title: "Druk Path Trek", Slug: "druk-path-trek", Category: "trekking", Duration: "9 days",
			Price: 3100, Featured: true, Image: imageBase + "tours/druk-path.jpg",
			Description: "Our most requested trek, camping beside high lakes."},
		{Title: "Festival of Paro", Slug: "festival-of-paro", Category: "festival", Duration: "8 days",
			Price: 2800, Image: imageBase + "tours/paro-festival.jpg",
			Description: "Timed around Paro Tsechu, with a day in the Haa valley."},
		{Title: "Heart of Bhutan", Slug: "heart-of-bhutan", Category: "cultural", Duration: "12 days",
			Price: 4200, Image: imageBase + "tours/heart-of-bhutan.jpg",
			Description: "West to central Bhutan across the Pele La to Bumthang."},
	}
}

type tourRequestFixture struct {
	models.TourRequest
	tourSlug string
}

func tourRequests() []tourRequestFixture {
	return []tourRequestFixture{
		{TourRequest: models.TourRequest{FirstName: "Emma", LastName: "Larsen", Email: "emma.larsen@example.com",
			Destination: "Paro", TravelDate: "2027-03-20", Travelers: 2,
			Message: "We would love to see the tsechu. Are tickets needed?"}, tourSlug: "festival-of-paro"},
		{TourRequest: models.TourRequest{FirstName: "Hiro", LastName: "Tanaka", Email: "hiro.tanaka@example.com",
			TravelDate: "2027-10-05", Travelers: 4, Message: "Family with two teenagers, moderate fitness."},
			tourSlug: "druk-path-trek"},
		{TourRequest: models.TourRequest{FirstName: "Priya", LastName: "Nair", Email: "priya.nair@example.com",
			Destination: "Bumthang", Travelers: 1, Message: "Solo traveller interested in temples and weaving."}},
	}
}
