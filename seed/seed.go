// Package seed loads the demo catalogue. Every loader skips a collection that already
// holds documents, so running it twice never duplicates data.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/databases"
)

// Report counts the documents inserted per collection, zero for skipped ones
type Report struct {
	Destinations    int
	ExperienceTypes int
	Experiences     int
	Hotels          int
	Tours           int
	TourRequests    int
}

// Total is the number of documents inserted across all collections
func (r Report) Total() int {
	return r.Destinations + r.ExperienceTypes + r.Experiences + r.Hotels + r.Tours + r.TourRequests
}

// Seeder holds the repositories the loaders write through
type Seeder struct {
	Destinations    databases.DestinationDatabase
	ExperienceTypes databases.ExperienceTypeDatabase
	Experiences     databases.ExperienceDatabase
	Hotels          databases.HotelDatabase
	Tours           databases.TourDatabase
	TourRequests    databases.TourRequestDatabase
}

// New builds a Seeder over db
func New(db databases.DatabaseHelper) *Seeder {
	tours := databases.NewTourDatabase(db)
	return &Seeder{
		Destinations:    databases.NewDestinationDatabase(db),
		ExperienceTypes: databases.NewExperienceTypeDatabase(db),
		Experiences:     databases.NewExperienceDatabase(db),
		Hotels:          databases.NewHotelDatabase(db),
		Tours:           tours,
		TourRequests:    databases.NewTourRequestDatabase(db, tours),
	}
}

// Run seeds db with the default catalogue
func Run(ctx context.Context, db databases.DatabaseHelper) (Report, error) {
	return New(db).Run(ctx)
}

// Run loads every collection in dependency order: destinations before the
// hotels and experiences that point at them, tours before tour requests.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var (
		r   Report
		err error
	)
	if r.Destinations, err = s.loadDestinations(ctx); err != nil {
		return r, err
	}
	if r.ExperienceTypes, err = s.loadExperienceTypes(ctx); err != nil {
		return r, err
	}
	if r.Experiences, err = s.loadExperiences(ctx); err != nil {
		return r, err
	}
	if r.Hotels, err = s.loadHotels(ctx); err != nil {
		return r, err
	}
	if r.Tours, err = s.loadTours(ctx); err != nil {
		return r, err
	}
	if r.TourRequests, err = s.loadTourRequests(ctx); err != nil {
		return r, err
	}
	zap.S().Infow("seed finished", "inserted", r.Total())
	return r, nil
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// populated reports whether the collection already has documents
func populated(ctx context.Context, name string, c counter) (bool, error) {
	n, err := c.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", name, err)
	}
	if n > 0 {
		zap.S().Infow("skipping seed, collection not empty", "collection", name, "count", n)
		return true, nil
	}
	return false, nil
}

func (s *Seeder) loadDestinations(ctx context.Context) (int, error) {
	if skip, err := populated(ctx, "destinations", s.Destinations); skip || err != nil {
		return 0, err
	}
	n := 0
	for _, d := range destinations() {
		d := d
		if _, err := s.Destinations.Create(ctx, &d); err != nil {
			return n, fmt.Errorf("failed to seed destination %s: %w", d.Slug, err)
		}
		n++
	}
	return n, nil
}

func (s *Seeder) loadExperienceTypes(ctx context.Context) (int, error) {
	if skip, err := populated(ctx, "experienceTypes", s.ExperienceTypes); skip || err != nil {
		return 0, err
	}
	n := 0
	for _, et := range experienceTypes() {
		et := et
		if _, err := s.ExperienceTypes.Create(ctx, &et); err != nil {
			return n, fmt.Errorf("failed to seed experience type %s: %w", et.Slug, err)
		}
		n++
	}
	return n, nil
}

// destinationIDs maps destination slugs to hex ids
func (s *Seeder) destinationIDs(ctx context.Context) (map[string]string, error) {
	all, err := s.Destinations.All(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]string, len(all))
	for _, d := range all {
		ids[d.Slug] = d.ID.Hex()
	}
	return ids, nil
}

func (s *Seeder) loadExperiences(ctx context.Context) (int, error) {
	if skip, err := populated(ctx, "experiences", s.Experiences); skip || err != nil {
		return 0, err
	}
	ids, err := s.destinationIDs(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range experiences() {
		e := f.Experience
		for _, slug := range f.destinationSlugs {
			if id, ok := ids[slug]; ok {
				e.Destinations = append(e.Destinations, id)
			}
		}
		if _, err := s.Experiences.Create(ctx, &e); err != nil {
			return n, fmt.Errorf("failed to seed experience %s: %w", e.Slug, err)
		}
		n++
	}
	return n, nil
}

func (s *Seeder) loadHotels(ctx context.Context) (int, error) {
	if skip, err := populated(ctx, "hotels", s.Hotels); skip || err != nil {
		return 0, err
	}
	ids, err := s.destinationIDs(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range hotels() {
		h := f.Hotel
		h.Destination = ids[f.destinationSlug]
		if _, err := s.Hotels.Create(ctx, &h); err != nil {
			return n, fmt.Errorf("failed to seed hotel %s: %w", h.Slug, err)
		}
		n++
	}
	return n, nil
}

func (s *Seeder) loadTours(ctx context.Context) (int, error) {
	if skip, err := populated(ctx, "tours", s.Tours); skip || err != nil {
		return 0, err
	}
	n := 0
	for _, t := range tours() {
		t := t
		if _, err := s.Tours.Create(ctx, &t); err != nil {
			return n, fmt.Errorf("failed to seed tour %s: %w", t.Slug, err)
		}
		n++
	}
	return n, nil
}

func (s *Seeder) loadTourRequests(ctx context.Context) (int, error) {
	if skip, err := populated(ctx, "tourRequests", s.TourRequests); skip || err != nil {
		return 0, err
	}
	n := 0
	for _, f := range tourRequests() {
		tr := f.TourRequest
		if f.tourSlug != "" {
			tour, err := s.Tours.FindBySlug(ctx, f.tourSlug)
			if err != nil {
				return n, err
			}
			if tour != nil {
				id := tour.ID
				tr.TourID = &id
			}
		}
		if _, err := s.TourRequests.Submit(ctx, &tr); err != nil {
			return n, fmt.Errorf("failed to seed tour request for %s: %w", tr.Email, err)
		}
		n++
	}
	return n, nil
}
