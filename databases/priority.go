package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentBumps bounds the increments in flight for one Bump call
const maxConcurrentBumps = 8

// PriorityTargets lists the ids referenced by an enquiry, grouped by collection
type PriorityTargets struct {
	Experiences  []string
	Destinations []string
	Hotels       []string
	Tours        []string
}

// PriorityDatabase bumps the curated priority counter of referenced documents
type PriorityDatabase interface {
	Bump(ctx context.Context, targets PriorityTargets)
}

type priorityDatabase struct {
	db DatabaseHelper
}

// NewPriorityDatabase initializes a new instance of priority database with the provided db connection
func NewPriorityDatabase(db DatabaseHelper) PriorityDatabase {
	return &priorityDatabase{
		db: db,
	}
}

// Bump increments priority by one for every distinct id. Increments run
// concurrently and independently: a failure is logged and the rest still apply.
func (p *priorityDatabase) Bump(ctx context.Context, targets PriorityTargets) {
	var g errgroup.Group
	g.SetLimit(maxConcurrentBumps)

	for collection, ids := range map[string][]string{
		experienceName:  targets.Experiences,
		destinationName: targets.Destinations,
		hotelName:       targets.Hotels,
		tourName:        targets.Tours,
	} {
		for _, id := range dedupe(ids) {
			collection, id := collection, id
			g.Go(func() error {
				p.increment(ctx, collection, id)
				return nil
			})
		}
	}

	_ = g.Wait()
}

func (p *priorityDatabase) increment(ctx context.Context, collection, id string) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		zap.S().Warnw("skipping priority bump for malformed id", "collection", collection, "id", id)
		return
	}
	res, err := p.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"priority": 1}})
	if err != nil {
		zap.S().Errorw("failed to bump priority", "collection", collection, "id", id, "error", err)
		return
	}
	if res.MatchedCount == 0 {
		zap.S().Warnw("priority bump matched nothing", "collection", collection, "id", id)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
