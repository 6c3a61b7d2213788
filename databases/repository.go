package databases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/druktrails/bhutan-tourism-api/models"
)

// documentPtr constrains PT to *T implementing models.Document
type documentPtr[T any] interface {
	*T
	models.Document
}

// repository implements the list/get/create/update/delete set over one collection.
// Entity databases embed it and only add their sort order, filters and key field.
type repository[T any, PT documentPtr[T]] struct {
	db         DatabaseHelper
	collection string
	sort       bson.D
}

func newRepository[T any, PT documentPtr[T]](db DatabaseHelper, collection string, sort bson.D) *repository[T, PT] {
	return &repository[T, PT]{db: db, collection: collection, sort: sort}
}

func (r *repository[T, PT]) coll() CollectionHelper {
	return r.db.Collection(r.collection)
}

// list returns one page of documents matching filter in the repository sort order
func (r *repository[T, PT]) list(ctx context.Context, page, pageSize int, filter bson.M) (*models.Page[T], error) {
	if filter == nil {
		filter = bson.M{}
	}
	mp := newMongoPaginate(pageSize, page)

	total, err := r.coll().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", r.collection, err)
	}

	opts := mp.getPaginatedOpts()
	opts.SetSort(r.sort)
	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return models.NewPage(items, int(mp.page), int(mp.limit), total), nil
}

// All returns every document of the collection in display order
func (r *repository[T, PT]) All(ctx context.Context) ([]T, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(r.sort))
}

func (r *repository[T, PT]) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.coll().Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.collection, err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.collection, err)
	}
	return items, nil
}

// findOne returns nil without an error when nothing matches
func (r *repository[T, PT]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s: %w", r.collection, err)
	}
	return &doc, nil
}

// FindByID returns nil for unknown and malformed ids alike
func (r *repository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySlug returns nil when no document has the slug
func (r *repository[T, PT]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// Create assigns a fresh id, stamps both timestamps and inserts doc. The hex id is
// returned and also left on doc.
func (r *repository[T, PT]) Create(ctx context.Context, doc *T) (string, error) {
	oid := primitive.NewObjectID()
	PT(doc).SetID(oid)
	PT(doc).Stamp(now())

	res, err := r.coll().InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", r.collection, err)
	}
	if id, ok := res.InsertedID().(primitive.ObjectID); ok {
		return id.Hex(), nil
	}
	return oid.Hex(), nil
}

// update applies fields with $set and stamps updatedAt. It returns the matched count.
func (r *repository[T, PT]) update(ctx context.Context, filter bson.M, fields bson.M) (int64, error) {
	set := bson.M{}
	for k, v := range fields {
		switch k {
		case "_id", "createdAt", "updatedAt":
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = now()

	res, err := r.coll().UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", r.collection, err)
	}
	return res.MatchedCount, nil
}

func (r *repository[T, PT]) updateByID(ctx context.Context, id string, fields bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	return r.update(ctx, bson.M{"_id": oid}, fields)
}

func (r *repository[T, PT]) delete(ctx context.Context, filter bson.M) (int64, error) {
	res, err := r.coll().DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", r.collection, err)
	}
	return res.DeletedCount, nil
}

func (r *repository[T, PT]) deleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	return r.delete(ctx, bson.M{"_id": oid})
}

// Count returns the number of documents in the collection
func (r *repository[T, PT]) Count(ctx context.Context) (int64, error) {
	n, err := r.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.collection, err)
	}
	return n, nil
}

// now is the clock used for timestamps, millisecond precision to match BSON dates
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
