package memdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestInsertOneDuplicateID(t *testing.T) {
	c := New().Collection("locks")
	ctx := context.Background()

	_, err := c.InsertOne(ctx, bson.M{"_id": "digest"})
	require.NoError(t, err)
	_, err = c.InsertOne(ctx, bson.M{"_id": "digest"})

	assert.True(t, mongo.IsDuplicateKeyError(err))
}

func TestRangeFilters(t *testing.T) {
	c := New().Collection("tours")
	ctx := context.Background()
	base := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"a", "b", "c"} {
		_, err := c.InsertOne(ctx, bson.M{"slug": slug, "price": 1000 * (i + 1), "startsAt": base.AddDate(0, 0, i)})
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter bson.M
		want   int64
	}{
		{"lt number", bson.M{"price": bson.M{"$lt": 2000}}, 1},
		{"lte number", bson.M{"price": bson.M{"$lte": 2000}}, 2},
		{"gt and lt", bson.M{"price": bson.M{"$gt": 1000, "$lt": 3000}}, 1},
		{"gte date", bson.M{"startsAt": bson.M{"$gte": base.AddDate(0, 0, 1)}}, 2},
		{"string against number", bson.M{"price": bson.M{"$gt": "1000"}}, 0},
		{"missing field", bson.M{"rating": bson.M{"$lt": 5}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := c.CountDocuments(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestUpsertSeedsFromFilter(t *testing.T) {
	db := New()
	c := db.Collection("about")
	ctx := context.Background()

	res, err := c.UpdateOne(ctx, bson.M{"_id": "about"}, bson.M{"$set": bson.M{"schemaVersion": 2}}, options.Update().SetUpsert(true))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)

	docs := db.Docs("about")
	require.Len(t, docs, 1)
	assert.Equal(t, "about", docs[0]["_id"])
	assert.EqualValues(t, 2, docs[0]["schemaVersion"])
}
