package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/databases/memdb"
	"github.com/druktrails/bhutan-tourism-api/models"
	"github.com/druktrails/bhutan-tourism-api/seed"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()

	first, err := seed.Run(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Destinations)
	assert.Greater(t, first.Total(), first.Destinations)

	second, err := seed.Run(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Total())

	n, err := databases.NewDestinationDatabase(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestRunSkipsOnlyPopulatedCollections(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	_, err := databases.NewTourDatabase(db).Create(ctx, &models.Tour{Title: "Existing", Slug: "existing"})
	require.NoError(t, err)

	r, err := seed.Run(ctx, db)
	require.NoError(t, err)

	assert.Equal(t, 0, r.Tours)
	assert.Equal(t, 6, r.Destinations)
	assert.Len(t, db.Docs("tours"), 1)
}

func TestRunLinksReferences(t *testing.T) {
	ctx := context.Background()
	db := memdb.New()
	_, err := seed.Run(ctx, db)
	require.NoError(t, err)

	paro, err := databases.NewDestinationDatabase(db).FindBySlug(ctx, "paro")
	require.NoError(t, err)
	require.NotNil(t, paro)

	hotel, err := databases.NewHotelDatabase(db).FindBySlug(ctx, "zhiwa-ling-heritage")
	require.NoError(t, err)
	require.NotNil(t, hotel)
	assert.Equal(t, paro.ID.Hex(), hotel.Destination)

	exp, err := databases.NewExperienceDatabase(db).FindBySlug(ctx, "tigers-nest-hike")
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, []string{paro.ID.Hex()}, exp.Destinations)

	tours := databases.NewTourDatabase(db)
	page, err := databases.NewTourRequestDatabase(db, tours).List(ctx, 1, 10, databases.TourRequestFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	var named int
	for _, tr := range page.Items {
		assert.Equal(t, models.TourRequestPending, tr.Status)
		if tr.TourName != "" {
			named++
		}
	}
	assert.Equal(t, 2, named)
}
