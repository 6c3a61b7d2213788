package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/models"
)

const aboutName = "about"

// AboutDatabase contains the methods to use with the about content singleton
type AboutDatabase interface {
	Get(ctx context.Context) (*models.AboutContent, error)
	Update(ctx context.Context, content *models.AboutContent) error
	Migrate(ctx context.Context) (bool, error)
}

type aboutDatabase struct {
	db DatabaseHelper
}

// NewAboutDatabase initializes a new instance of about database with the provided db connection
func NewAboutDatabase(db DatabaseHelper) AboutDatabase {
	return &aboutDatabase{
		db: db,
	}
}

func (a *aboutDatabase) filter() bson.M {
	return bson.M{"_id": models.AboutDocumentID}
}

func (a *aboutDatabase) load(ctx context.Context) (*models.AboutContent, error) {
	var stored models.AboutContent
	err := a.db.Collection(aboutName).FindOne(ctx, a.filter()).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find about content: %w", err)
	}
	return &stored, nil
}

// Get always returns a fully populated document. A missing document is created from
// the default template; a stored one is normalized and merged over the default.
func (a *aboutDatabase) Get(ctx context.Context) (*models.AboutContent, error) {
	stored, err := a.load(ctx)
	if err != nil {
		return nil, err
	}

	def := models.DefaultAboutContent()
	if stored == nil {
		def.UpdatedAt = now()
		_, err := a.db.Collection(aboutName).InsertOne(ctx, def)
		if err == nil {
			return &def, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to insert default about content: %w", err)
		}
		// a concurrent first read stored the default already
		if stored, err = a.load(ctx); err != nil {
			return nil, err
		}
		if stored == nil {
			return &def, nil
		}
	}

	if stored.SchemaVersion < models.AboutSchemaVersion && stored.NormalizeLegacy() {
		zap.S().Debugw("normalized legacy about content on read", "schemaVersion", stored.SchemaVersion)
	}
	merged := stored.MergeDefaults(def)
	return &merged, nil
}

// Update upserts the singleton. content is taken to be in the current schema, so a
// list section without items keeps falling back to the default items.
func (a *aboutDatabase) Update(ctx context.Context, content *models.AboutContent) error {
	content.ID = models.AboutDocumentID
	content.SchemaVersion = models.AboutSchemaVersion
	content.UpdatedAt = now()

	update := bson.M{"$set": bson.M{
		"schemaVersion": content.SchemaVersion,
		"hero":          content.Hero,
		"story":         content.Story,
		"mission":       content.Mission,
		"purpose":       content.Purpose,
		"sustainable":   content.Sustainable,
		"updatedAt":     content.UpdatedAt,
	}}
	_, err := a.db.Collection(aboutName).UpdateOne(ctx, a.filter(), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert about content: %w", err)
	}
	return nil
}

// Migrate rewrites a stored pre-items document into the current schema. It reports
// whether a write happened.
func (a *aboutDatabase) Migrate(ctx context.Context) (bool, error) {
	stored, err := a.load(ctx)
	if err != nil || stored == nil {
		return false, err
	}
	if stored.SchemaVersion >= models.AboutSchemaVersion {
		return false, nil
	}
	stored.NormalizeLegacy()
	if err := a.Update(ctx, stored); err != nil {
		return false, err
	}
	zap.S().Infow("migrated about content", "schemaVersion", models.AboutSchemaVersion)
	return true, nil
}
