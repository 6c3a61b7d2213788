package databases

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const schedulerLockName = "schedulerLocks"

// SchedulerLockDatabase hands out named leases so a cron job runs on one instance
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

// TryAcquireLock takes the lease called name for ttl. It succeeds when nobody holds
// it, when owner already holds it, or when the previous lease expired.
func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	t := now()
	lease := bson.M{"owner": owner, "acquiredAt": t, "expiresAt": t.Add(ttl)}

	doc := bson.M{"_id": name}
	for k, v := range lease {
		doc[k] = v
	}
	_, err := s.db.Collection(schedulerLockName).InsertOne(ctx, doc)
	if err == nil {
		return true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("failed to insert scheduler lock %s: %w", name, err)
	}

	res, err := s.db.Collection(schedulerLockName).UpdateOne(ctx, bson.M{
		"_id": name,
		"$or": []bson.M{
			{"owner": owner},
			{"expiresAt": bson.M{"$lt": t}},
		},
	}, bson.M{"$set": lease})
	if err != nil {
		return false, fmt.Errorf("failed to take over scheduler lock %s: %w", name, err)
	}
	return res.MatchedCount == 1, nil
}

// ReleaseLock drops the lease if owner still holds it
func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, owner string) error {
	_, err := s.db.Collection(schedulerLockName).DeleteOne(ctx, bson.M{"_id": name, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to release scheduler lock %s: %w", name, err)
	}
	return nil
}
