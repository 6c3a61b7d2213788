package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/models"
	"github.com/druktrails/bhutan-tourism-api/notifications"
	templates "github.com/druktrails/bhutan-tourism-api/templates/html"
)

// DefaultDigestSchedule is 08:00 in Thimphu
const DefaultDigestSchedule = "0 2 * * *"

// DisabledSchedule turns the digest job off
const DisabledSchedule = "off"

const (
	digestJob      = "pending_digest_job"
	digestPageSize = 20
	digestLockTTL  = 10 * time.Minute
)

// Scheduler handles periodic background jobs for the back office
type Scheduler struct {
	cron   *cron.Cron
	TRDB   databases.TourRequestDatabase
	LockDB databases.SchedulerLockDatabase
	Mailer notifications.Mailer

	NotifyEmail string
	AdminURL    string
	schedule    string
	instanceID  string
}

// NewScheduler creates a new scheduler instance. schedule is a standard five field
// cron expression evaluated in UTC.
func NewScheduler(
	trDB databases.TourRequestDatabase,
	lockDB databases.SchedulerLockDatabase,
	mailer notifications.Mailer,
	notifyEmail, adminURL, schedule string,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}
	if schedule == "" {
		schedule = DefaultDigestSchedule
	}

	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		TRDB:        trDB,
		LockDB:      lockDB,
		Mailer:      mailer,
		NotifyEmail: notifyEmail,
		AdminURL:    adminURL,
		schedule:    schedule,
		instanceID:  instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	if s.schedule == DisabledSchedule || s.NotifyEmail == "" {
		zap.S().Infow("pending digest disabled", "schedule", s.schedule)
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.runPendingDigest); err != nil {
		return fmt.Errorf("failed to register pending digest job: %w", err)
	}

	s.cron.Start()
	zap.S().Infow("back office scheduler started", "schedule", s.schedule, "instance", s.instanceID)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("back office scheduler stopped")
}

func (s *Scheduler) runPendingDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock
	acquired, err := s.LockDB.TryAcquireLock(ctx, digestJob, s.instanceID, digestLockTTL)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for pending digest job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("pending digest job already running on another instance, skipping")
		return
	}
	defer func() {
		if err := s.LockDB.ReleaseLock(ctx, digestJob, s.instanceID); err != nil {
			zap.S().Warnw("failed to release pending digest lock", "error", err)
		}
	}()

	if _, err := s.SendPendingDigest(ctx); err != nil {
		zap.S().Errorw("failed to send pending digest", "error", err)
	}
}

// SendPendingDigest mails the office a summary of the tour requests still pending.
// Nothing is sent when there are none. It returns the pending count.
func (s *Scheduler) SendPendingDigest(ctx context.Context) (int64, error) {
	page, err := s.TRDB.List(ctx, 1, digestPageSize, databases.TourRequestFilter{Status: models.TourRequestPending})
	if err != nil {
		return 0, err
	}
	if page.TotalItems == 0 {
		zap.S().Debug("no pending tour requests, skipping digest")
		return 0, nil
	}

	subject, html, plain := templates.RenderPendingDigest(page.Items, page.TotalItems, s.AdminURL)
	err = s.Mailer.Send(ctx, notifications.Message{
		ToEmail:   s.NotifyEmail,
		Subject:   subject,
		HTML:      html,
		PlainText: plain,
	})
	if err != nil {
		return page.TotalItems, fmt.Errorf("failed to mail pending digest: %w", err)
	}

	zap.S().Infow("sent pending digest", "pending", page.TotalItems, "to", s.NotifyEmail)
	return page.TotalItems, nil
}
