package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/databases/memdb"
	"github.com/druktrails/bhutan-tourism-api/models"
	"github.com/druktrails/bhutan-tourism-api/notifications"
)

type recordingMailer struct {
	sent []notifications.Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg notifications.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func newTestScheduler(t *testing.T, pending int) (*Scheduler, *recordingMailer, databases.TourRequestDatabase) {
	t.Helper()
	db := memdb.New()
	trDB := databases.NewTourRequestDatabase(db, databases.NewTourDatabase(db))
	for i := 0; i < pending; i++ {
		_, err := trDB.Submit(context.Background(), &models.TourRequest{FirstName: "Pema", LastName: "Dorji", Email: "pema@example.com"})
		require.NoError(t, err)
	}
	mailer := &recordingMailer{}
	s := NewScheduler(trDB, databases.NewSchedulerLockDatabase(db), mailer, "ops@druktrails.bt", "https://cms.druktrails.bt/admin/tour-requests", "")
	return s, mailer, trDB
}

func TestSendPendingDigest(t *testing.T) {
	s, mailer, _ := newTestScheduler(t, 3)

	n, err := s.SendPendingDigest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), n)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ops@druktrails.bt", mailer.sent[0].ToEmail)
	assert.Equal(t, "3 tour requests awaiting reply", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].PlainText, "pema@example.com")
}

func TestSendPendingDigestSkipsReviewedRequests(t *testing.T) {
	s, mailer, trDB := newTestScheduler(t, 2)
	page, err := trDB.List(context.Background(), 1, 10, databases.TourRequestFilter{})
	require.NoError(t, err)
	for _, tr := range page.Items {
		_, err := trDB.UpdateStatus(context.Background(), tr.HexID(), models.TourRequestApproved)
		require.NoError(t, err)
	}

	n, err := s.SendPendingDigest(context.Background())
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Empty(t, mailer.sent)
}

func TestSendPendingDigestMailError(t *testing.T) {
	s, mailer, _ := newTestScheduler(t, 1)
	mailer.err = errors.New("sendgrid returned 401")

	_, err := s.SendPendingDigest(context.Background())

	assert.EqualError(t, err, "failed to mail pending digest: sendgrid returned 401")
}

func TestRunPendingDigestRespectsLock(t *testing.T) {
	s, mailer, _ := newTestScheduler(t, 1)

	acquired, err := s.LockDB.TryAcquireLock(context.Background(), digestJob, "web.2", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	s.runPendingDigest()
	assert.Empty(t, mailer.sent, "another instance holds the lease")

	require.NoError(t, s.LockDB.ReleaseLock(context.Background(), digestJob, "web.2"))
	s.runPendingDigest()
	assert.Len(t, mailer.sent, 1)
}

func TestStart(t *testing.T) {
	s, _, _ := newTestScheduler(t, 0)
	s.schedule = "not a cron spec"
	assert.Error(t, s.Start())

	s, _, _ = newTestScheduler(t, 0)
	s.schedule = DisabledSchedule
	assert.NoError(t, s.Start())

	s, _, _ = newTestScheduler(t, 0)
	require.NoError(t, s.Start())
	s.Stop()
}
