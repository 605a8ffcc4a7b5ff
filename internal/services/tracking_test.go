package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stempel/internal/adapters/identity"
	"stempel/internal/domain"
	"stempel/internal/ports"
)

func newTrackingFixture(start time.Time) (*TrackingService, *fakeRepo, *fakeBlobStore, *fixedClock) {
	repo := newFakeRepo()
	blobs := &fakeBlobStore{}
	clock := &fixedClock{now: start}
	svc := NewTrackingService(repo, blobs, identity.Static{ID: "foreman-7"}, clock)
	return svc, repo, blobs, clock
}

func TestClockIn_CreatesOpenSession(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTrackingFixture(start)

	sess, err := svc.ClockIn(context.Background(), ClockInParams{
		EmployeeID: "emp-1",
		ProjectID:  "site-42",
		Location:   "north gate",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, start, sess.ClockIn)
	assert.Equal(t, "north gate", sess.ClockInLocation)
	assert.False(t, sess.Closed())
}

func TestClockIn_RejectsSecondOpenSession(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTrackingFixture(start)

	_, err := svc.ClockIn(context.Background(), ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(time.Hour)
	_, err = svc.ClockIn(context.Background(), ClockInParams{EmployeeID: "emp-1", ProjectID: "site-43"})
	assert.ErrorIs(t, err, domain.ErrAlreadyClockedIn)

	// Another employee is unaffected
	_, err = svc.ClockIn(context.Background(), ClockInParams{EmployeeID: "emp-2", ProjectID: "site-43"})
	assert.NoError(t, err)
}

func TestClockOut_ComputesWorkedMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, repo, _, clock := newTrackingFixture(start)
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(2 * time.Hour)
	_, err = svc.StartPause(ctx, sess.ID)
	require.NoError(t, err)

	clock.advance(30 * time.Minute)
	_, err = svc.EndPause(ctx, sess.ID)
	require.NoError(t, err)

	clock.advance(90 * time.Minute)
	result, err := svc.ClockOut(ctx, ClockOutParams{
		SessionID: sess.ID,
		Notes:     "poured foundation",
		Location:  "north gate",
	})

	require.NoError(t, err)
	// 4h elapsed minus 30m paused
	assert.Equal(t, 210, result.WorkedMinutes)
	assert.Zero(t, result.FailedUploads)

	stored, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, stored.Closed())
	assert.Equal(t, "poured foundation", stored.Notes)
	assert.Equal(t, 30*time.Minute, stored.PauseTotal)
}

func TestClockOut_ForceClosesOpenPause(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, repo, _, clock := newTrackingFixture(start)
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(3 * time.Hour)
	_, err = svc.StartPause(ctx, sess.ID)
	require.NoError(t, err)

	clock.advance(45 * time.Minute)
	result, err := svc.ClockOut(ctx, ClockOutParams{SessionID: sess.ID})
	require.NoError(t, err)

	assert.Equal(t, 180, result.WorkedMinutes)

	stored, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored.Pauses, 1)
	assert.Nil(t, stored.CurrentPause)
	assert.Equal(t, 45*time.Minute, stored.PauseTotal)
}

func TestClockOut_RefusesNegativeDuration(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, repo, _, clock := newTrackingFixture(start)
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	// Host clock jumped backwards past the clock-in
	clock.now = start.Add(-time.Minute)

	_, err = svc.ClockOut(ctx, ClockOutParams{SessionID: sess.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	stored, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, stored.Closed())
}

func TestClockOut_SkipsFailedAttachments(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, repo, blobs, clock := newTrackingFixture(start)
	blobs.failNames = map[string]bool{"broken.jpg": true}
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(time.Hour)
	result, err := svc.ClockOut(ctx, ClockOutParams{
		SessionID: sess.ID,
		Attachments: []ports.BlobUpload{
			{Name: "wall.jpg", Content: []byte("a")},
			{Name: "broken.jpg", Content: []byte("b")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.FailedUploads)

	stored, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored.Documentation, 1)
	require.Len(t, stored.Documentation[0].Images, 1)
	assert.Equal(t, "wall.jpg", stored.Documentation[0].Images[0].ID)
}

func TestClockOut_UnknownSession(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTrackingFixture(start)

	_, err := svc.ClockOut(context.Background(), ClockOutParams{SessionID: "missing"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestClockOut_AlreadyClosed(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTrackingFixture(start)
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(time.Hour)
	_, err = svc.ClockOut(ctx, ClockOutParams{SessionID: sess.ID})
	require.NoError(t, err)

	clock.advance(time.Minute)
	_, err = svc.ClockOut(ctx, ClockOutParams{SessionID: sess.ID})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestPauseLifecycle_Errors(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, _, _, clock := newTrackingFixture(start)
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	_, err = svc.EndPause(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrNoPauseInProgress)

	clock.advance(time.Hour)
	_, err = svc.StartPause(ctx, sess.ID)
	require.NoError(t, err)

	_, err = svc.StartPause(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaused)
}

func TestAddDocumentation_IsolatesFailedUploads(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, repo, blobs, clock := newTrackingFixture(start)
	blobs.failNames = map[string]bool{"two.jpg": true}
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(time.Hour)
	result, err := svc.AddDocumentation(ctx, AddDocumentationParams{
		SessionID: sess.ID,
		Notes:     "rebar inspection",
		Images: []ports.BlobUpload{
			{Name: "one.jpg", Content: []byte("1")},
			{Name: "two.jpg", Content: []byte("2")},
			{Name: "three.jpg", Content: []byte("3")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.FailedUploads)
	require.Len(t, result.Entry.Images, 2)
	assert.Equal(t, "one.jpg", result.Entry.Images[0].ID)
	assert.Equal(t, "three.jpg", result.Entry.Images[1].ID)

	stored, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored.Documentation, 1)
	assert.Equal(t, "rebar inspection", stored.Documentation[0].Notes)
	assert.Equal(t, "foreman-7", stored.Documentation[0].AddedBy)
}

func TestAddDocumentation_RejectsClosedSession(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	svc, _, blobs, clock := newTrackingFixture(start)
	ctx := context.Background()

	sess, err := svc.ClockIn(ctx, ClockInParams{EmployeeID: "emp-1", ProjectID: "site-42"})
	require.NoError(t, err)

	clock.advance(time.Hour)
	_, err = svc.ClockOut(ctx, ClockOutParams{SessionID: sess.ID})
	require.NoError(t, err)

	_, err = svc.AddDocumentation(ctx, AddDocumentationParams{
		SessionID: sess.ID,
		Images:    []ports.BlobUpload{{Name: "late.jpg", Content: []byte("x")}},
	})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	assert.Empty(t, blobs.uploaded, "nothing should be uploaded for a closed session")
}
