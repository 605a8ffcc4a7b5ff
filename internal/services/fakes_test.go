package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stempel/internal/domain"
	"stempel/internal/ports"
)

// fakeRepo is an in-memory ports.SessionRepository
type fakeRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.WorkSession
	nextID   int

	createErr error
	saveErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*domain.WorkSession)}
}

func (r *fakeRepo) Create(_ context.Context, session *domain.WorkSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, s := range r.sessions {
		if s.EmployeeID == session.EmployeeID && !s.Closed() {
			return domain.ErrAlreadyClockedIn
		}
	}
	if session.ID == "" {
		r.nextID++
		session.ID = fmt.Sprintf("session-%d", r.nextID)
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeRepo) Save(_ context.Context, session *domain.WorkSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.sessions[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.WorkSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepo) FindOpenByEmployee(_ context.Context, employeeID string) (*domain.WorkSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.EmployeeID == employeeID && !s.Closed() {
			copied := *s
			return &copied, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (r *fakeRepo) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]domain.WorkSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.WorkSession
	for _, s := range r.sessions {
		if s.EmployeeID == employeeID && !s.ClockIn.Before(from) && s.ClockIn.Before(to) {
			out = append(out, *s)
		}
	}
	sortByClockIn(out)
	return out, nil
}

func (r *fakeRepo) ListByClockInRange(_ context.Context, from, to time.Time) ([]domain.WorkSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.WorkSession
	for _, s := range r.sessions {
		if !s.ClockIn.Before(from) && s.ClockIn.Before(to) {
			out = append(out, *s)
		}
	}
	sortByClockIn(out)
	return out, nil
}

func (r *fakeRepo) Close() error { return nil }

func sortByClockIn(sessions []domain.WorkSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ClockIn.Before(sessions[j].ClockIn)
	})
}

// fakeBlobStore stores nothing and fails uploads whose name appears in
// failNames
type fakeBlobStore struct {
	failNames map[string]bool
	uploaded  []string
}

func (b *fakeBlobStore) Upload(_ context.Context, upload ports.BlobUpload) (domain.Attachment, error) {
	if b.failNames[upload.Name] {
		return domain.Attachment{}, fmt.Errorf("upload of %s failed", upload.Name)
	}
	b.uploaded = append(b.uploaded, upload.Name)
	return domain.Attachment{
		ID:      upload.Name,
		URL:     "fake://" + upload.Name,
		Comment: upload.Comment,
	}, nil
}

func (b *fakeBlobStore) UploadBatch(ctx context.Context, uploads []ports.BlobUpload) (ports.BatchResult, error) {
	var result ports.BatchResult
	for _, u := range uploads {
		att, err := b.Upload(ctx, u)
		if err != nil {
			result.Failed++
			continue
		}
		result.Stored = append(result.Stored, att)
	}
	return result, nil
}

// fixedClock always returns the same instant until advanced
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) advance(d time.Duration) { c.now = c.now.Add(d) }

var _ ports.SessionRepository = (*fakeRepo)(nil)
var _ ports.BlobStore = (*fakeBlobStore)(nil)
var _ ports.Clock = (*fixedClock)(nil)
