package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"petfectly_server/discovery"
	"petfectly_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	feeds map[string][]discovery.Candidate
	err   error
}

func (f *fakeSource) ListCandidates(_ context.Context, viewerID string) ([]discovery.Candidate, error) {
	return f.feeds[viewerID], f.err
}

type fakeLikes struct {
	mu    sync.Mutex
	liked []string
}

func (f *fakeLikes) SetLiked(_ context.Context, id string, liked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if liked {
		f.liked = append(f.liked, id)
	}
	return nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	matches []models.Match
}

func (f *fakeRecorder) RecordMatch(_ context.Context, viewerID string, c discovery.Candidate) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := models.Match{MatchID: c.ID + "-match", ViewerID: viewerID, PetID: c.ID}
	f.matches = append(f.matches, m)
	return &m, nil
}

type revealLog struct {
	mu       sync.Mutex
	revealed []string
}

func (r *revealLog) StateChanged(string, discovery.Snapshot) {}
func (r *revealLog) MatchFound(string, discovery.Candidate)  {}
func (r *revealLog) MatchRevealed(sessionID string, c discovery.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revealed = append(r.revealed, sessionID+":"+c.ID)
}

// queuedScheduler holds timers until flush runs them in order.
type queuedScheduler struct {
	mu      sync.Mutex
	pending []*queuedTimer
}

type queuedTimer struct {
	f       func()
	stopped bool
}

func (t *queuedTimer) Stop() bool {
	stopped := !t.stopped
	t.stopped = true
	return stopped
}

func (q *queuedScheduler) AfterFunc(_ time.Duration, f func()) discovery.Timer {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := &queuedTimer{f: f}
	q.pending = append(q.pending, t)
	return t
}

func (q *queuedScheduler) flush() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		t := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()
		if !t.stopped {
			t.f()
		}
	}
}

func dog(id string) discovery.Candidate {
	return discovery.Candidate{ID: id, Name: id, Images: []string{id + ".jpg"}}
}

type discoveryFixture struct {
	service   *DiscoveryService
	source    *fakeSource
	likes     *fakeLikes
	recorder  *fakeRecorder
	notifier  *revealLog
	scheduler *queuedScheduler
}

func newDiscoveryFixture(draw float64) *discoveryFixture {
	f := &discoveryFixture{
		source:    &fakeSource{feeds: map[string][]discovery.Candidate{"ann": {dog("luna"), dog("max")}}},
		likes:     &fakeLikes{},
		recorder:  &fakeRecorder{},
		notifier:  &revealLog{},
		scheduler: &queuedScheduler{},
	}
	f.service = NewDiscoveryService(f.source, f.likes, f.recorder, f.notifier, discovery.Config{},
		discovery.WithScheduler(f.scheduler),
		discovery.WithExecutor(func(run func()) { run() }),
		discovery.WithDraw(func() float64 { return draw }),
	)
	return f
}

func TestDiscoveryStartAndLookup(t *testing.T) {
	f := newDiscoveryFixture(0.9)

	snap, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, 2, snap.Total)
	require.NotNil(t, snap.Current)
	assert.Equal(t, "luna", snap.Current.ID)

	session, err := f.service.Session("ann", snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, snap.SessionID, session.ID())

	_, err = f.service.Session("bob", snap.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.service.Session("ann", "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDiscoveryStartReplacesPreviousSession(t *testing.T) {
	f := newDiscoveryFixture(0.9)

	first, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)
	second, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)

	_, err = f.service.Session("ann", first.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.service.Session("ann", second.SessionID)
	assert.NoError(t, err)
}

func TestDiscoveryLikeRecordsMatchAndReveals(t *testing.T) {
	f := newDiscoveryFixture(0.9)
	snap, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)
	session, err := f.service.Session("ann", snap.SessionID)
	require.NoError(t, err)

	session.Like()

	assert.Equal(t, []string{"luna"}, f.likes.liked)
	require.Len(t, f.recorder.matches, 1)
	assert.Equal(t, "ann", f.recorder.matches[0].ViewerID)
	assert.Empty(t, f.notifier.revealed)

	f.scheduler.flush()

	assert.Equal(t, []string{snap.SessionID + ":luna"}, f.notifier.revealed)
	after := session.Snapshot()
	require.NotNil(t, after.PendingMatch)
	assert.Equal(t, "max", after.Current.ID)
}

func TestDiscoveryLikeWithoutMatch(t *testing.T) {
	f := newDiscoveryFixture(0.1)
	snap, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)
	session, err := f.service.Session("ann", snap.SessionID)
	require.NoError(t, err)

	session.Like()
	f.scheduler.flush()

	assert.Equal(t, []string{"luna"}, f.likes.liked)
	assert.Empty(t, f.recorder.matches)
	assert.Empty(t, f.notifier.revealed)
}

func TestDiscoveryReload(t *testing.T) {
	f := newDiscoveryFixture(0.9)
	snap, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)

	f.source.feeds["ann"] = []discovery.Candidate{dog("rex")}
	reloaded, err := f.service.Reload(context.Background(), "ann", snap.SessionID)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), reloaded.Generation)
	assert.Equal(t, 1, reloaded.Total)
	assert.Equal(t, "rex", reloaded.Current.ID)

	_, err = f.service.Reload(context.Background(), "bob", snap.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDiscoveryEnd(t *testing.T) {
	f := newDiscoveryFixture(0.9)
	snap, err := f.service.Start(context.Background(), "ann")
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.End("bob", snap.SessionID), ErrSessionNotFound)
	require.NoError(t, f.service.End("ann", snap.SessionID))
	assert.ErrorIs(t, f.service.End("ann", snap.SessionID), ErrSessionNotFound)

	_, err = f.service.Session("ann", snap.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDiscoveryStartSourceFailure(t *testing.T) {
	f := newDiscoveryFixture(0.9)
	boom := errors.New("scan failed")
	f.source.err = boom

	_, err := f.service.Start(context.Background(), "ann")
	assert.ErrorIs(t, err, boom)
}
