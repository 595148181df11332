package discovery

import (
	"context"
	"log"
	"math/rand"
	"slices"
	"sync"
	"time"
)

// DefaultPersistTimeout bounds one like notification. The card stays animating
// until the sink answers, so a stuck store must not hold the viewer for long.
const DefaultPersistTimeout = 2 * time.Second

// LikeSink stores the liked flag of a candidate.
type LikeSink interface {
	SetLiked(ctx context.Context, candidateID string, liked bool) error
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// ErrorReporter receives failures a session absorbs.
type ErrorReporter interface {
	Report(sessionID string, err error)
}

// Observer is told about session changes. Calls happen outside the session lock
// and may arrive from timer or persistence goroutines.
type Observer interface {
	StateChanged(sessionID string, snap Snapshot)
	MatchFound(sessionID string, c Candidate)
	MatchRevealed(sessionID string, c Candidate)
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type logReporter struct{}

func (logReporter) Report(sessionID string, err error) {
	log.Printf("❌ discovery session %s: %v", sessionID, err)
}

// Snapshot is a read-only view of a session for the presentation layer.
// Version increases with every change so clients can drop out-of-order pushes.
type Snapshot struct {
	SessionID    string      `json:"sessionId"`
	Version      uint64      `json:"version"`
	Generation   uint64      `json:"generation"`
	Current      *Candidate  `json:"current"`
	Cursor       int         `json:"cursor"`
	Total        int         `json:"total"`
	ImageIndex   int         `json:"imageIndex"`
	IsAnimating  bool        `json:"isAnimating"`
	Direction    Direction   `json:"swipeDirection,omitempty"`
	PendingMatch *Candidate  `json:"pendingMatch"`
	Matches      []Candidate `json:"matches"`
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithConfig sets the swipe rules.
func WithConfig(cfg Config) SessionOption {
	return func(s *Session) { s.machine = NewMachine(cfg) }
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(sch Scheduler) SessionOption {
	return func(s *Session) {
		if sch != nil {
			s.scheduler = sch
		}
	}
}

// WithDraw replaces the uniform [0,1) source used for the match draw.
func WithDraw(draw func() float64) SessionOption {
	return func(s *Session) {
		if draw != nil {
			s.draw = draw
		}
	}
}

// WithSeed seeds the default match draw.
func WithSeed(seed int64) SessionOption {
	return func(s *Session) { s.draw = rand.New(rand.NewSource(seed)).Float64 }
}

// WithExecutor replaces the goroutine used for like notifications.
func WithExecutor(exec func(func())) SessionOption {
	return func(s *Session) {
		if exec != nil {
			s.exec = exec
		}
	}
}

// WithErrorReporter replaces the logging reporter.
func WithErrorReporter(r ErrorReporter) SessionOption {
	return func(s *Session) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) SessionOption {
	return func(s *Session) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithPersistTimeout bounds each like notification.
func WithPersistTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// Session drives one viewer's discovery state. All operations return immediately;
// animation delays and like notifications complete in the background.
// A nil sink accepts every like.
type Session struct {
	id             string
	machine        Machine
	sink           LikeSink
	scheduler      Scheduler
	reporter       ErrorReporter
	draw           func() float64
	exec           func(func())
	observers      []Observer
	persistTimeout time.Duration

	mu        sync.Mutex
	state     State
	version   uint64
	timers    map[uint64]Timer
	nextTimer uint64
	closed    bool
}

// NewSession starts a session over candidates.
func NewSession(id string, sink LikeSink, candidates []Candidate, opts ...SessionOption) *Session {
	s := &Session{
		id:             id,
		machine:        NewMachine(Config{}),
		sink:           sink,
		scheduler:      clockScheduler{},
		reporter:       logReporter{},
		draw:           rand.New(rand.NewSource(time.Now().UnixNano())).Float64,
		exec:           func(f func()) { go f() },
		persistTimeout: DefaultPersistTimeout,
		state:          NewState(candidates),
		timers:         make(map[uint64]Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) Like()         { s.dispatch(Like{}) }
func (s *Session) Dislike()      { s.dispatch(Dislike{}) }
func (s *Session) NextImage()    { s.dispatch(NextImage{}) }
func (s *Session) PrevImage()    { s.dispatch(PrevImage{}) }
func (s *Session) DismissMatch() { s.dispatch(DismissMatch{}) }

// Swipe classifies a horizontal gesture and applies the resulting decision.
func (s *Session) Swipe(start, end float64) Direction {
	dir := s.machine.Detector.Classify(start, end)
	s.dispatch(Swipe{Start: start, End: end})
	return dir
}

// Replace discards the current candidate list and any in-flight decision.
func (s *Session) Replace(candidates []Candidate) {
	s.dispatch(Replace{Candidates: candidates})
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close stops pending timers. Later operations and completions are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	timers := s.drainTimersLocked()
	s.mu.Unlock()
	for _, t := range timers {
		t.Stop()
	}
}

func (s *Session) dispatch(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	prev := s.state
	next, effects := s.machine.Apply(s.state, ev)
	s.state = next
	changed := stateChanged(prev, next)
	var snap Snapshot
	if changed {
		s.version++
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		for _, o := range s.observers {
			o.StateChanged(s.id, snap)
		}
	}
	for _, eff := range effects {
		s.run(eff)
	}
}

func (s *Session) run(eff Effect) {
	switch e := eff.(type) {
	case PersistLike:
		s.exec(func() { s.persistLike(e) })
	case Schedule:
		s.schedule(e.Delay, e.Event)
	case CancelPending:
		s.mu.Lock()
		timers := s.drainTimersLocked()
		s.mu.Unlock()
		for _, t := range timers {
			t.Stop()
		}
	case ReportError:
		s.reporter.Report(s.id, e.Err)
	case RecordMatch:
		for _, o := range s.observers {
			o.MatchFound(s.id, e.Candidate)
		}
	case ShowMatch:
		for _, o := range s.observers {
			o.MatchRevealed(s.id, e.Candidate)
		}
	}
}

func (s *Session) persistLike(e PersistLike) {
	var err error
	if s.sink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
		err = s.sink.SetLiked(ctx, e.CandidateID, true)
		cancel()
	}
	s.mu.Lock()
	draw := s.draw()
	s.mu.Unlock()
	s.dispatch(LikeSettled{Generation: e.Generation, CandidateID: e.CandidateID, Draw: draw, Err: err})
}

func (s *Session) schedule(d time.Duration, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	id := s.nextTimer
	s.nextTimer++
	s.timers[id] = s.scheduler.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()
		if live {
			s.dispatch(ev)
		}
	})
}

func (s *Session) drainTimersLocked() []Timer {
	timers := make([]Timer, 0, len(s.timers))
	for id, t := range s.timers {
		timers = append(timers, t)
		delete(s.timers, id)
	}
	return timers
}

func (s *Session) snapshotLocked() Snapshot {
	st := s.state
	snap := Snapshot{
		SessionID:   s.id,
		Version:     s.version,
		Generation:  st.Generation,
		Cursor:      st.Queue.Cursor(),
		Total:       st.Queue.Len(),
		ImageIndex:  st.ImageIndex,
		IsAnimating: st.Animating,
		Direction:   st.Direction,
		Matches:     slices.Clone(st.Matches),
	}
	if snap.Matches == nil {
		snap.Matches = []Candidate{}
	}
	if c, ok := st.Queue.Current(); ok {
		snap.Current = &c
	}
	if st.PendingMatch != nil {
		pm := *st.PendingMatch
		snap.PendingMatch = &pm
	}
	return snap
}

func stateChanged(a, b State) bool {
	return a.Generation != b.Generation ||
		a.Queue.Cursor() != b.Queue.Cursor() ||
		a.Queue.Len() != b.Queue.Len() ||
		a.ImageIndex != b.ImageIndex ||
		a.Animating != b.Animating ||
		a.Direction != b.Direction ||
		a.PendingMatch != b.PendingMatch ||
		len(a.Matches) != len(b.Matches)
}
