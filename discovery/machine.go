package discovery

import (
	"slices"
	"time"
)

const (
	DefaultDislikeDelay     = 300 * time.Millisecond
	DefaultMatchRevealDelay = 500 * time.Millisecond
)

// Config tunes a Machine. Zero fields take the package defaults.
type Config struct {
	MinSwipeDistance float64
	MatchThreshold   float64
	DislikeDelay     time.Duration
	MatchRevealDelay time.Duration
}

// State is everything one discovery session knows. Values are treated as immutable by Apply.
type State struct {
	// Generation increases on every Replace. Async events carry the generation they were
	// issued under and are dropped when it no longer matches.
	Generation   uint64
	Queue        CandidateQueue
	Matches      []Candidate
	ImageIndex   int
	Animating    bool
	Direction    Direction
	PendingMatch *Candidate

	deciding string
}

// NewState starts a session over candidates.
func NewState(candidates []Candidate) State {
	return State{Queue: NewCandidateQueue(candidates)}
}

// Event is an input to Machine.Apply.
type Event interface{ isEvent() }

type (
	// Like is a right swipe on the current candidate.
	Like struct{}
	// Dislike is a left swipe on the current candidate.
	Dislike struct{}
	// Swipe is a raw gesture; it becomes a Like, a Dislike or nothing.
	Swipe struct{ Start, End float64 }
	NextImage    struct{}
	PrevImage    struct{}
	DismissMatch struct{}
	// Replace swaps the candidate list and starts a new generation.
	Replace struct{ Candidates []Candidate }
	// LikeSettled reports the outcome of the like notification together with the match draw.
	LikeSettled struct {
		Generation  uint64
		CandidateID string
		Draw        float64
		Err         error
	}
	// DislikeElapsed fires once the dislike animation has played.
	DislikeElapsed struct{ Generation uint64 }
	// MatchRevealed fires once the like animation has played and the popup may show.
	MatchRevealed struct {
		Generation uint64
		Candidate  Candidate
	}
)

func (Like) isEvent()           {}
func (Dislike) isEvent()        {}
func (Swipe) isEvent()          {}
func (NextImage) isEvent()      {}
func (PrevImage) isEvent()      {}
func (DismissMatch) isEvent()   {}
func (Replace) isEvent()        {}
func (LikeSettled) isEvent()    {}
func (DislikeElapsed) isEvent() {}
func (MatchRevealed) isEvent()  {}

// Effect is work Apply asks its driver to perform.
type Effect interface{ isEffect() }

type (
	// PersistLike asks for the liked flag to be written to the like sink.
	// Dislikes have no counterpart; only likes are stored.
	PersistLike struct {
		Generation  uint64
		CandidateID string
	}
	// Schedule asks for Event to be fed back after Delay.
	Schedule struct {
		Delay time.Duration
		Event Event
	}
	// CancelPending asks for every outstanding timer to be stopped.
	CancelPending struct{}
	// ReportError hands a non-fatal failure to the diagnostics collaborator.
	ReportError struct {
		CandidateID string
		Err         error
	}
	// RecordMatch announces a match as soon as it is drawn.
	RecordMatch struct{ Candidate Candidate }
	// ShowMatch announces that the match popup is now pending.
	ShowMatch struct{ Candidate Candidate }
)

func (PersistLike) isEffect()   {}
func (Schedule) isEffect()      {}
func (CancelPending) isEffect() {}
func (ReportError) isEffect()   {}
func (RecordMatch) isEffect()   {}
func (ShowMatch) isEffect()     {}

// Machine holds the swipe rules. Apply is a pure function of its inputs.
type Machine struct {
	Detector         GestureDetector
	Resolver         MatchResolver
	DislikeDelay     time.Duration
	MatchRevealDelay time.Duration
}

// NewMachine builds a Machine from cfg.
func NewMachine(cfg Config) Machine {
	m := Machine{
		Detector:         NewGestureDetector(cfg.MinSwipeDistance),
		Resolver:         NewMatchResolver(DefaultMatchThreshold),
		DislikeDelay:     cfg.DislikeDelay,
		MatchRevealDelay: cfg.MatchRevealDelay,
	}
	if cfg.MatchThreshold > 0 {
		m.Resolver = NewMatchResolver(cfg.MatchThreshold)
	}
	if m.DislikeDelay <= 0 {
		m.DislikeDelay = DefaultDislikeDelay
	}
	if m.MatchRevealDelay <= 0 {
		m.MatchRevealDelay = DefaultMatchRevealDelay
	}
	return m
}

// Apply returns the state after ev along with the effects the driver must run.
// Events that do not apply to s return s unchanged and no effects.
func (m Machine) Apply(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Like:
		if s.Animating {
			return s, nil
		}
		c, ok := s.Queue.markLiked()
		if !ok {
			return s, nil
		}
		s.Animating = true
		s.Direction = Right
		s.deciding = c.ID
		return s, []Effect{PersistLike{Generation: s.Generation, CandidateID: c.ID}}

	case Dislike:
		if s.Animating {
			return s, nil
		}
		if _, ok := s.Queue.Current(); !ok {
			return s, nil
		}
		s.Animating = true
		s.Direction = Left
		return s, []Effect{Schedule{Delay: m.DislikeDelay, Event: DislikeElapsed{Generation: s.Generation}}}

	case Swipe:
		switch m.Detector.Classify(e.Start, e.End) {
		case Left:
			return m.Apply(s, Dislike{})
		case Right:
			return m.Apply(s, Like{})
		}
		return s, nil

	case LikeSettled:
		if e.Generation != s.Generation || !s.Animating || s.deciding != e.CandidateID {
			return s, nil
		}
		var effects []Effect
		if e.Err != nil {
			effects = append(effects, ReportError{CandidateID: e.CandidateID, Err: e.Err})
		}
		liked, _ := s.Queue.Current()
		if m.Resolver.Resolve(e.Draw) {
			s.Matches = append(slices.Clip(s.Matches), liked)
			effects = append(effects,
				RecordMatch{Candidate: liked},
				Schedule{Delay: m.MatchRevealDelay, Event: MatchRevealed{Generation: s.Generation, Candidate: liked}},
			)
		}
		return advance(s), effects

	case DislikeElapsed:
		if e.Generation != s.Generation || !s.Animating || s.Direction != Left {
			return s, nil
		}
		return advance(s), nil

	case MatchRevealed:
		if e.Generation != s.Generation {
			return s, nil
		}
		c := e.Candidate
		s.PendingMatch = &c
		return s, []Effect{ShowMatch{Candidate: c}}

	case NextImage:
		if c, ok := s.Queue.Current(); ok && s.ImageIndex < len(c.Images)-1 {
			s.ImageIndex++
		}
		return s, nil

	case PrevImage:
		if s.ImageIndex > 0 {
			s.ImageIndex--
		}
		return s, nil

	case DismissMatch:
		s.PendingMatch = nil
		return s, nil

	case Replace:
		return State{
			Generation: s.Generation + 1,
			Queue:      NewCandidateQueue(e.Candidates),
			Matches:    s.Matches,
		}, []Effect{CancelPending{}}
	}
	return s, nil
}

func advance(s State) State {
	s.Queue.Advance()
	s.ImageIndex = 0
	s.Animating = false
	s.deciding = ""
	return s
}
