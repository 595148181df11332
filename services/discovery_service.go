package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"petfectly_server/discovery"
	"petfectly_server/models"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown sessions and sessions owned by someone else
var ErrSessionNotFound = errors.New("discovery session not found")

// CandidateSource supplies the discovery feed for a viewer
type CandidateSource interface {
	ListCandidates(ctx context.Context, viewerID string) ([]discovery.Candidate, error)
}

// MatchRecorder persists matches found during discovery
type MatchRecorder interface {
	RecordMatch(ctx context.Context, viewerID string, c discovery.Candidate) (*models.Match, error)
}

type ownedSession struct {
	viewerID string
	session  *discovery.Session
}

// DiscoveryService keeps one swipe session per viewer
type DiscoveryService struct {
	candidates CandidateSource
	likes      discovery.LikeSink
	matches    MatchRecorder
	notifier   discovery.Observer
	config     discovery.Config
	options    []discovery.SessionOption

	mu       sync.Mutex
	sessions map[string]*ownedSession
	byViewer map[string]string
}

// NewDiscoveryService wires the session registry. notifier may be nil; options are
// applied to every session after the service's own.
func NewDiscoveryService(
	candidates CandidateSource,
	likes discovery.LikeSink,
	matches MatchRecorder,
	notifier discovery.Observer,
	cfg discovery.Config,
	options ...discovery.SessionOption,
) *DiscoveryService {
	return &DiscoveryService{
		candidates: candidates,
		likes:      likes,
		matches:    matches,
		notifier:   notifier,
		config:     cfg,
		options:    options,
		sessions:   make(map[string]*ownedSession),
		byViewer:   make(map[string]string),
	}
}

// Start loads the viewer's feed and opens a new session, closing any previous one
func (s *DiscoveryService) Start(ctx context.Context, viewerID string) (discovery.Snapshot, error) {
	candidates, err := s.candidates.ListCandidates(ctx, viewerID)
	if err != nil {
		return discovery.Snapshot{}, fmt.Errorf("failed to load candidates: %w", err)
	}

	id := uuid.NewString()
	opts := []discovery.SessionOption{
		discovery.WithConfig(s.config),
		discovery.WithObserver(matchPersister{viewerID: viewerID, recorder: s.matches}),
	}
	if s.notifier != nil {
		opts = append(opts, discovery.WithObserver(s.notifier))
	}
	opts = append(opts, s.options...)
	session := discovery.NewSession(id, s.likes, candidates, opts...)

	s.mu.Lock()
	var previous *ownedSession
	if prevID, ok := s.byViewer[viewerID]; ok {
		previous = s.sessions[prevID]
		delete(s.sessions, prevID)
	}
	s.sessions[id] = &ownedSession{viewerID: viewerID, session: session}
	s.byViewer[viewerID] = id
	s.mu.Unlock()

	if previous != nil {
		previous.session.Close()
	}

	log.Printf("🐾 Discovery session %s started for %s with %d candidates", id, viewerID, len(candidates))
	return session.Snapshot(), nil
}

// Session returns the viewer's session with the given id
func (s *DiscoveryService) Session(viewerID, sessionID string) (*discovery.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned, ok := s.sessions[sessionID]
	if !ok || owned.viewerID != viewerID {
		return nil, ErrSessionNotFound
	}
	return owned.session, nil
}

// Reload fetches a fresh feed and replaces the session's queue with it
func (s *DiscoveryService) Reload(ctx context.Context, viewerID, sessionID string) (discovery.Snapshot, error) {
	session, err := s.Session(viewerID, sessionID)
	if err != nil {
		return discovery.Snapshot{}, err
	}
	candidates, err := s.candidates.ListCandidates(ctx, viewerID)
	if err != nil {
		return discovery.Snapshot{}, fmt.Errorf("failed to load candidates: %w", err)
	}
	session.Replace(candidates)
	return session.Snapshot(), nil
}

// End closes and forgets a session
func (s *DiscoveryService) End(viewerID, sessionID string) error {
	s.mu.Lock()
	owned, ok := s.sessions[sessionID]
	if !ok || owned.viewerID != viewerID {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	if s.byViewer[viewerID] == sessionID {
		delete(s.byViewer, viewerID)
	}
	s.mu.Unlock()

	owned.session.Close()
	return nil
}

// Close ends every session
func (s *DiscoveryService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*ownedSession)
	s.byViewer = make(map[string]string)
	s.mu.Unlock()

	for _, owned := range sessions {
		owned.session.Close()
	}
}

// matchPersister stores matches as soon as they are drawn, so a reload before the popup does not lose them
type matchPersister struct {
	viewerID string
	recorder MatchRecorder
}

func (m matchPersister) StateChanged(string, discovery.Snapshot) {}

func (m matchPersister) MatchRevealed(string, discovery.Candidate) {}

func (m matchPersister) MatchFound(sessionID string, c discovery.Candidate) {
	if m.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := m.recorder.RecordMatch(ctx, m.viewerID, c); err != nil {
		log.Printf("❌ Session %s: failed to record match with %s: %v", sessionID, c.ID, err)
	}
}
