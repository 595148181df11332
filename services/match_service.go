package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"petfectly_server/discovery"
	"petfectly_server/models"
	"petfectly_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ErrMatchNotFound is returned when a match id does not exist
var ErrMatchNotFound = errors.New("match not found")

type MatchService struct {
	Dynamo *DynamoService
	Now    func() time.Time
}

func (s *MatchService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RecordMatch stores a match between viewerID and the matched candidate
func (s *MatchService) RecordMatch(ctx context.Context, viewerID string, c discovery.Candidate) (*models.Match, error) {
	match := models.Match{
		MatchID:   uuid.NewString(),
		ViewerID:  viewerID,
		OwnerID:   c.OwnerID,
		PetID:     c.ID,
		PetName:   c.Name,
		PetPhoto:  utils.FirstOrEmpty(c.Images),
		Status:    models.MatchStatusActive,
		CreatedAt: s.now().UTC().Format(models.TimestampLayout),
	}

	if err := s.Dynamo.PutItem(ctx, models.MatchesTable, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Printf("🎉 Match created: %s ❤️ %s", viewerID, c.Name)
	return &match, nil
}

// GetMatches lists every match userID takes part in, as the swiper or as the
// pet's owner, newest first
func (s *MatchService) GetMatches(ctx context.Context, userID string) ([]models.Match, error) {
	matches := []models.Match{}
	seen := map[string]bool{}
	for _, side := range []struct{ attr, index string }{
		{"viewerId", models.MatchesViewerIndex},
		{"ownerId", models.MatchesOwnerIndex},
	} {
		var page []models.Match
		err := s.Dynamo.QueryItems(ctx, models.MatchesTable,
			side.attr+" = :user",
			map[string]types.AttributeValue{":user": utils.StringValue(userID)},
			nil,
			QueryOptions{IndexName: side.index, LatestFirst: true},
			&page,
		)
		if err != nil {
			log.Printf("❌ Error fetching matches for %s: %v", userID, err)
			return nil, fmt.Errorf("failed to fetch matches: %w", err)
		}
		for _, m := range page {
			if !seen[m.MatchID] {
				seen[m.MatchID] = true
				matches = append(matches, m)
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})
	return matches, nil
}

// IsParticipant reports whether userID may read and write the match chat
func IsParticipant(m *models.Match, userID string) bool {
	return userID != "" && (m.ViewerID == userID || m.OwnerID == userID)
}

// GetMatch fetches one match by id
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	var match models.Match
	err := s.Dynamo.GetItem(ctx, models.MatchesTable, utils.StringKey("matchId", matchID), &match)
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}
