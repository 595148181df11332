package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"petfectly_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DefaultMessageLimit caps a message page when the caller does not ask for one
const DefaultMessageLimit = 50

// ChatService struct
type ChatService struct {
	Dynamo *DynamoService
	Now    func() time.Time
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetMessagesByMatchID fetches messages for a given matchId, latest first
func (s *ChatService) GetMessagesByMatchID(ctx context.Context, matchID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}

	var messages []models.Message
	err := s.Dynamo.QueryItems(ctx, models.MessagesTable,
		"#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"},
		QueryOptions{Limit: int32(limit), LatestFirst: true},
		&messages,
	)
	if err != nil {
		log.Printf("❌ Error querying messages: %v", err)
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// SendMessage stores a new unread message in the Messages table
func (s *ChatService) SendMessage(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if matchID == "" || content == "" {
		return nil, fmt.Errorf("%w: matchId and content are required", ErrInvalidInput)
	}

	message := models.Message{
		MatchID:   matchID,
		CreatedAt: s.now().UTC().Format(models.TimestampLayout),
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		IsUnread:  true,
	}

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		log.Printf("❌ Failed to store message: %v", err)
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	log.Printf("📩 Message stored for match %s", matchID)
	return &message, nil
}
