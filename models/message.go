package models

// Message is one chat line inside a match
type Message struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`     // ✅ Partition Key
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"` // ✅ Sort Key
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Content   string `dynamodbav:"content" json:"content"`
	IsUnread  bool   `dynamodbav:"isUnread" json:"isUnread"`
}
