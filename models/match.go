package models

// Match records a pet the viewer liked and matched with. Both the viewer and
// the pet's owner take part in the match chat.
type Match struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`           // ✅ Partition Key
	ViewerID  string `dynamodbav:"viewerId" json:"viewerId"`         // GSI partition key
	OwnerID   string `dynamodbav:"ownerId,omitempty" json:"ownerId"` // GSI partition key, owner of the pet
	PetID     string `dynamodbav:"petId" json:"petId"`               // Matched pet
	PetName   string `dynamodbav:"petName" json:"petName"`           // Denormalized for the messages list
	PetPhoto  string `dynamodbav:"petPhoto" json:"petPhoto"`         // First photo of the pet
	Status    string `dynamodbav:"status" json:"status"`             // active, archived
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`       // GSI sort key
}
