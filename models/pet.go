package models

import "petfectly_server/discovery"

// Pet is a profile shown in the discovery feed
type Pet struct {
	PetID       string   `dynamodbav:"petId" json:"id"`                            // ✅ Partition Key
	OwnerID     string   `dynamodbav:"ownerId,omitempty" json:"ownerId,omitempty"` // User who registered the pet
	Name        string   `dynamodbav:"name" json:"name"`                           // Pet name
	Age         string   `dynamodbav:"age" json:"age"`                             // Free-form age label, e.g. "2 years"
	Breed       string   `dynamodbav:"breed" json:"breed"`                         // Breed label
	Distance    string   `dynamodbav:"distance,omitempty" json:"distance"`         // Distance label
	Bio         string   `dynamodbav:"bio,omitempty" json:"bio"`                   // Short biography
	Interests   []string `dynamodbav:"interests,omitempty" json:"interests"`       // Interest tags
	Personality []string `dynamodbav:"personality,omitempty" json:"personality"`   // Personality tags
	Images      []string `dynamodbav:"images,omitempty" json:"images"`             // Photo URLs or object keys
	Liked       bool     `dynamodbav:"liked" json:"liked"`                         // Liked by the viewer
	LastActive  string   `dynamodbav:"lastActive,omitempty" json:"lastActive"`     // RFC3339 timestamp
}

// Candidate converts the stored pet into a discovery candidate
func (p Pet) Candidate() discovery.Candidate {
	return discovery.Candidate{
		ID:          p.PetID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Age:         p.Age,
		Breed:       p.Breed,
		Distance:    p.Distance,
		Bio:         p.Bio,
		Interests:   p.Interests,
		Personality: p.Personality,
		Images:      p.Images,
		Liked:       p.Liked,
		LastActive:  p.LastActive,
	}
}

// Candidates converts a list of pets, keeping order
func Candidates(pets []Pet) []discovery.Candidate {
	out := make([]discovery.Candidate, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.Candidate())
	}
	return out
}
