package models

// PetInfo is the owner's own pet as entered during registration
type PetInfo struct {
	PetID string `dynamodbav:"petId" json:"petId"`
	Name  string `dynamodbav:"name" json:"name"`
	Breed string `dynamodbav:"breed" json:"breed"`
	Age   string `dynamodbav:"age" json:"age"`
	Photo string `dynamodbav:"photo,omitempty" json:"photo,omitempty"`
}

// User is an account that can log in and swipe. Email is the partition key;
// the password hash never leaves the server.
type User struct {
	Email        string  `dynamodbav:"email" json:"email"`
	UserID       string  `dynamodbav:"userId" json:"id"`
	FullName     string  `dynamodbav:"fullName" json:"fullName"`
	PasswordHash string  `dynamodbav:"passwordHash" json:"-"`
	PetInfo      PetInfo `dynamodbav:"petInfo" json:"petInfo"`
	CreatedAt    string  `dynamodbav:"createdAt" json:"createdAt"`
}
