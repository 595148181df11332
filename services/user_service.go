package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"petfectly_server/auth"
	"petfectly_server/models"
	"petfectly_server/utils"

	"github.com/google/uuid"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// RegisterInput is the registration form: the account plus the owner's pet
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PetName  string `json:"petName"`
	PetBreed string `json:"petBreed"`
	PetAge   string `json:"petAge"`
	PetPhoto string `json:"petPhoto"`
}

// UserService manages accounts
type UserService struct {
	Dynamo     *DynamoService
	Pets       *PetService
	BcryptCost int
	Now        func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (in RegisterInput) validate() error {
	var missing []string
	for name, v := range map[string]string{
		"fullName": in.FullName,
		"email":    in.Email,
		"password": in.Password,
		"petName":  in.PetName,
		"petBreed": in.PetBreed,
		"petAge":   in.PetAge,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !emailPattern.MatchString(NormalizeEmail(in.Email)) {
		return fmt.Errorf("%w: please enter a valid email address", ErrInvalidInput)
	}
	if len(in.Password) < auth.MinPasswordLength {
		return fmt.Errorf("%w: %v", ErrInvalidInput, auth.ErrPasswordTooShort)
	}
	return nil
}

// Register creates the account and seeds a discoverable pet for it
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, *models.Pet, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	createdAt := s.now().UTC().Format(time.RFC3339)
	petID := uuid.NewString()
	user := models.User{
		Email:        NormalizeEmail(in.Email),
		UserID:       uuid.NewString(),
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: hash,
		PetInfo: models.PetInfo{
			PetID: petID,
			Name:  in.PetName,
			Breed: in.PetBreed,
			Age:   in.PetAge,
			Photo: in.PetPhoto,
		},
		CreatedAt: createdAt,
	}

	err = s.Dynamo.PutItemIfNotExists(ctx, models.UsersTable, user, "email")
	if errors.Is(err, ErrConditionFailed) {
		return nil, nil, ErrUserExists
	}
	if err != nil {
		log.Printf("❌ Failed to create user %s: %v", user.Email, err)
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pet := models.Pet{
		PetID:      petID,
		OwnerID:    user.UserID,
		Name:       in.PetName,
		Breed:      in.PetBreed,
		Age:        in.PetAge,
		Liked:      false,
		LastActive: createdAt,
	}
	if in.PetPhoto != "" {
		pet.Images = []string{in.PetPhoto}
	}
	created, err := s.Pets.CreatePet(ctx, pet)
	if err != nil {
		if delErr := s.Dynamo.DeleteItem(ctx, models.UsersTable, utils.StringKey("email", user.Email)); delErr != nil {
			log.Printf("❌ Failed to roll back user %s: %v", user.Email, delErr)
		}
		return nil, nil, err
	}

	log.Printf("✅ Registered %s with pet %s", user.Email, pet.Name)
	return &user, created, nil
}

// Authenticate checks credentials and returns the account
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, email)
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser fetches an account by email
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.Dynamo.GetItem(ctx, models.UsersTable, utils.StringKey("email", NormalizeEmail(email)), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every account
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.Dynamo.ScanWithFilter(ctx, models.UsersTable, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
