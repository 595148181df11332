package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"petfectly_server/discovery"
	"petfectly_server/models"
	"petfectly_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var (
	// ErrPetNotFound is returned when a pet id does not exist
	ErrPetNotFound = errors.New("pet not found")
	// ErrNotPetOwner is returned when someone other than the owner edits a pet
	ErrNotPetOwner = errors.New("only the owner can edit this pet")
)

// Profile limits enforced by UpdateProfile
const (
	MaxPetPhotos = 6
	MaxBioLength = 200
)

// ProfileUpdate carries the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Bio         *string   `json:"bio"`
	Distance    *string   `json:"distance"`
	Interests   *[]string `json:"interests"`
	Personality *[]string `json:"personality"`
	Images      *[]string `json:"images"`
}

// PetService stores pets and feeds the discovery queue
type PetService struct {
	Dynamo *DynamoService
	Now    func() time.Time
}

func (s *PetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreatePet stores a new pet, assigning an id and lastActive when missing
func (s *PetService) CreatePet(ctx context.Context, pet models.Pet) (*models.Pet, error) {
	if pet.PetID == "" {
		pet.PetID = uuid.NewString()
	}
	if pet.LastActive == "" {
		pet.LastActive = s.now().UTC().Format(time.RFC3339)
	}

	if err := s.Dynamo.PutItem(ctx, models.PetsTable, pet); err != nil {
		log.Printf("❌ Failed to create pet %s: %v", pet.Name, err)
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	log.Printf("✅ Pet created: %s (%s)", pet.Name, pet.PetID)
	return &pet, nil
}

// GetPet fetches one pet by id
func (s *PetService) GetPet(ctx context.Context, petID string) (*models.Pet, error) {
	var pet models.Pet
	err := s.Dynamo.GetItem(ctx, models.PetsTable, utils.StringKey("petId", petID), &pet)
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

// ListUnliked returns every pet that has not been liked yet, most recently active first
func (s *PetService) ListUnliked(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	err := s.Dynamo.ScanWithFilter(ctx, models.PetsTable, map[string]types.AttributeValue{
		"liked": utils.BoolValue(false),
	}, &pets)
	if err != nil {
		log.Printf("❌ Error fetching pets: %v", err)
		return nil, fmt.Errorf("failed to fetch pets: %w", err)
	}

	sort.SliceStable(pets, func(i, j int) bool {
		return pets[i].LastActive > pets[j].LastActive
	})
	if pets == nil {
		pets = []models.Pet{}
	}
	return pets, nil
}

// ListCandidates returns the discovery feed for viewerID: unliked pets the viewer does not own
func (s *PetService) ListCandidates(ctx context.Context, viewerID string) ([]discovery.Candidate, error) {
	pets, err := s.ListUnliked(ctx)
	if err != nil {
		return nil, err
	}

	feed := pets[:0]
	for _, p := range pets {
		if viewerID != "" && p.OwnerID == viewerID {
			continue
		}
		feed = append(feed, p)
	}
	return models.Candidates(feed), nil
}

// UpdateLiked sets the liked flag and returns the updated pet
func (s *PetService) UpdateLiked(ctx context.Context, petID string, liked bool) (*models.Pet, error) {
	var pet models.Pet
	err := s.Dynamo.UpdateItem(ctx, models.PetsTable,
		utils.StringKey("petId", petID),
		"SET liked = :liked",
		"attribute_exists(petId)",
		map[string]types.AttributeValue{":liked": utils.BoolValue(liked)},
		nil,
		&pet,
	)
	if errors.Is(err, ErrConditionFailed) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, err
	}

	log.Printf("💖 Pet %s liked=%t", petID, liked)
	return &pet, nil
}

// UpdateProfile edits the profile of a pet owned by ownerID. Tags and photos are
// trimmed and de-duplicated; at most MaxPetPhotos photos are kept.
func (s *PetService) UpdateProfile(ctx context.Context, ownerID, petID string, in ProfileUpdate) (*models.Pet, error) {
	pet, err := s.GetPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if ownerID == "" || pet.OwnerID != ownerID {
		return nil, ErrNotPetOwner
	}

	var sets []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	set := func(attr string, value types.AttributeValue) {
		sets = append(sets, fmt.Sprintf("#%s = :%s", attr, attr))
		names["#"+attr] = attr
		values[":"+attr] = value
	}

	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if utf8.RuneCountInString(bio) > MaxBioLength {
			return nil, fmt.Errorf("%w: bio must be at most %d characters", ErrInvalidInput, MaxBioLength)
		}
		set("bio", utils.StringValue(bio))
	}
	if in.Distance != nil {
		set("distance", utils.StringValue(strings.TrimSpace(*in.Distance)))
	}
	for _, field := range []struct {
		attr string
		list *[]string
	}{
		{"interests", in.Interests},
		{"personality", in.Personality},
		{"images", in.Images},
	} {
		if field.list == nil {
			continue
		}
		cleaned := cleanList(*field.list)
		if field.attr == "images" && len(cleaned) > MaxPetPhotos {
			return nil, fmt.Errorf("%w: at most %d photos are allowed", ErrInvalidInput, MaxPetPhotos)
		}
		set(field.attr, utils.StringList(cleaned))
	}
	set("lastActive", utils.StringValue(s.now().UTC().Format(time.RFC3339)))

	var updated models.Pet
	err = s.Dynamo.UpdateItem(ctx, models.PetsTable,
		utils.StringKey("petId", petID),
		"SET "+strings.Join(sets, ", "),
		"attribute_exists(petId)",
		values,
		names,
		&updated,
	)
	if errors.Is(err, ErrConditionFailed) {
		return nil, ErrPetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update pet profile: %w", err)
	}

	log.Printf("✅ Pet profile updated: %s", petID)
	return &updated, nil
}

// cleanList trims entries and drops blanks and repeats, keeping order
func cleanList(list []string) []string {
	out := make([]string, 0, len(list))
	seen := map[string]bool{}
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SetLiked satisfies discovery.LikeSink
func (s *PetService) SetLiked(ctx context.Context, petID string, liked bool) error {
	_, err := s.UpdateLiked(ctx, petID, liked)
	return err
}
