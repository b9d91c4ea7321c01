package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DiscoveryService computes the swipeable candidate feed for a user.
// Reads are not serialized against concurrent swipes; a just-swiped
// candidate may transiently reappear in an in-flight request.
type DiscoveryService struct {
	Dynamo  *DynamoService
	Profile *ProfileService
	Blocks  *BlockService
	Media   *MediaService // optional; nil leaves raw photo keys out of responses
}

// DiscoveryResult is one page of candidates plus pagination metadata.
type DiscoveryResult struct {
	Data       []models.Candidate `json:"data"`
	Pagination models.Pagination  `json:"pagination"`
}

// GetCandidates returns a page of swipeable profiles for requesterID.
// Excluded: the requester, anyone the requester already swiped, and
// anyone in a block relationship with the requester in either
// direction. The returned page is shuffled in place; the shuffle is
// page-local, not a random sample of the whole candidate pool.
func (s *DiscoveryService) GetCandidates(ctx context.Context, requesterID string, page, limit int) (*DiscoveryResult, error) {
	requester, err := s.Profile.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrProfileNotFound
	}

	excluded, err := s.exclusionSet(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prefs := requester.Preferences

	var profiles []models.UserProfile
	err = s.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		var candidate models.UserProfile
		if err := attributevalue.UnmarshalMap(item, &candidate); err != nil {
			return false
		}
		if !candidate.IsActive || len(candidate.Photos) == 0 {
			return false
		}
		if excluded[candidate.UserID] {
			return false
		}
		if prefs.GenderPreference != "" && candidate.Gender != prefs.GenderPreference {
			return false
		}
		if prefs.MinAge > 0 || prefs.MaxAge > 0 {
			age := candidate.Age(now)
			if prefs.MinAge > 0 && age < prefs.MinAge {
				return false
			}
			if prefs.MaxAge > 0 && age > prefs.MaxAge {
				return false
			}
		}
		return true
	}, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to scan candidates: %w", err)
	}

	total := len(profiles)
	pageProfiles := paginate(profiles, page, limit)

	// Shuffle only the returned page, not the whole candidate pool, so
	// earlier-keyed profiles still surface first across pages.
	rand.Shuffle(len(pageProfiles), func(i, j int) {
		pageProfiles[i], pageProfiles[j] = pageProfiles[j], pageProfiles[i]
	})

	candidates := make([]models.Candidate, 0, len(pageProfiles))
	for _, profile := range pageProfiles {
		candidate := models.Candidate{
			UserID:   profile.UserID,
			FullName: profile.FullName,
			Bio:      profile.Bio,
			Gender:   profile.Gender,
			Age:      profile.Age(now),
		}
		if s.Media != nil {
			candidate.PhotoURLs = s.Media.PhotoURLs(ctx, profile.Photos)
		}
		candidates = append(candidates, candidate)
	}

	log.Printf("✅ Discovery for %s: %d candidates total, returning page %d (%d)", requesterID, total, page, len(candidates))
	return &DiscoveryResult{
		Data:       candidates,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// exclusionSet gathers every user the requester must never be shown:
// self, previously swiped users, and blocks in either direction.
func (s *DiscoveryService) exclusionSet(ctx context.Context, requesterID string) (map[string]bool, error) {
	excluded, err := s.Blocks.BlockedUserIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	excluded[requesterID] = true

	keyCondition := "fromUserId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: requesterID},
	}
	items, err := s.Dynamo.QueryItems(ctx, models.SwipesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipe history: %w", err)
	}
	for _, item := range items {
		var swipe models.Swipe
		if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
			continue
		}
		excluded[swipe.ToUserID] = true
	}

	return excluded, nil
}

// paginate slices out one page of profiles. Pages are 1-based.
func paginate(profiles []models.UserProfile, page, limit int) []models.UserProfile {
	start, end := pageBounds(len(profiles), page, limit)
	return profiles[start:end]
}
