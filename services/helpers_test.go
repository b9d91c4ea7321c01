package services

import (
	"context"
	"testing"
	"time"

	"kindler_server/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full service graph over the in-memory fake store.
type testEnv struct {
	fake          *fakeDynamo
	dynamo        *DynamoService
	profiles      *ProfileService
	blocks        *BlockService
	matches       *MatchService
	swipes        *SwipeService
	discovery     *DiscoveryService
	notifications *NotificationService
}

func newTestEnv() *testEnv {
	fake := newFakeDynamo()
	dynamo := &DynamoService{Client: fake}
	profiles := &ProfileService{Dynamo: dynamo}
	blocks := &BlockService{Dynamo: dynamo}
	matches := &MatchService{Dynamo: dynamo, Profile: profiles}
	return &testEnv{
		fake:          fake,
		dynamo:        dynamo,
		profiles:      profiles,
		blocks:        blocks,
		matches:       matches,
		swipes:        &SwipeService{Dynamo: dynamo, Profile: profiles, Blocks: blocks, Match: matches},
		discovery:     &DiscoveryService{Dynamo: dynamo, Profile: profiles, Blocks: blocks},
		notifications: &NotificationService{Dynamo: dynamo},
	}
}

// activeProfile builds a minimal swipeable profile.
func activeProfile(userID string) models.UserProfile {
	return models.UserProfile{
		UserID:    userID,
		FullName:  "User " + userID,
		Gender:    "female",
		DOB:       "1995-06-15",
		IsActive:  true,
		Photos:    []string{"profile-pics/" + userID + ".jpg"},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (e *testEnv) seedProfile(t *testing.T, profile models.UserProfile) {
	t.Helper()
	require.NoError(t, e.dynamo.PutItem(context.Background(), models.UserProfilesTable, profile))
}

func (e *testEnv) seedActiveProfiles(t *testing.T, userIDs ...string) {
	t.Helper()
	for _, id := range userIDs {
		e.seedProfile(t, activeProfile(id))
	}
}

func (e *testEnv) seedSwipe(t *testing.T, fromUserID, toUserID, action string) {
	t.Helper()
	swipe := models.Swipe{
		SwipeID:    uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Action:     action,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	require.NoError(t, e.dynamo.PutItem(context.Background(), models.SwipesTable, swipe))
}

func (e *testEnv) seedBlock(t *testing.T, blockerID, blockedUserID string) {
	t.Helper()
	block := models.Block{
		BlockerID:     blockerID,
		BlockedUserID: blockedUserID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	require.NoError(t, e.dynamo.PutItem(context.Background(), models.BlocksTable, block))
}
