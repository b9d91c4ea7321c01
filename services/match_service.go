package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MatchService owns match creation and match reads. Two users liking
// each other at the same instant is the normal case here, not an edge
// case: the Matches table's canonical (userAId, userBId) key is the
// only arbiter of that race. There are no in-process locks anywhere.
type MatchService struct {
	Dynamo  *DynamoService
	Profile *ProfileService
}

// SwipeResult is the outcome of recording a swipe. Match and
// SideEffectsApplied are only meaningful when Matched is true.
type SwipeResult struct {
	Swipe              *models.Swipe `json:"swipe"`
	Matched            bool          `json:"matched"`
	Match              *models.Match `json:"match,omitempty"`
	SideEffectsApplied bool          `json:"sideEffectsApplied,omitempty"`
}

// MatchDetail is one match plus the other participant's profile.
type MatchDetail struct {
	Match       *models.Match       `json:"match"`
	MatchedUser *models.UserProfile `json:"matchedUser,omitempty"`
}

// MatchListResult is one page of a user's matches.
type MatchListResult struct {
	Data       []models.MatchSummary `json:"data"`
	Pagination models.Pagination     `json:"pagination"`
}

// CoordinateLike records a LIKE swipe and, when the reciprocal LIKE
// already exists, creates the match with its side effects. Every
// outcome commits through a single TransactWriteItems call, so an
// aborted attempt leaves nothing behind, not even the swipe row.
func (s *MatchService) CoordinateLike(ctx context.Context, fromUserID, toUserID string) (*SwipeResult, error) {
	swipe := newSwipe(fromUserID, toUserID, models.SwipeActionLike)

	reciprocal, err := s.getReciprocalLike(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if reciprocal != nil {
		return s.createMatch(ctx, swipe)
	}

	// No reciprocal like observed. Commit the swipe together with a
	// condition asserting there is still no reciprocal LIKE, so a like
	// that lands concurrently from the other side cannot be missed. A
	// reciprocal PASS does not trip the condition.
	items := []types.TransactWriteItem{
		putSwipeItem(swipe),
		checkNoReciprocalLikeItem(fromUserID, toUserID),
	}
	err = s.Dynamo.TransactWriteItems(ctx, items)
	if err == nil {
		return &SwipeResult{Swipe: swipe, Matched: false}, nil
	}

	reasons := CancellationReasons(err)
	switch {
	case ReasonIsConditionalCheckFailed(reasons, 0):
		return nil, ErrAlreadySwiped
	case ReasonIsConditionalCheckFailed(reasons, 1):
		// The other side's like committed between our read and our
		// write. Nothing of ours committed; run the match path.
		log.Printf("🔄 Reciprocal like from %s landed concurrently; creating match", toUserID)
		return s.createMatch(ctx, swipe)
	default:
		return nil, fmt.Errorf("failed to record like %s -> %s: %w", fromUserID, toUserID, err)
	}
}

// createMatch commits the swipe, the canonical match row, and all side
// effects atomically. Exactly one of two racing transactions can win
// the match insert; the loser adopts the winner's row with one extra
// read instead of retrying.
func (s *MatchService) createMatch(ctx context.Context, swipe *models.Swipe) (*SwipeResult, error) {
	fromUserID, toUserID := swipe.FromUserID, swipe.ToUserID
	userAID, userBID := models.CanonicalPair(fromUserID, toUserID)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	match := &models.Match{
		MatchID:   uuid.NewString(),
		UserAID:   userAID,
		UserBID:   userBID,
		CreatedAt: now,
	}

	items := []types.TransactWriteItem{
		putSwipeItem(swipe),                           // 0
		checkReciprocalLikeItem(fromUserID, toUserID), // 1
		putMatchItem(match),                           // 2
	}
	items = append(items, sideEffectItems(match, fromUserID, toUserID, now)...) // 3..7

	err := s.Dynamo.TransactWriteItems(ctx, items)
	if err == nil {
		log.Printf("🎉 Match created for {%s, %s} (matchId=%s)", userAID, userBID, match.MatchID)
		return &SwipeResult{Swipe: swipe, Matched: true, Match: match, SideEffectsApplied: true}, nil
	}

	reasons := CancellationReasons(err)
	switch {
	case ReasonIsConditionalCheckFailed(reasons, 0):
		return nil, ErrAlreadySwiped
	case ReasonIsConditionalCheckFailed(reasons, 2):
		// Lost the race: the other side's transaction already created
		// this match along with its side effects. The conflict is
		// authoritative; adopt the existing row.
		return s.adoptExistingMatch(ctx, swipe)
	default:
		return nil, fmt.Errorf("failed to create match for %s -> %s: %w", fromUserID, toUserID, err)
	}
}

// adoptExistingMatch commits the loser's swipe row (still guarded by
// its own uniqueness and the reciprocal-like condition) and re-reads
// the match the winning transaction created. Side effects are never
// re-run.
func (s *MatchService) adoptExistingMatch(ctx context.Context, swipe *models.Swipe) (*SwipeResult, error) {
	items := []types.TransactWriteItem{
		putSwipeItem(swipe),
		checkReciprocalLikeItem(swipe.FromUserID, swipe.ToUserID),
	}
	err := s.Dynamo.TransactWriteItems(ctx, items)
	if err != nil {
		if ReasonIsConditionalCheckFailed(CancellationReasons(err), 0) {
			return nil, ErrAlreadySwiped
		}
		return nil, fmt.Errorf("failed to record like after lost match race: %w", err)
	}

	match, err := s.getMatchByPair(ctx, swipe.FromUserID, swipe.ToUserID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		// Matches are never deleted, so the winning row must exist.
		return nil, fmt.Errorf("match row missing after uniqueness conflict for %s -> %s", swipe.FromUserID, swipe.ToUserID)
	}

	log.Printf("ℹ️ Adopted existing match %s for {%s, %s}", match.MatchID, match.UserAID, match.UserBID)
	return &SwipeResult{Swipe: swipe, Matched: true, Match: match, SideEffectsApplied: false}, nil
}

// GetMatches lists the caller's matches, newest first, joined with the
// other participant's profile.
func (s *MatchService) GetMatches(ctx context.Context, userID string, page, limit int) (*MatchListResult, error) {
	var matches []models.Match

	// Matches where the caller is the smaller id
	keyCondition := "userAId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := s.Dynamo.QueryItems(ctx, models.MatchesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	matches = appendMatches(matches, items)

	// Matches where the caller is the larger id
	indexCondition := "userBId = :userId"
	items, err = s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.UserBIDIndex, indexCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	matches = appendMatches(matches, items)

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})

	total := len(matches)
	start, end := pageBounds(total, page, limit)
	pageMatches := matches[start:end]

	summaries := make([]models.MatchSummary, 0, len(pageMatches))
	for i := range pageMatches {
		match := pageMatches[i]
		otherID := match.OtherParticipant(userID)
		summary := models.MatchSummary{
			MatchID:       match.MatchID,
			MatchedUserID: otherID,
			CreatedAt:     match.CreatedAt,
		}
		profile, err := s.Profile.GetProfile(ctx, otherID)
		if err != nil {
			log.Printf("⚠️ Failed to join profile %s for match %s: %v", otherID, match.MatchID, err)
		} else {
			summary.MatchedUser = profile
		}
		summaries = append(summaries, summary)
	}

	return &MatchListResult{
		Data:       summaries,
		Pagination: models.NewPagination(page, limit, total),
	}, nil
}

// GetMatchByID fetches one match and enforces that userID participates
// in it.
func (s *MatchService) GetMatchByID(ctx context.Context, userID, matchID string) (*MatchDetail, error) {
	keyCondition := "matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	if len(items) == 0 {
		return nil, ErrMatchNotFound
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	if !match.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	detail := &MatchDetail{Match: &match}
	profile, err := s.Profile.GetProfile(ctx, match.OtherParticipant(userID))
	if err == nil {
		detail.MatchedUser = profile
	}
	return detail, nil
}

// getReciprocalLike reads Swipe(toUserID -> fromUserID) with a strongly
// consistent read and returns it only when it is a LIKE.
func (s *MatchService) getReciprocalLike(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error) {
	key := map[string]types.AttributeValue{
		"fromUserId": &types.AttributeValueMemberS{Value: toUserID},
		"toUserId":   &types.AttributeValueMemberS{Value: fromUserID},
	}
	item, err := s.Dynamo.GetItemConsistent(ctx, models.SwipesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check reciprocal swipe: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reciprocal swipe: %w", err)
	}
	if swipe.Action != models.SwipeActionLike {
		return nil, nil
	}
	return &swipe, nil
}

// getMatchByPair reads the match row under the canonical pair key.
func (s *MatchService) getMatchByPair(ctx context.Context, userID1, userID2 string) (*models.Match, error) {
	userAID, userBID := models.CanonicalPair(userID1, userID2)
	key := map[string]types.AttributeValue{
		"userAId": &types.AttributeValueMemberS{Value: userAID},
		"userBId": &types.AttributeValueMemberS{Value: userBID},
	}
	item, err := s.Dynamo.GetItemConsistent(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match for pair {%s, %s}: %w", userAID, userBID, err)
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

func appendMatches(matches []models.Match, items []map[string]types.AttributeValue) []models.Match {
	for _, item := range items {
		var match models.Match
		if err := attributevalue.UnmarshalMap(item, &match); err != nil {
			log.Printf("⚠️ Skipping unreadable match row: %v", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches
}

func newSwipe(fromUserID, toUserID, action string) *models.Swipe {
	return &models.Swipe{
		SwipeID:    uuid.NewString(),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Action:     action,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
}
