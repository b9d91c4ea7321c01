package models

// Match is the symmetric record created once both directed LIKE swipes
// exist between two users. UserAID is always the smaller of the two ids,
// so the (userAId, userBId) key is identical no matter which user's like
// completed the pair.
type Match struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"`   // ✅ GSI: matchId-index
	UserAID   string `dynamodbav:"userAId" json:"userAId"`   // ✅ Partition Key (smaller id)
	UserBID   string `dynamodbav:"userBId" json:"userBId"`   // ✅ Sort Key (larger id), GSI: userBId-index
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// CanonicalPair sorts two user ids into the fixed total order used as
// the Match key. Pure function of the ids; never depends on which
// request reached the coordinator first.
func CanonicalPair(userID1, userID2 string) (userAID, userBID string) {
	if userID1 < userID2 {
		return userID1, userID2
	}
	return userID2, userID1
}

// OtherParticipant returns the participant that is not userID.
func (m *Match) OtherParticipant(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}

// HasParticipant reports whether userID is one of the two matched users.
func (m *Match) HasParticipant(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// ✅ Define table name
const MatchesTable = "Matches"

// ✅ GSI for looking up a match by its id
const MatchIDIndex = "matchId-index"

// ✅ GSI for listing matches where the user is userBId
const UserBIDIndex = "userBId-index"
