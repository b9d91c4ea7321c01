package models

// Swipe is a directed, immutable record of interest or disinterest
// from one user toward another. At most one swipe ever exists per
// ordered (fromUserId, toUserId) pair.
type Swipe struct {
	SwipeID    string `dynamodbav:"swipeId" json:"swipeId"`
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"` // ✅ Partition Key
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`     // ✅ Sort Key
	Action     string `dynamodbav:"action" json:"action"`         // LIKE, PASS
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// ✅ Swipe actions
const (
	SwipeActionLike = "LIKE"
	SwipeActionPass = "PASS"
)

// ✅ Define table name
const SwipesTable = "Swipes"
