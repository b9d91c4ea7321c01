package models

// Block records that blockerId blocked blockedUserId. This subsystem
// only ever reads blocks; it never creates or removes them.
type Block struct {
	BlockerID     string `dynamodbav:"blockerId" json:"blockerId"`         // ✅ Partition Key
	BlockedUserID string `dynamodbav:"blockedUserId" json:"blockedUserId"` // ✅ Sort Key, GSI: blockedUserId-index
	CreatedAt     string `dynamodbav:"createdAt" json:"createdAt"`
}

// ✅ Define table name
const BlocksTable = "Blocks"

// ✅ GSI for the reverse-direction block check
const BlockedUserIDIndex = "blockedUserId-index"
