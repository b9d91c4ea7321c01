package models

// Conversation is created exactly once per match, inside the winning
// match transaction.
type Conversation struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"` // ✅ Partition Key
	Type           string `dynamodbav:"type" json:"type"`                     // PRIVATE
	MatchID        string `dynamodbav:"matchId" json:"matchId"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// ConversationParticipant links one user into a conversation.
// A PRIVATE conversation always has exactly two of these.
type ConversationParticipant struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"` // ✅ Partition Key
	UserID         string `dynamodbav:"userId" json:"userId"`                 // ✅ Sort Key
	JoinedAt       string `dynamodbav:"joinedAt" json:"joinedAt"`
}

// ✅ Conversation types
const ConversationTypePrivate = "PRIVATE"

// ✅ Define table names
const (
	ConversationsTable            = "Conversations"
	ConversationParticipantsTable = "ConversationParticipants"
)
