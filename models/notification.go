package models

// Notification is a persisted in-app notification row. Delivery to
// devices is handled elsewhere; this subsystem only writes the rows.
type Notification struct {
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"` // ✅ Sort Key
	ReceiverID     string `dynamodbav:"receiverId" json:"receiverId"`         // ✅ Partition Key
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Type           string `dynamodbav:"type" json:"type"`
	ReferenceID    string `dynamodbav:"referenceId" json:"referenceId"` // matchId for MATCH_CREATED
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// ✅ Notification types
const NotificationTypeMatchCreated = "MATCH_CREATED"

// ✅ Define table name
const NotificationsTable = "Notifications"
