package models

// Notification kinds emitted by the engine
const (
	NotificationKindMatch     = "match"
	NotificationKindProximity = "proximity"
	NotificationKindCodeword  = "codeword"
	NotificationKindLike      = "like"
)

// Notification is an append-only per-user record. Only the Seen flag ever
// mutates after creation, and only from false to true.
type Notification struct {
	UserID         string            `dynamodbav:"userId" json:"userId"`   // Partition Key
	SortKey        string            `dynamodbav:"sortKey" json:"sortKey"` // Sort Key: "<createdAt>#<notifId>"
	NotifID        string            `dynamodbav:"notifId" json:"notifId"`
	Kind           string            `dynamodbav:"kind" json:"kind"`
	Message        string            `dynamodbav:"message" json:"message"`
	RelatedUserID  string            `dynamodbav:"relatedUserId,omitempty" json:"relatedUserId,omitempty"`
	RelatedMatchID string            `dynamodbav:"relatedMatchId,omitempty" json:"relatedMatchId,omitempty"`
	RelatedPostID  string            `dynamodbav:"relatedPostId,omitempty" json:"relatedPostId,omitempty"`
	Payload        map[string]string `dynamodbav:"payload,omitempty" json:"payload,omitempty"`
	Seen           bool              `dynamodbav:"seen" json:"seen"`
	CreatedAt      string            `dynamodbav:"createdAt" json:"createdAt"`
}

// NotificationsTable is the DynamoDB table name for the notification log
const NotificationsTable = "Notifications"
