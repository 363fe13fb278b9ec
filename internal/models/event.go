package models

// Post lifecycle event types published to Kafka.
const (
	PostCreated = "post.created"
	PostUpdated = "post.updated"
	PostDeleted = "post.deleted"
)

// PostEvent is a post lifecycle event published to Kafka.
type PostEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Type      string `json:"type"`      // One of PostCreated, PostUpdated, PostDeleted
	PostID    int64  `json:"post_id"`   // Affected post
	UserID    int64  `json:"user_id"`   // Acting user
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
