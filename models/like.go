package models

// Like is an edge from a user to a post they liked. The composite
// primary key (likerId, postId) keeps the edge unique per pair.
type Like struct {
	LikerID     string `dynamodbav:"likerId" json:"likerId"`         // Partition Key
	PostID      string `dynamodbav:"postId" json:"postId"`           // Sort Key
	PostOwnerID string `dynamodbav:"postOwnerId" json:"postOwnerId"` // Used in GSI
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// LikesTable is the DynamoDB table name for like edges
const LikesTable = "Likes"

// PostOwnerLikerIndex is the GSI keyed on (postOwnerId, likerId),
// used for the reciprocity query: "does B like some post authored by A".
const PostOwnerLikerIndex = "postOwner-liker-index"

// PostIndex is the GSI keyed on postId, used for per-post like counts.
const PostIndex = "post-index"
