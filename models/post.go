package models

// Post is an interest post authored by an attendee
type Post struct {
	PostID    string   `dynamodbav:"postId" json:"postId"`
	AuthorID  string   `dynamodbav:"authorId" json:"authorId"` // Used in GSI
	Content   string   `dynamodbav:"content" json:"content"`
	Tags      []string `dynamodbav:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt string   `dynamodbav:"createdAt" json:"createdAt"`
}

// PostsTable is the DynamoDB table name for posts
const PostsTable = "Posts"

// AuthorIndex is the GSI for looking up posts by author
const AuthorIndex = "author-index"
