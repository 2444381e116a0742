package repositories

import (
	"context"
	"fmt"
	"sort"

	"talkalot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PostRepository is the storage surface for interest posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, postID string) (*models.Post, error)
	ListRecent(ctx context.Context) ([]models.Post, error)
}

type DynamoPostRepository struct {
	Dynamo *DynamoService
}

func NewDynamoPostRepository(ds *DynamoService) *DynamoPostRepository {
	return &DynamoPostRepository{Dynamo: ds}
}

func (r *DynamoPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.Dynamo.PutItem(ctx, models.PostsTable, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *DynamoPostRepository) Get(ctx context.Context, postID string) (*models.Post, error) {
	item, err := r.Dynamo.GetItem(ctx, models.PostsTable, map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	})
	if err != nil {
		return nil, err
	}
	var post models.Post
	if err := attributevalue.UnmarshalMap(item, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &post, nil
}

// ListRecent returns all posts, newest first. The board is small (one event),
// so a scan plus in-memory sort is enough.
func (r *DynamoPostRepository) ListRecent(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.Dynamo.ScanItems(ctx, models.PostsTable, &posts); err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}
