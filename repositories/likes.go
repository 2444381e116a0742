package repositories

import (
	"context"
	"errors"
	"fmt"

	"talkalot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// LikeRepository is the interest-graph surface the engine consumes: like
// edges plus the reciprocity and enrichment queries built on them.
type LikeRepository interface {
	// Create writes the like edge; ErrConflict when the edge already exists.
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, likerID, postID string) error
	Has(ctx context.Context, likerID, postID string) (bool, error)
	// HasReciprocal reports whether liker has liked any post authored by author.
	HasReciprocal(ctx context.Context, authorID, likerID string) (bool, error)
	// FindLikedPost returns some post authored by authorID that likerID liked,
	// or ErrNotFound. Used only for notification message enrichment.
	FindLikedPost(ctx context.Context, likerID, authorID string) (*models.Post, error)
	CountForPost(ctx context.Context, postID string) (int, error)
}

type DynamoLikeRepository struct {
	Dynamo *DynamoService
	Posts  PostRepository
}

func NewDynamoLikeRepository(ds *DynamoService, posts PostRepository) *DynamoLikeRepository {
	return &DynamoLikeRepository{Dynamo: ds, Posts: posts}
}

func likeKey(likerID, postID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"likerId": &types.AttributeValueMemberS{Value: likerID},
		"postId":  &types.AttributeValueMemberS{Value: postID},
	}
}

func (r *DynamoLikeRepository) Create(ctx context.Context, like *models.Like) error {
	err := r.Dynamo.PutItemConditional(ctx, models.LikesTable, like,
		"attribute_not_exists(likerId)")
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

func (r *DynamoLikeRepository) Delete(ctx context.Context, likerID, postID string) error {
	return r.Dynamo.DeleteItem(ctx, models.LikesTable, likeKey(likerID, postID))
}

func (r *DynamoLikeRepository) Has(ctx context.Context, likerID, postID string) (bool, error) {
	_, err := r.Dynamo.GetItem(ctx, models.LikesTable, likeKey(likerID, postID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *DynamoLikeRepository) HasReciprocal(ctx context.Context, authorID, likerID string) (bool, error) {
	items, err := r.queryOwnerLiker(ctx, authorID, likerID, 1)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

func (r *DynamoLikeRepository) FindLikedPost(ctx context.Context, likerID, authorID string) (*models.Post, error) {
	items, err := r.queryOwnerLiker(ctx, authorID, likerID, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	var like models.Like
	if err := attributevalue.UnmarshalMap(items[0], &like); err != nil {
		return nil, fmt.Errorf("failed to unmarshal like: %w", err)
	}
	return r.Posts.Get(ctx, like.PostID)
}

func (r *DynamoLikeRepository) CountForPost(ctx context.Context, postID string) (int, error) {
	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.LikesTable, models.PostIndex,
		"postId = :postId",
		map[string]types.AttributeValue{
			":postId": &types.AttributeValueMemberS{Value: postID},
		}, nil, 0,
	)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *DynamoLikeRepository) queryOwnerLiker(ctx context.Context, ownerID, likerID string, limit int32) ([]map[string]types.AttributeValue, error) {
	return r.Dynamo.QueryItemsWithIndex(ctx, models.LikesTable, models.PostOwnerLikerIndex,
		"postOwnerId = :ownerId AND likerId = :likerId",
		map[string]types.AttributeValue{
			":ownerId": &types.AttributeValueMemberS{Value: ownerID},
			":likerId": &types.AttributeValueMemberS{Value: likerID},
		}, nil, limit,
	)
}
