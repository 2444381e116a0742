package repositories

import (
	"context"
	"fmt"
	"time"

	"talkalot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserRepository is the storage surface for attendees. Presence is tracked
// as the insideFair flag, refreshed by join/leave/status calls.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, userID string) (*models.User, error)
	SetInsideFair(ctx context.Context, userID string, inside bool) error
	TouchLastSeen(ctx context.Context, userID string) error
	UpdateInterests(ctx context.Context, userID string, tags []string, freeText string) error
}

type DynamoUserRepository struct {
	Dynamo *DynamoService
}

func NewDynamoUserRepository(ds *DynamoService) *DynamoUserRepository {
	return &DynamoUserRepository{Dynamo: ds}
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *DynamoUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *DynamoUserRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	item, err := r.Dynamo.GetItem(ctx, models.UsersTable, userKey(userID))
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (r *DynamoUserRepository) SetInsideFair(ctx context.Context, userID string, inside bool) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET insideFair = :inside, lastSeen = :now",
		userKey(userID),
		map[string]types.AttributeValue{
			":inside": &types.AttributeValueMemberBOOL{Value: inside},
			":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to update presence for %s: %w", userID, err)
	}
	return nil
}

func (r *DynamoUserRepository) TouchLastSeen(ctx context.Context, userID string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET lastSeen = :now",
		userKey(userID),
		map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to touch lastSeen for %s: %w", userID, err)
	}
	return nil
}

func (r *DynamoUserRepository) UpdateInterests(ctx context.Context, userID string, tags []string, freeText string) error {
	tagList, err := attributevalue.MarshalList(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal interest tags: %w", err)
	}
	_, err = r.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET interestTags = :tags, freeTextInterests = :freeText",
		userKey(userID),
		map[string]types.AttributeValue{
			":tags":     &types.AttributeValueMemberL{Value: tagList},
			":freeText": &types.AttributeValueMemberS{Value: freeText},
		}, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to update interests for %s: %w", userID, err)
	}
	return nil
}
