package repositories

import (
	"context"
	"fmt"
	"sort"

	"talkalot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchRepository is the storage surface for matches. The three guarded
// writes (create, proximity flip, codeword set) each commit together with
// their notification pair in one transaction, and each surfaces a lost race
// as ErrConflict so the services can absorb duplicates.
type MatchRepository interface {
	GetByPair(ctx context.Context, userA, userB string) (*models.Match, error)
	GetByID(ctx context.Context, matchID string) (*models.Match, error)
	// ListByUser returns every match involving userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Match, error)
	CreateWithNotifications(ctx context.Context, match *models.Match, notifA, notifB *models.Notification) error
	MarkProximityNotified(ctx context.Context, pairKey string, notifA, notifB *models.Notification) error
	// Confirm sets one side's confirmation flag and returns the updated match.
	// Setting an already-true flag is a harmless no-op.
	Confirm(ctx context.Context, pairKey string, lowSide bool) (*models.Match, error)
	SetCodewordWithNotifications(ctx context.Context, pairKey, codeword string, notifA, notifB *models.Notification) error
}

type DynamoMatchRepository struct {
	Dynamo *DynamoService
}

func NewDynamoMatchRepository(ds *DynamoService) *DynamoMatchRepository {
	return &DynamoMatchRepository{Dynamo: ds}
}

func matchKey(pairKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
}

func (r *DynamoMatchRepository) GetByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	item, err := r.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(models.PairKeyFor(userA, userB)))
	if err != nil {
		return nil, err
	}
	return unmarshalMatch(item)
}

func (r *DynamoMatchRepository) GetByID(ctx context.Context, matchID string) (*models.Match, error) {
	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex,
		"matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		}, nil, 1,
	)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return unmarshalMatch(items[0])
}

func (r *DynamoMatchRepository) ListByUser(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	for index, keyAttr := range map[string]string{
		models.UserLowIndex:  "userLowId",
		models.UserHighIndex: "userHighId",
	} {
		items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, index,
			fmt.Sprintf("%s = :userId", keyAttr),
			map[string]types.AttributeValue{
				":userId": &types.AttributeValueMemberS{Value: userID},
			}, nil, 0,
		)
		if err != nil {
			return nil, err
		}
		var page []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
		}
		matches = append(matches, page...)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})
	return matches, nil
}

// CreateWithNotifications writes the match guarded by pair uniqueness and
// appends both match notifications in the same transaction. A concurrent
// create of the same pair cancels the whole transaction with ErrConflict.
func (r *DynamoMatchRepository) CreateWithNotifications(ctx context.Context, match *models.Match, notifA, notifB *models.Notification) error {
	matchItem, err := attributevalue.MarshalMap(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}
	table := models.MatchesTable
	condition := "attribute_not_exists(pairKey)"

	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           &table,
			Item:                matchItem,
			ConditionExpression: &condition,
		},
	}}
	items, err = appendNotificationPuts(items, notifA, notifB)
	if err != nil {
		return err
	}
	return r.Dynamo.TransactWriteItems(ctx, items)
}

// MarkProximityNotified flips proximityNotified under the guard that it is
// still false, with both proximity notifications in the same transaction.
func (r *DynamoMatchRepository) MarkProximityNotified(ctx context.Context, pairKey string, notifA, notifB *models.Notification) error {
	table := models.MatchesTable
	update := "SET proximityNotified = :true"
	condition := "proximityNotified = :false"

	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName:           &table,
			Key:                 matchKey(pairKey),
			UpdateExpression:    &update,
			ConditionExpression: &condition,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":true":  &types.AttributeValueMemberBOOL{Value: true},
				":false": &types.AttributeValueMemberBOOL{Value: false},
			},
		},
	}}
	items, err := appendNotificationPuts(items, notifA, notifB)
	if err != nil {
		return err
	}
	return r.Dynamo.TransactWriteItems(ctx, items)
}

func (r *DynamoMatchRepository) Confirm(ctx context.Context, pairKey string, lowSide bool) (*models.Match, error) {
	flag := "userHighConfirmed"
	if lowSide {
		flag = "userLowConfirmed"
	}
	attrs, err := r.Dynamo.UpdateItem(ctx, models.MatchesTable,
		fmt.Sprintf("SET %s = :true", flag),
		matchKey(pairKey),
		map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		}, nil,
	)
	if err != nil {
		return nil, err
	}
	return unmarshalMatch(attrs)
}

// SetCodewordWithNotifications stores the codeword under the guard that no
// codeword exists yet, with both codeword notifications in the same
// transaction. The guard makes generation exactly-once per match.
func (r *DynamoMatchRepository) SetCodewordWithNotifications(ctx context.Context, pairKey, codeword string, notifA, notifB *models.Notification) error {
	table := models.MatchesTable
	update := "SET codeword = :codeword"
	condition := "attribute_not_exists(codeword)"

	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName:           &table,
			Key:                 matchKey(pairKey),
			UpdateExpression:    &update,
			ConditionExpression: &condition,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":codeword": &types.AttributeValueMemberS{Value: codeword},
			},
		},
	}}
	items, err := appendNotificationPuts(items, notifA, notifB)
	if err != nil {
		return err
	}
	return r.Dynamo.TransactWriteItems(ctx, items)
}

func appendNotificationPuts(items []types.TransactWriteItem, notifs ...*models.Notification) ([]types.TransactWriteItem, error) {
	for _, n := range notifs {
		put, err := notificationPut(n)
		if err != nil {
			return nil, err
		}
		items = append(items, put)
	}
	return items, nil
}

func unmarshalMatch(item map[string]types.AttributeValue) (*models.Match, error) {
	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}
