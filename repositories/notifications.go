package repositories

import (
	"context"
	"fmt"

	"talkalot_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NotificationRepository is the append-only notification log. The engine only
// appends; listing and mark-seen serve the external polling layer.
type NotificationRepository interface {
	Append(ctx context.Context, notif *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int32) ([]models.Notification, error)
	CountUnseen(ctx context.Context, userID string) (int, error)
	MarkAllSeen(ctx context.Context, userID string) error
}

type DynamoNotificationRepository struct {
	Dynamo *DynamoService
}

func NewDynamoNotificationRepository(ds *DynamoService) *DynamoNotificationRepository {
	return &DynamoNotificationRepository{Dynamo: ds}
}

func (r *DynamoNotificationRepository) Append(ctx context.Context, notif *models.Notification) error {
	if err := r.Dynamo.PutItem(ctx, models.NotificationsTable, notif); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

func (r *DynamoNotificationRepository) ListByUser(ctx context.Context, userID string, limit int32) ([]models.Notification, error) {
	items, err := r.Dynamo.QueryItemsWithOptions(ctx, models.NotificationsTable,
		"userId = :userId",
		map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		}, nil, limit, true,
	)
	if err != nil {
		return nil, err
	}
	var notifs []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}
	return notifs, nil
}

func (r *DynamoNotificationRepository) CountUnseen(ctx context.Context, userID string) (int, error) {
	notifs, err := r.ListByUser(ctx, userID, 0)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifs {
		if !n.Seen {
			count++
		}
	}
	return count, nil
}

func (r *DynamoNotificationRepository) MarkAllSeen(ctx context.Context, userID string) error {
	notifs, err := r.ListByUser(ctx, userID, 0)
	if err != nil {
		return err
	}
	for _, n := range notifs {
		if n.Seen {
			continue
		}
		_, err := r.Dynamo.UpdateItem(ctx, models.NotificationsTable,
			"SET seen = :seen",
			map[string]types.AttributeValue{
				"userId":  &types.AttributeValueMemberS{Value: n.UserID},
				"sortKey": &types.AttributeValueMemberS{Value: n.SortKey},
			},
			map[string]types.AttributeValue{
				":seen": &types.AttributeValueMemberBOOL{Value: true},
			}, nil,
		)
		if err != nil {
			return fmt.Errorf("failed to mark notification %s seen: %w", n.NotifID, err)
		}
	}
	return nil
}

// notificationPut builds the transaction entry for appending one notification,
// so match writes and their notification pairs can commit as a single unit.
func notificationPut(notif *models.Notification) (types.TransactWriteItem, error) {
	item, err := attributevalue.MarshalMap(notif)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal notification: %w", err)
	}
	table := models.NotificationsTable
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: &table,
			Item:      item,
		},
	}, nil
}
