// Package dynamo archives completed orders to DynamoDB for reporting. The
// archive is write-only from the service's point of view and best-effort;
// the relational store stays the source of truth.
package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/example/ec-commerce/internal/domain/order"
)

type OrderArchive struct {
	client    *dynamodb.Client
	tableName string
}

// archivedOrder is the DynamoDB item layout, partitioned by order ID.
type archivedOrder struct {
	OrderID        string `dynamodbav:"order_id"`
	UserID         string `dynamodbav:"user_id"`
	Status         string `dynamodbav:"status"`
	TotalAmount    int    `dynamodbav:"total_amount"`
	DiscountAmount int    `dynamodbav:"discount_amount"`
	UsedCouponID   string `dynamodbav:"used_coupon_id,omitempty"`
	Items          string `dynamodbav:"items"`
	ArchivedAt     string `dynamodbav:"archived_at"`
}

func NewClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func NewOrderArchive(client *dynamodb.Client, tableName string) *OrderArchive {
	return &OrderArchive{client: client, tableName: tableName}
}

// Archive writes the order once. The conditional put makes a replayed archive
// of the same order a no-op failure rather than an overwrite.
func (a *OrderArchive) Archive(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	item := archivedOrder{
		OrderID:        o.ID,
		UserID:         o.UserID,
		Status:         string(o.Status),
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		UsedCouponID:   o.UsedCouponID,
		Items:          string(itemsJSON),
		ArchivedAt:     time.Now().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal archived order: %w", err)
	}

	_, err = a.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(a.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(order_id)"),
	})
	if err != nil {
		return fmt.Errorf("put archived order: %w", err)
	}
	return nil
}
