package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/storybook"
)

// DynamoDBBackend implements storybook.Backend using AWS DynamoDB
type DynamoDBBackend struct {
	client    DynamoDBClient
	tableName string
}

// keyValueItem is the attribute layout of one stored key
type keyValueItem struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// NewDynamoDBBackend creates a new DynamoDB-backed key-value backend
func NewDynamoDBBackend(client DynamoDBClient, tableName string) storybook.Backend {
	return &DynamoDBBackend{
		client:    client,
		tableName: tableName,
	}
}

func (b *DynamoDBBackend) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := b.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(b.tableName),
		Key: map[string]types.AttributeValue{
			AttrPK: &types.AttributeValueMemberS{Value: keyValuePK(key)},
			AttrSK: &types.AttributeValueMemberS{Value: keyValueSK()},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if result.Item == nil {
		return "", false, nil
	}

	if _, ok := result.Item[AttrValue]; !ok {
		return "", false, fmt.Errorf("key %s has no value field", key)
	}

	var item keyValueItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal key %s: %w", key, err)
	}

	return item.Value, true, nil
}

func (b *DynamoDBBackend) Set(ctx context.Context, key, value string) error {
	item, err := attributevalue.MarshalMap(keyValueItem{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal key %s: %w", key, err)
	}

	// Add keys
	item[AttrPK] = &types.AttributeValueMemberS{Value: keyValuePK(key)}
	item[AttrSK] = &types.AttributeValueMemberS{Value: keyValueSK()}
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: EntityTypeKeyValue}

	_, err = b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(b.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}
