package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoSlot stores the payload as one item keyed by (session_id, slot_key).
type DynamoSlot struct {
	client    *dynamodb.Client
	tableName string
	sessionID string
	key       string
}

// dynamoItem is the DynamoDB item structure.
type dynamoItem struct {
	SessionID string `dynamodbav:"session_id"`
	SlotKey   string `dynamodbav:"slot_key"`
	Payload   []byte `dynamodbav:"payload"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func NewDynamoSlot(client *dynamodb.Client, tableName, sessionID, key string) *DynamoSlot {
	return &DynamoSlot{
		client:    client,
		tableName: tableName,
		sessionID: sessionID,
		key:       key,
	}
}

func (s *DynamoSlot) Read(ctx context.Context) ([]byte, bool, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.itemKey(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get slot: %w", err)
	}
	if result.Item == nil {
		return nil, false, nil
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal slot: %w", err)
	}
	return item.Payload, true, nil
}

func (s *DynamoSlot) Write(ctx context.Context, data []byte) error {
	item := dynamoItem{
		SessionID: s.sessionID,
		SlotKey:   s.key,
		Payload:   data,
		UpdatedAt: time.Now().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put slot: %w", err)
	}
	return nil
}

func (s *DynamoSlot) Delete(ctx context.Context) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.itemKey(),
	})
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

func (s *DynamoSlot) itemKey() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"session_id": &types.AttributeValueMemberS{Value: s.sessionID},
		"slot_key":   &types.AttributeValueMemberS{Value: s.key},
	}
}

// NewDynamoClient builds a DynamoDB client from the ambient AWS config.
func NewDynamoClient(ctx context.Context, tableName string) (*dynamodb.Client, error) {
	if tableName == "" {
		return nil, errors.New("dynamo table name is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}
