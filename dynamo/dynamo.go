// Package dynamo stores flow slots as items in a DynamoDB table keyed by "pk".
package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/meikuraledutech/flow"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type slotItem struct {
	PK        string `dynamodbav:"pk"`
	Value     []byte `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// Store implements flow.Store on a DynamoDB table.
type Store struct {
	client API
	table  string
}

// New wraps a DynamoDB client.
func New(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// Open loads the default AWS configuration for region and returns a Store on table.
func Open(ctx context.Context, region, table string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("dynamo: load aws config: %w", err)
	}
	return New(dynamodb.NewFromConfig(cfg), table), nil
}

func (s *Store) key(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: key},
	}
}

// Get returns nil, nil if the item doesn't exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: get %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var item slotItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("dynamo: decode %s: %w", key, err)
	}
	return item.Value, nil
}

// Put overwrites the item.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	av, err := attributevalue.MarshalMap(slotItem{
		PK:        key,
		Value:     value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("dynamo: encode %s: %w", key, err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamo: put %s: %w", key, err)
	}
	return nil
}

// Delete removes the item. No error if it doesn't exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(key),
	}); err != nil {
		return fmt.Errorf("dynamo: delete %s: %w", key, err)
	}
	return nil
}

var _ flow.Store = (*Store)(nil)
