package blobstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoAPI is the subset of the DynamoDB client used by Dynamo.
type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// dynamoItem is the single-table row shape: one item per collection key.
type dynamoItem struct {
	CollectionKey string `dynamodbav:"collectionKey"`
	Payload       []byte `dynamodbav:"payload"`
}

// Dynamo stores collection blobs in a DynamoDB table keyed by collection name.
type Dynamo struct {
	client    dynamoAPI
	tableName string
}

// NewDynamo builds a store backed by the provided DynamoDB client.
func NewDynamo(client dynamoAPI, tableName string) *Dynamo {
	if client == nil {
		panic("blobstore: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("blobstore: table name cannot be empty")
	}
	return &Dynamo{client: client, tableName: tableName}
}

func (d *Dynamo) Load(ctx context.Context, key string) ([]byte, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"collectionKey": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("blobstore: dynamo get %s: %w", key, err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("blobstore: dynamo decode %s: %w", key, err)
	}
	return item.Payload, nil
}

func (d *Dynamo) Save(ctx context.Context, key string, data []byte) error {
	item, err := attributevalue.MarshalMap(dynamoItem{CollectionKey: key, Payload: data})
	if err != nil {
		return fmt.Errorf("blobstore: dynamo marshal %s: %w", key, err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("blobstore: dynamo put %s: %w", key, err)
	}
	return nil
}
