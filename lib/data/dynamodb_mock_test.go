package data

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// mockDynamoDB implements DynamoDBAPI with per-call hooks.
type mockDynamoDB struct {
	putItem    func(input *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getItem    func(input *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	query      func(input *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	updateItem func(input *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteItem func(input *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)

	putCalls    int
	deleteCalls int
}

func (m *mockDynamoDB) PutItem(ctx context.Context, input *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.putCalls++
	if m.putItem == nil {
		return nil, errors.New("unexpected PutItem call")
	}
	return m.putItem(input)
}

func (m *mockDynamoDB) GetItem(ctx context.Context, input *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.getItem == nil {
		return nil, errors.New("unexpected GetItem call")
	}
	return m.getItem(input)
}

func (m *mockDynamoDB) Query(ctx context.Context, input *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.query == nil {
		return nil, errors.New("unexpected Query call")
	}
	return m.query(input)
}

func (m *mockDynamoDB) UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.updateItem == nil {
		return nil, errors.New("unexpected UpdateItem call")
	}
	return m.updateItem(input)
}

func (m *mockDynamoDB) DeleteItem(ctx context.Context, input *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.deleteCalls++
	if m.deleteItem == nil {
		return nil, errors.New("unexpected DeleteItem call")
	}
	return m.deleteItem(input)
}
