package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func pkOf(item map[string]types.AttributeValue) string {
	if s, ok := item["pk"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("GetItem", ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return *in.TableName == "flows" && pkOf(in.Key) == "flow-data"
	})).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"pk":    &types.AttributeValueMemberS{Value: "flow-data"},
		"value": &types.AttributeValueMemberB{Value: []byte(`{"nodes":[]}`)},
	}}, nil)

	v, err := New(api, "flows").Get(ctx, "flow-data")
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[]}`, string(v))
	api.AssertExpectations(t)
}

func TestStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("GetItem", ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	v, err := New(api, "flows").Get(ctx, "flow-data")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStore_Put(t *testing.T) {
	ctx := context.Background()
	api := new(mockAPI)
	api.On("PutItem", ctx, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		b, ok := in.Item["value"].(*types.AttributeValueMemberB)
		return *in.TableName == "flows" && pkOf(in.Item) == "theme" && ok && string(b.Value) == "dark"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	require.NoError(t, New(api, "flows").Put(ctx, "theme", []byte("dark")))
	api.AssertExpectations(t)
}

func TestStore_DeleteWrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("throttled")
	api := new(mockAPI)
	api.On("DeleteItem", ctx, mock.Anything).Return(nil, boom)

	err := New(api, "flows").Delete(ctx, "flow-data")
	assert.ErrorIs(t, err, boom)
}
