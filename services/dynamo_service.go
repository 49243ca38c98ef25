package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"playdates_server/models"
	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// maxTransactAttempts bounds optimistic retries before surfacing a
// terminal conflict.
const maxTransactAttempts = 5

// DynamoService wraps the DynamoDB client with the four capability shapes
// the domain services rely on: get by key, query/scan by predicate, put,
// and a read-modify-write transaction.
type DynamoService struct {
	Client *dynamodb.Client
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// GetItem retrieves an item by key. Returns models.ErrItemNotFound if the
// document does not exist.
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}

	if output.Item == nil {
		return nil, fmt.Errorf("table '%s': %w", tableName, models.ErrItemNotFound)
	}

	return output.Item, nil
}

// QueryItems queries items using a KeyConditionExpression.
func (ds *DynamoService) QueryItems(
	ctx context.Context,
	tableName string,
	keyConditionExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	limit int32,
) ([]map[string]types.AttributeValue, error) {
	output, err := ds.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 &tableName,
		KeyConditionExpression:    &keyConditionExpression,
		ExpressionAttributeValues: expressionAttributeValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		Limit:                     &limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query items from table '%s': %w", tableName, err)
	}

	return output.Items, nil
}

// ScanItems scans a table with a FilterExpression. Membership predicates
// ("actorId IN (...)") go through here.
func (ds *DynamoService) ScanItems(
	ctx context.Context,
	tableName string,
	filterExpression string,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
	limit int32,
) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName: &tableName,
	}
	if filterExpression != "" {
		input.FilterExpression = &filterExpression
		input.ExpressionAttributeValues = expressionAttributeValues
	}
	if len(expressionAttributeNames) > 0 {
		input.ExpressionAttributeNames = expressionAttributeNames
	}
	if limit > 0 {
		input.Limit = &limit
	}

	output, err := ds.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan table '%s': %w", tableName, err)
	}

	return output.Items, nil
}

// PutItem marshals and writes an item.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	return nil
}

// UpdateItem applies an UpdateExpression and returns the new attributes.
func (ds *DynamoService) UpdateItem(
	ctx context.Context,
	tableName string,
	updateExpression string,
	key map[string]types.AttributeValue,
	expressionAttributeValues map[string]types.AttributeValue,
	expressionAttributeNames map[string]string,
) (map[string]types.AttributeValue, error) {
	if len(key) == 0 {
		return nil, errors.New("update failed: key cannot be empty")
	}
	if updateExpression == "" {
		return nil, errors.New("update failed: updateExpression cannot be empty")
	}

	// REMOVE expressions carry no attribute values.
	var expAttrValues map[string]types.AttributeValue
	if len(expressionAttributeValues) > 0 {
		expAttrValues = expressionAttributeValues
	}

	output, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &tableName,
		Key:                       key,
		UpdateExpression:          &updateExpression,
		ExpressionAttributeValues: expAttrValues,
		ExpressionAttributeNames:  expressionAttributeNames,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update item in table '%s': %w", tableName, err)
	}

	if output.Attributes == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return output.Attributes, nil
}

// DeleteItem removes an item from DynamoDB
func (ds *DynamoService) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", tableName, err)
	}
	return nil
}

// TransactUpdateItem runs a read-modify-write transaction against a single
// document: consistent read, apply, conditional put guarded by a version
// attribute. The snapshot is re-read on every attempt; nothing is cached
// across retries. apply returning a nil entity means no-op; the current
// item is returned unwritten. After maxTransactAttempts conflicting writes
// the terminal models.ErrTransactionConflict is surfaced.
func (ds *DynamoService) TransactUpdateItem(
	ctx context.Context,
	tableName string,
	key map[string]types.AttributeValue,
	apply func(item map[string]types.AttributeValue) (interface{}, error),
) (map[string]types.AttributeValue, error) {
	for attempt := 0; attempt < maxTransactAttempts; attempt++ {
		consistent := true
		output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName:      &tableName,
			Key:            key,
			ConsistentRead: &consistent,
		})
		if err != nil {
			return nil, fmt.Errorf("transaction read on table '%s' failed: %w", tableName, err)
		}
		if output.Item == nil {
			return nil, fmt.Errorf("table '%s': %w", tableName, models.ErrItemNotFound)
		}

		entity, err := apply(output.Item)
		if err != nil {
			return nil, err
		}
		if entity == nil {
			return output.Item, nil
		}

		version := utils.ExtractInt(output.Item, "version")
		marshaled, err := attributevalue.MarshalMap(entity)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal transaction result: %w", err)
		}
		marshaled["version"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version+1)}

		condition := "attribute_not_exists(#v) OR #v = :v"
		_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           &tableName,
			Item:                marshaled,
			ConditionExpression: &condition,
			ExpressionAttributeNames: map[string]string{
				"#v": "version",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", version)},
			},
		})
		if err == nil {
			return marshaled, nil
		}

		var conditionFailed *types.ConditionalCheckFailedException
		if !errors.As(err, &conditionFailed) {
			return nil, fmt.Errorf("transaction write on table '%s' failed: %w", tableName, err)
		}
		log.Printf("Transaction conflict on table '%s', attempt %d", tableName, attempt+1)
	}

	return nil, fmt.Errorf("table '%s': %w", tableName, models.ErrTransactionConflict)
}

// BuildStringKey builds the common single-attribute string key.
func BuildStringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}
