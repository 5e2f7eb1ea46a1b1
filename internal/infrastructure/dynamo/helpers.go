package dynamo

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// numKey builds a DynamoDB primary key map with a single numeric attribute.
// Chat IDs are int64, so keys are number-typed throughout.
func numKey(name string, value int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)},
	}
}

// compositeKey builds a DynamoDB primary key with a numeric hash key and a
// string range key.
func compositeKey(pkName string, pkValue int64, skName, skValue string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		pkName: &types.AttributeValueMemberN{Value: strconv.FormatInt(pkValue, 10)},
		skName: &types.AttributeValueMemberS{Value: skValue},
	}
}
