package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StringKey builds a single-attribute string key
func StringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// StringValue wraps s as a DynamoDB string attribute
func StringValue(s string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: s}
}

// BoolValue wraps b as a DynamoDB boolean attribute
func BoolValue(b bool) types.AttributeValue {
	return &types.AttributeValueMemberBOOL{Value: b}
}

// StringList wraps list as a DynamoDB list of strings
func StringList(list []string) types.AttributeValue {
	values := make([]types.AttributeValue, 0, len(list))
	for _, v := range list {
		values = append(values, StringValue(v))
	}
	return &types.AttributeValueMemberL{Value: values}
}

// FirstOrEmpty returns the first element of list, or "" when it is empty
func FirstOrEmpty(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
