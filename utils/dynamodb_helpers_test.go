package utils

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

func TestExtractStringCoercions(t *testing.T) {
	item := map[string]types.AttributeValue{
		"plain":  &types.AttributeValueMemberS{Value: "hello"},
		"number": &types.AttributeValueMemberN{Value: "42"},
		"flag":   &types.AttributeValueMemberBOOL{Value: true},
	}

	require.Equal(t, "hello", ExtractString(item, "plain"))
	require.Equal(t, "42", ExtractString(item, "number"))
	require.Equal(t, "true", ExtractString(item, "flag"))
	require.Equal(t, "", ExtractString(item, "missing"))
	require.Equal(t, "fallback", ExtractStringOr(item, "missing", "fallback"))
}

func TestExtractIntCoercions(t *testing.T) {
	item := map[string]types.AttributeValue{
		"int":     &types.AttributeValueMemberN{Value: "7"},
		"float":   &types.AttributeValueMemberN{Value: "7.9"},
		"string":  &types.AttributeValueMemberS{Value: "12"},
		"garbage": &types.AttributeValueMemberS{Value: "not a number"},
	}

	require.Equal(t, 7, ExtractInt(item, "int"))
	require.Equal(t, 7, ExtractInt(item, "float"))
	require.Equal(t, 12, ExtractInt(item, "string"))
	require.Equal(t, 0, ExtractInt(item, "garbage"))
	require.Equal(t, 0, ExtractInt(item, "missing"))
}

func TestExtractFloatCoercions(t *testing.T) {
	item := map[string]types.AttributeValue{
		"number": &types.AttributeValueMemberN{Value: "40.78"},
		"string": &types.AttributeValueMemberS{Value: "40.78"},
	}

	require.Equal(t, 40.78, ExtractFloat(item, "number"))
	require.Equal(t, 40.78, ExtractFloat(item, "string"))
	require.Equal(t, 0.0, ExtractFloat(item, "missing"))
}

func TestExtractBoolCoercions(t *testing.T) {
	item := map[string]types.AttributeValue{
		"bool":    &types.AttributeValueMemberBOOL{Value: true},
		"one":     &types.AttributeValueMemberN{Value: "1"},
		"zero":    &types.AttributeValueMemberN{Value: "0"},
		"yes":     &types.AttributeValueMemberS{Value: "true"},
		"garbage": &types.AttributeValueMemberS{Value: "maybe"},
	}

	require.True(t, ExtractBool(item, "bool"))
	require.True(t, ExtractBool(item, "one"))
	require.False(t, ExtractBool(item, "zero"))
	require.True(t, ExtractBool(item, "yes"))
	require.False(t, ExtractBool(item, "garbage"))
	require.False(t, ExtractBool(item, "missing"))
}

func TestExtractStringListShapes(t *testing.T) {
	item := map[string]types.AttributeValue{
		"list": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberS{Value: "a"},
			&types.AttributeValueMemberN{Value: "2"},
		}},
		"set": &types.AttributeValueMemberSS{Value: []string{"x", "y"}},
	}

	require.Equal(t, []string{"a", "2"}, ExtractStringList(item, "list"))
	require.Equal(t, []string{"x", "y"}, ExtractStringList(item, "set"))
	require.Nil(t, ExtractStringList(item, "missing"))
	require.Equal(t, []string{}, ExtractRequiredStringList(item, "missing"))
}

func TestExtractTimeShapes(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	item := map[string]types.AttributeValue{
		"rfc3339": &types.AttributeValueMemberS{Value: "2026-03-01T10:00:00Z"},
		"seconds": &types.AttributeValueMemberN{Value: "1767225600"},
		"millis":  &types.AttributeValueMemberN{Value: "1767225600000"},
		"broken":  &types.AttributeValueMemberS{Value: "yesterday"},
	}

	require.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), ExtractTime(item, "rfc3339", fallback).UTC())
	require.Equal(t, time.Unix(1767225600, 0).UTC(), ExtractTime(item, "seconds", fallback).UTC())
	require.Equal(t, time.UnixMilli(1767225600000).UTC(), ExtractTime(item, "millis", fallback).UTC())
	require.Equal(t, fallback, ExtractTime(item, "broken", fallback))
	require.Equal(t, fallback, ExtractTime(item, "missing", fallback))
}

func TestIDHelpers(t *testing.T) {
	ids := []string{"a", "b"}

	require.True(t, ContainsID(ids, "a"))
	require.False(t, ContainsID(ids, "z"))

	appended := AppendUnique(append([]string(nil), ids...), "c")
	require.Equal(t, []string{"a", "b", "c"}, appended)
	same := AppendUnique(appended, "a")
	require.Equal(t, []string{"a", "b", "c"}, same)

	removed := RemoveID(append([]string(nil), ids...), "a")
	require.Equal(t, []string{"b"}, removed)
}
