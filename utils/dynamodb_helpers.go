package utils

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Tolerant extraction helpers for DynamoDB attribute maps. Remote records
// are loosely typed (numbers stored as strings, strings stored as numbers,
// fields simply missing), so every helper accepts the shapes the data
// actually arrives in and falls back to a default instead of failing.

// ExtractString safely extracts a string from a DynamoDB attribute map.
// Numeric values are stringified; missing or mismatched values yield "".
func ExtractString(item map[string]types.AttributeValue, field string) string {
	return ExtractStringOr(item, field, "")
}

// ExtractStringOr extracts a string with a caller-supplied default.
func ExtractStringOr(item map[string]types.AttributeValue, field, fallback string) string {
	attr, ok := item[field]
	if !ok {
		return fallback
	}
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	case *types.AttributeValueMemberBOOL:
		return strconv.FormatBool(v.Value)
	}
	return fallback
}

// ExtractInt extracts an integer, parsing numeric strings; 0 on failure.
func ExtractInt(item map[string]types.AttributeValue, field string) int {
	attr, ok := item[field]
	if !ok {
		return 0
	}
	switch v := attr.(type) {
	case *types.AttributeValueMemberN:
		if n, err := strconv.Atoi(v.Value); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return int(f)
		}
	case *types.AttributeValueMemberS:
		if n, err := strconv.Atoi(v.Value); err == nil {
			return n
		}
	}
	return 0
}

// ExtractFloat extracts a float, parsing numeric strings; 0 on failure.
func ExtractFloat(item map[string]types.AttributeValue, field string) float64 {
	attr, ok := item[field]
	if !ok {
		return 0
	}
	switch v := attr.(type) {
	case *types.AttributeValueMemberN:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
	case *types.AttributeValueMemberS:
		if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
			return f
		}
	}
	return 0
}

// ExtractBool extracts a boolean. Numeric values coerce with
// nonzero-is-true; default false.
func ExtractBool(item map[string]types.AttributeValue, field string) bool {
	attr, ok := item[field]
	if !ok {
		return false
	}
	switch v := attr.(type) {
	case *types.AttributeValueMemberBOOL:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value != "0" && v.Value != ""
	case *types.AttributeValueMemberS:
		b, err := strconv.ParseBool(v.Value)
		return err == nil && b
	}
	return false
}

// ExtractStringList extracts a list of strings. Lists of numbers are
// stringified element-wise; string sets are accepted too. Missing or
// mismatched values yield nil; callers with a required-list field should
// use ExtractRequiredStringList.
func ExtractStringList(item map[string]types.AttributeValue, field string) []string {
	attr, ok := item[field]
	if !ok {
		return nil
	}
	switch v := attr.(type) {
	case *types.AttributeValueMemberL:
		out := make([]string, 0, len(v.Value))
		for _, elem := range v.Value {
			switch e := elem.(type) {
			case *types.AttributeValueMemberS:
				out = append(out, e.Value)
			case *types.AttributeValueMemberN:
				out = append(out, e.Value)
			}
		}
		return out
	case *types.AttributeValueMemberSS:
		out := make([]string, len(v.Value))
		copy(out, v.Value)
		return out
	}
	return nil
}

// ExtractRequiredStringList is ExtractStringList but never returns nil.
func ExtractRequiredStringList(item map[string]types.AttributeValue, field string) []string {
	if list := ExtractStringList(item, field); list != nil {
		return list
	}
	return []string{}
}

// ExtractTime extracts a timestamp, accepting RFC3339 strings and epoch
// numbers (seconds or milliseconds). Missing or malformed values yield the
// fallback.
func ExtractTime(item map[string]types.AttributeValue, field string, fallback time.Time) time.Time {
	attr, ok := item[field]
	if !ok {
		return fallback
	}
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		if t, err := time.Parse(time.RFC3339, v.Value); err == nil {
			return t
		}
	case *types.AttributeValueMemberN:
		if epoch, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			// Heuristic: values this large are milliseconds.
			if epoch > 1e12 {
				return time.UnixMilli(epoch)
			}
			return time.Unix(epoch, 0)
		}
	}
	return fallback
}

// ExtractMap extracts a nested attribute map, or nil.
func ExtractMap(item map[string]types.AttributeValue, field string) map[string]types.AttributeValue {
	if attr, ok := item[field]; ok {
		if m, ok := attr.(*types.AttributeValueMemberM); ok {
			return m.Value
		}
	}
	return nil
}

// ExtractFirstPhoto extracts the first photo URL from a photos attribute.
func ExtractFirstPhoto(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if photos, ok := attr.(*types.AttributeValueMemberL); ok && len(photos.Value) > 0 {
			if photo, ok := photos.Value[0].(*types.AttributeValueMemberS); ok {
				return photo.Value
			}
		}
	}
	return ""
}
