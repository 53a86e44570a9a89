package clients

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

// StringList normalizes a multi-valued field. Backends may send a list, a
// single scalar or nothing at all; the result is always a list.
func StringList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := StringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		s := StringValue(val)
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
}

// StringValue renders a scalar JSON value as a string. Lists are joined with ", ".
func StringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []interface{}, []string:
		return strings.Join(StringList(val), ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// AttributeType infers a declared type from a decoded JSON value
func AttributeType(v interface{}) string {
	switch v.(type) {
	case bool:
		return structs.AttributeTypeBoolean
	case float64, int, int64:
		return structs.AttributeTypeNumber
	case []interface{}, []string:
		return structs.AttributeTypeRepeating
	default:
		return structs.AttributeTypeString
	}
}

// AttributesFromRow builds a name-sorted attribute list from a row, skipping
// the excluded columns.
func AttributesFromRow(row map[string]interface{}, exclude ...string) []structs.Attribute {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	attrs := make([]structs.Attribute, 0, len(row))
	for name, value := range row {
		if _, ok := skip[name]; ok {
			continue
		}
		attrs = append(attrs, structs.Attribute{
			Name:  name,
			Value: StringValue(value),
			Type:  AttributeType(value),
		})
	}
	SortAttributes(attrs)
	return attrs
}

func SortAttributes(attrs []structs.Attribute) {
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
}

// IsFolderType reports whether an object type can hold other objects
func IsFolderType(objectType string) bool {
	return objectType == "dm_folder" || objectType == "dm_cabinet"
}
