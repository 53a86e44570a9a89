package clients

import (
	"errors"
	"testing"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/stretchr/testify/assert"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []string
	}{
		{name: "absent", input: nil, expected: []string{}},
		{name: "bare string", input: "dm_world", expected: []string{"dm_world"}},
		{name: "empty string", input: "", expected: []string{}},
		{name: "json list", input: []interface{}{"a", "b", ""}, expected: []string{"a", "b"}},
		{name: "string slice", input: []string{"x"}, expected: []string{"x"}},
		{name: "number", input: float64(3), expected: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringList(tt.input))
		})
	}
}

func TestStringValue(t *testing.T) {
	assert.Equal(t, "", StringValue(nil))
	assert.Equal(t, "true", StringValue(true))
	assert.Equal(t, "1489", StringValue(float64(1489)))
	assert.Equal(t, "1.5", StringValue(1.5))
	assert.Equal(t, "a, b", StringValue([]interface{}{"a", "b"}))
}

func TestAttributesFromRow(t *testing.T) {
	row := map[string]interface{}{
		"group_name":   "docu",
		"users_names":  []interface{}{"alice"},
		"groups_names": "dm_world",
		"is_private":   false,
		"r_object_id":  "1201",
		"group_class":  "group",
	}

	attrs := AttributesFromRow(row, "users_names", "groups_names")

	assert.Equal(t, []structs.Attribute{
		{Name: "group_class", Value: "group", Type: structs.AttributeTypeString},
		{Name: "group_name", Value: "docu", Type: structs.AttributeTypeString},
		{Name: "is_private", Value: "false", Type: structs.AttributeTypeBoolean},
		{Name: "r_object_id", Value: "1201", Type: structs.AttributeTypeString},
	}, attrs)
}

func TestErrorTaxonomy(t *testing.T) {
	unreachable := &BackendUnreachableError{Protocol: structs.ProtocolREST, Port: 9877, Err: errors.New("connection refused")}
	assert.ErrorIs(t, unreachable, ErrBackendUnreachable)
	assert.True(t, IsConnectivity(unreachable))
	assert.Contains(t, unreachable.Error(), "rest bridge is not reachable on port 9877")

	notFound := NotFoundError("group", "docu")
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.False(t, IsConnectivity(notFound))

	assert.True(t, IsConnectivity(ErrBridgeNotInitialized))
}

func TestIsFolderType(t *testing.T) {
	assert.True(t, IsFolderType("dm_folder"))
	assert.True(t, IsFolderType("dm_cabinet"))
	assert.False(t, IsFolderType("dm_document"))
}
