package rest

import (
	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

// attributeList collects the enumerated REST fields, skipping absent ones
type attributeList []structs.Attribute

func (a *attributeList) add(name, value, attrType string) {
	if value == "" {
		return
	}
	*a = append(*a, structs.Attribute{Name: name, Value: value, Type: attrType})
}

func (a *attributeList) addValue(name string, value interface{}) {
	if value == nil {
		return
	}
	*a = append(*a, structs.Attribute{
		Name:  name,
		Value: clients.StringValue(value),
		Type:  clients.AttributeType(value),
	})
}

func (a attributeList) sorted() []structs.Attribute {
	out := []structs.Attribute(a)
	clients.SortAttributes(out)
	return out
}
