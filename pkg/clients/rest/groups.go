package rest

import (
	"context"
	"net/http"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

type groupProperties struct {
	ID          string      `json:"r_object_id"`
	Name        string      `json:"group_name"`
	Address     string      `json:"group_address"`
	Source      string      `json:"group_source"`
	Description string      `json:"description"`
	Class       string      `json:"group_class"`
	Admin       string      `json:"group_admin"`
	Owner       string      `json:"owner_name"`
	IsPrivate   interface{} `json:"is_private"`
	IsDynamic   interface{} `json:"is_dynamic"`
	Modified    string      `json:"r_modify_date"`
	UsersNames  interface{} `json:"users_names"`
	GroupsNames interface{} `json:"groups_names"`
}

func (p groupProperties) toGroup() *structs.Group {
	return &structs.Group{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Source:      p.Source,
		Description: p.Description,
		Class:       p.Class,
		Admin:       p.Admin,
	}
}

// attributes leaves the member lists out, they are returned as structured
// fields of the group
func (p groupProperties) attributes() []structs.Attribute {
	attrs := attributeList{}
	attrs.add("r_object_id", p.ID, structs.AttributeTypeID)
	attrs.add("group_name", p.Name, structs.AttributeTypeString)
	attrs.add("group_address", p.Address, structs.AttributeTypeString)
	attrs.add("group_source", p.Source, structs.AttributeTypeString)
	attrs.add("description", p.Description, structs.AttributeTypeString)
	attrs.add("group_class", p.Class, structs.AttributeTypeString)
	attrs.add("group_admin", p.Admin, structs.AttributeTypeString)
	attrs.add("owner_name", p.Owner, structs.AttributeTypeString)
	attrs.addValue("is_private", p.IsPrivate)
	attrs.addValue("is_dynamic", p.IsDynamic)
	attrs.add("r_modify_date", p.Modified, structs.AttributeTypeTime)
	return attrs.sorted()
}

type membersResponse struct {
	Users  interface{} `json:"users"`
	Groups interface{} `json:"groups"`
}

func (c *RESTClient) GetGroups(ctx context.Context, sessionID string) ([]*structs.Group, error) {
	log := logger.Logger(ctx).WithField("service", serviceName)

	var resp collection[groupProperties]
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/groups"), http.MethodGet, nil, &resp); err != nil {
		log.WithError(err).Error("error fetching list of groups")
		return nil, err
	}

	groups := make([]*structs.Group, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		groups = append(groups, e.Content.Properties.toGroup())
	}

	log.WithField("total_group_count", len(groups)).Info("found groups")
	return groups, nil
}

func (c *RESTClient) GetGroup(ctx context.Context, sessionID, groupName string) (*structs.Group, error) {
	var resp entry[groupProperties]
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/groups/%s", groupName), http.MethodGet, nil, &resp); err != nil {
		return nil, notFound(err, "group", groupName)
	}

	p := resp.Content.Properties
	group := p.toGroup()
	group.Attributes = p.attributes()
	group.MemberUsers = clients.StringList(p.UsersNames)
	group.MemberGroups = clients.StringList(p.GroupsNames)
	return group, nil
}

func (c *RESTClient) GetGroupMembers(ctx context.Context, sessionID, groupName string) (*structs.GroupMembers, error) {
	var resp membersResponse
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/groups/%s/members", groupName), http.MethodGet, nil, &resp); err != nil {
		return nil, notFound(err, "group", groupName)
	}

	return &structs.GroupMembers{
		Users:  clients.StringList(resp.Users),
		Groups: clients.StringList(resp.Groups),
	}, nil
}

func (c *RESTClient) GetParentGroups(ctx context.Context, sessionID, groupName string) ([]string, error) {
	var resp nameList
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/groups/%s/parents", groupName), http.MethodGet, nil, &resp); err != nil {
		return nil, err
	}
	return clients.StringList(resp.Names), nil
}
