package dql

import (
	"context"
	"fmt"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

const (
	listGroupsQuery = "SELECT r_object_id, group_name, group_address, group_source, description, " +
		"group_class, group_admin FROM dm_group ORDER BY group_name"

	usersNamesColumn  = "users_names"
	groupsNamesColumn = "groups_names"
)

func groupFromRow(row map[string]interface{}) *structs.Group {
	return &structs.Group{
		ID:          clients.StringValue(row["r_object_id"]),
		Name:        clients.StringValue(row["group_name"]),
		Address:     clients.StringValue(row["group_address"]),
		Source:      clients.StringValue(row["group_source"]),
		Description: clients.StringValue(row["description"]),
		Class:       clients.StringValue(row["group_class"]),
		Admin:       clients.StringValue(row["group_admin"]),
	}
}

func (c *DQLClient) GetGroups(ctx context.Context, sessionID string) ([]*structs.Group, error) {
	log := logger.Logger(ctx).WithField("service", serviceName)

	result, err := c.ExecuteQuery(ctx, sessionID, listGroupsQuery)
	if err != nil {
		log.WithError(err).Error("error fetching list of groups")
		return nil, err
	}

	groups := make([]*structs.Group, 0, len(result.Rows))
	for _, row := range result.Rows {
		groups = append(groups, groupFromRow(row))
	}

	log.WithField("total_group_count", len(groups)).Info("found groups")
	return groups, nil
}

// GetGroup returns the group with its member lists. The raw member columns are
// left out of the attribute list.
func (c *DQLClient) GetGroup(ctx context.Context, sessionID, groupName string) (*structs.Group, error) {
	query := fmt.Sprintf("SELECT * FROM dm_group WHERE group_name = '%s'", Escape(groupName))

	result, err := c.ExecuteQuery(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	row := result.First()
	if row == nil {
		return nil, clients.NotFoundError("group", groupName)
	}

	group := groupFromRow(row)
	group.MemberUsers = clients.StringList(row[usersNamesColumn])
	group.MemberGroups = clients.StringList(row[groupsNamesColumn])
	group.Attributes = clients.AttributesFromRow(row, usersNamesColumn, groupsNamesColumn)
	return group, nil
}

func (c *DQLClient) GetGroupMembers(ctx context.Context, sessionID, groupName string) (*structs.GroupMembers, error) {
	query := fmt.Sprintf("SELECT users_names, groups_names FROM dm_group WHERE group_name = '%s'", Escape(groupName))

	result, err := c.ExecuteQuery(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	row := result.First()
	if row == nil {
		return nil, clients.NotFoundError("group", groupName)
	}

	return &structs.GroupMembers{
		Users:  clients.StringList(row[usersNamesColumn]),
		Groups: clients.StringList(row[groupsNamesColumn]),
	}, nil
}

func (c *DQLClient) GetParentGroups(ctx context.Context, sessionID, groupName string) ([]string, error) {
	query := fmt.Sprintf("SELECT group_name FROM dm_group WHERE ANY groups_names = '%s'", Escape(groupName))
	return c.names(ctx, sessionID, query, "group_name")
}
