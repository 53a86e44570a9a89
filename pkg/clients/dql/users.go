package dql

import (
	"context"
	"fmt"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

const listUsersQuery = "SELECT r_object_id, user_name, user_login_name, user_address, user_source, " +
	"user_state, default_folder, description FROM dm_user ORDER BY user_name"

func userFromRow(row map[string]interface{}) *structs.User {
	return &structs.User{
		ID:            clients.StringValue(row["r_object_id"]),
		UserName:      clients.StringValue(row["user_name"]),
		LoginName:     clients.StringValue(row["user_login_name"]),
		Address:       clients.StringValue(row["user_address"]),
		Source:        clients.StringValue(row["user_source"]),
		State:         clients.StringValue(row["user_state"]),
		DefaultFolder: clients.StringValue(row["default_folder"]),
		Description:   clients.StringValue(row["description"]),
	}
}

func (c *DQLClient) GetUsers(ctx context.Context, sessionID string) ([]*structs.User, error) {
	log := logger.Logger(ctx).WithField("service", serviceName)

	result, err := c.ExecuteQuery(ctx, sessionID, listUsersQuery)
	if err != nil {
		log.WithError(err).Error("error fetching list of users")
		return nil, err
	}

	users := make([]*structs.User, 0, len(result.Rows))
	for _, row := range result.Rows {
		users = append(users, userFromRow(row))
	}

	log.WithField("total_user_count", len(users)).Info("found users")
	return users, nil
}

// GetUser selects every column of the user, the full row becomes the
// attribute list
func (c *DQLClient) GetUser(ctx context.Context, sessionID, userName string) (*structs.User, error) {
	query := fmt.Sprintf("SELECT * FROM dm_user WHERE user_name = '%s'", Escape(userName))

	result, err := c.ExecuteQuery(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	row := result.First()
	if row == nil {
		return nil, clients.NotFoundError("user", userName)
	}

	user := userFromRow(row)
	user.Attributes = clients.AttributesFromRow(row)
	return user, nil
}

func (c *DQLClient) GetGroupsForUser(ctx context.Context, sessionID, userName string) ([]string, error) {
	query := fmt.Sprintf("SELECT group_name FROM dm_group WHERE ANY users_names = '%s'", Escape(userName))
	return c.names(ctx, sessionID, query, "group_name")
}
