package entitycache

import (
	"context"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

// UserCache caches repository users
type UserCache struct {
	*Cache[*structs.User]
	client   clients.Client
	sessions SessionSource
}

func NewUserCache(client clients.Client, sessions SessionSource) *UserCache {
	return &UserCache{
		Cache:    newCache[*structs.User]("user", sessions, client.GetUsers, client.GetUser),
		client:   client,
		sessions: sessions,
	}
}

// GetUserGroups returns the sorted names of the groups the user directly
// belongs to, or an empty list when the lookup fails
func (c *UserCache) GetUserGroups(ctx context.Context, name string) []string {
	return c.GetUserGroupsResult(ctx, name).Value
}

func (c *UserCache) GetUserGroupsResult(ctx context.Context, name string) Result[[]string] {
	return lookupNames(ctx, c.sessions, "user groups", name, c.client.GetGroupsForUser)
}
