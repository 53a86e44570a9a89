package entitycache

import (
	"context"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"k8s.io/apimachinery/pkg/util/sets"
)

// GroupCache caches repository groups
type GroupCache struct {
	*Cache[*structs.Group]
	client   clients.Client
	sessions SessionSource
}

func NewGroupCache(client clients.Client, sessions SessionSource) *GroupCache {
	return &GroupCache{
		Cache:    newCache[*structs.Group]("group", sessions, client.GetGroups, client.GetGroup),
		client:   client,
		sessions: sessions,
	}
}

// GetParentGroups returns the sorted names of the groups that directly
// contain the group, or an empty list when the lookup fails
func (c *GroupCache) GetParentGroups(ctx context.Context, name string) []string {
	return c.GetParentGroupsResult(ctx, name).Value
}

func (c *GroupCache) GetParentGroupsResult(ctx context.Context, name string) Result[[]string] {
	return lookupNames(ctx, c.sessions, "parent groups", name, c.client.GetParentGroups)
}

type namesFunc func(ctx context.Context, sessionID, name string) ([]string, error)

// lookupNames runs a relationship lookup. Failures degrade to an empty list.
func lookupNames(ctx context.Context, sessions SessionSource, what, name string, fn namesFunc) Result[[]string] {
	sessionID, ok := sessions.ActiveSession()
	if !ok {
		return Result[[]string]{Value: []string{}, Status: StatusFailed, Err: clients.ErrNoActiveSession}
	}

	names, err := fn(ctx, sessionID, name)
	if err != nil {
		logger.Logger(ctx).WithField("name", name).WithError(err).Warnf("failed to look up %s", what)
		return Result[[]string]{Value: []string{}, Status: StatusFailed, Err: err}
	}
	return Fresh(sets.List(sets.New(names...)))
}
