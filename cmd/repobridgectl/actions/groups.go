package actions

import (
	"context"
	"strings"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

// Groups lists the repository groups
func Groups(ctx context.Context, appCfg *config.AppConfig, cfg ListConfig) (string, error) {
	return withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		if err := rt.Groups.Refresh(ctx); err != nil {
			return "", err
		}

		names := rt.Groups.GetEntityNames()
		if cfg.search != "" {
			names = rt.Groups.SearchEntities(cfg.search)
		}

		groups := make([]*structs.Group, 0, len(names))
		for _, name := range names {
			if group, ok := rt.Groups.GetEntity(name); ok {
				groups = append(groups, group)
			}
		}

		return render(cfg.outputType, groups, func() string {
			rows := [][]string{}
			for _, g := range groups {
				rows = append(rows, []string{g.Name, g.Class, g.Address, g.Description})
			}
			return getTable([]string{"Name", "Class", "Address", "Description"}, rows)
		})
	})
}

type groupDetails struct {
	*structs.Group
	Parents []string `json:"parents"`
	Status  string   `json:"status"`
}

// Group shows one group with its attributes, members and parents
func Group(ctx context.Context, appCfg *config.AppConfig, cfg NamedConfig) (string, error) {
	return withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		if err := rt.Groups.Refresh(ctx); err != nil {
			return "", err
		}

		result := rt.Groups.FetchDetailsResult(ctx, cfg.name)
		if !result.Ok() {
			return "", result.Err
		}
		if result.Err != nil {
			logger.Logger(ctx).WithError(result.Err).Warn("showing cached group")
		}

		group := result.Value
		parents := rt.Groups.GetParentGroups(ctx, group.Name)

		data := groupDetails{Group: group, Parents: parents, Status: result.Status.String()}
		return render(cfg.outputType, data, func() string {
			return attributeTable(group.Attributes) + getTable(
				[]string{"Member users", "Member groups", "Parents"},
				[][]string{{
					strings.Join(group.MemberUsers, ", "),
					strings.Join(group.MemberGroups, ", "),
					strings.Join(parents, ", "),
				}},
			)
		})
	})
}
