package actions

import (
	"context"
	"strings"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
)

// Users lists the repository users
func Users(ctx context.Context, appCfg *config.AppConfig, cfg ListConfig) (string, error) {
	return withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		if err := rt.Users.Refresh(ctx); err != nil {
			return "", err
		}

		names := rt.Users.GetEntityNames()
		if cfg.search != "" {
			names = rt.Users.SearchEntities(cfg.search)
		}

		users := make([]*structs.User, 0, len(names))
		for _, name := range names {
			if user, ok := rt.Users.GetEntity(name); ok {
				users = append(users, user)
			}
		}

		return render(cfg.outputType, users, func() string {
			rows := [][]string{}
			for _, u := range users {
				rows = append(rows, []string{u.UserName, u.LoginName, u.Address, u.State})
			}
			return getTable([]string{"Name", "Login", "Address", "State"}, rows)
		})
	})
}

type userDetails struct {
	*structs.User
	Groups []string `json:"groups"`
	Status string   `json:"status"`
}

// User shows one user with its attributes and groups. A failed detail fetch
// falls back to the summary record.
func User(ctx context.Context, appCfg *config.AppConfig, cfg NamedConfig) (string, error) {
	return withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		if err := rt.Users.Refresh(ctx); err != nil {
			return "", err
		}

		result := rt.Users.FetchDetailsResult(ctx, cfg.name)
		if !result.Ok() {
			return "", result.Err
		}

		groups := rt.Users.GetUserGroups(ctx, result.Value.UserName)
		if result.Err != nil {
			logger.Logger(ctx).WithError(result.Err).Warn("showing cached user")
		}

		data := userDetails{User: result.Value, Groups: groups, Status: result.Status.String()}
		return render(cfg.outputType, data, func() string {
			return attributeTable(result.Value.Attributes) +
				getTable([]string{"Groups"}, [][]string{{strings.Join(groups, ", ")}})
		})
	})
}

func attributeTable(attributes []structs.Attribute) string {
	rows := [][]string{}
	for _, a := range attributes {
		rows = append(rows, []string{a.Name, a.Value, a.Type})
	}
	return getTable([]string{"Attribute", "Value", "Type"}, rows)
}
