package actions

import (
	"context"
	"strconv"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
)

// Query runs a query against a query-protocol session
func Query(ctx context.Context, appCfg *config.AppConfig, cfg NamedConfig) (string, error) {
	return withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		sessionID, _ := rt.Conn.ActiveSession()
		result, err := rt.Bridge.ExecuteQuery(ctx, sessionID, cfg.name)
		if err != nil {
			return "", err
		}

		return render(cfg.outputType, result, func() string {
			rows := make([][]string, 0, len(result.Rows))
			for _, row := range result.Rows {
				line := make([]string, 0, len(result.Columns))
				for _, column := range result.Columns {
					line = append(line, cell(row[column]))
				}
				rows = append(rows, line)
			}
			return getTable(result.Columns, rows)
		})
	})
}

// Cabinets lists the top-level cabinets
func Cabinets(ctx context.Context, appCfg *config.AppConfig, cfg SessionConfig) (string, error) {
	return withSession(ctx, appCfg, cfg, func(ctx context.Context, rt *Runtime) (string, error) {
		sessionID, _ := rt.Conn.ActiveSession()
		cabinets, err := rt.Bridge.GetCabinets(ctx, sessionID)
		if err != nil {
			return "", err
		}
		if cabinets == nil {
			cabinets = []structs.Cabinet{}
		}

		return render(cfg.outputType, cabinets, func() string {
			rows := [][]string{}
			for _, c := range cabinets {
				rows = append(rows, []string{c.Name, c.ID})
			}
			return getTable([]string{"Name", "ID"}, rows)
		})
	})
}

// List lists the items of the folder at the given path
func List(ctx context.Context, appCfg *config.AppConfig, cfg NamedConfig) (string, error) {
	return withSession(ctx, appCfg, cfg.SessionConfig, func(ctx context.Context, rt *Runtime) (string, error) {
		sessionID, _ := rt.Conn.ActiveSession()
		items, err := rt.Bridge.GetFolderContents(ctx, sessionID, cfg.name)
		if err != nil {
			return "", err
		}
		if items == nil {
			items = []structs.FolderItem{}
		}

		return render(cfg.outputType, items, func() string {
			rows := [][]string{}
			for _, item := range items {
				rows = append(rows, []string{item.Name, item.Type, strconv.FormatBool(item.IsFolder), item.Modified, item.ID})
			}
			return getTable([]string{"Name", "Type", "Folder", "Modified", "ID"}, rows)
		})
	})
}
