package dql

import (
	"context"
	"fmt"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

const listCabinetsQuery = "SELECT r_object_id, object_name FROM dm_cabinet ORDER BY object_name"

func (c *DQLClient) GetCabinets(ctx context.Context, sessionID string) ([]structs.Cabinet, error) {
	result, err := c.ExecuteQuery(ctx, sessionID, listCabinetsQuery)
	if err != nil {
		return nil, err
	}

	cabinets := make([]structs.Cabinet, 0, len(result.Rows))
	for _, row := range result.Rows {
		cabinets = append(cabinets, structs.Cabinet{
			ID:   clients.StringValue(row["r_object_id"]),
			Name: clients.StringValue(row["object_name"]),
		})
	}
	return cabinets, nil
}

func (c *DQLClient) GetFolderContents(ctx context.Context, sessionID, folderPath string) ([]structs.FolderItem, error) {
	query := fmt.Sprintf("SELECT r_object_id, object_name, r_object_type, r_modify_date FROM dm_sysobject "+
		"WHERE FOLDER('%s') ORDER BY object_name", Escape(folderPath))

	result, err := c.ExecuteQuery(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	items := make([]structs.FolderItem, 0, len(result.Rows))
	for _, row := range result.Rows {
		objectType := clients.StringValue(row["r_object_type"])
		items = append(items, structs.FolderItem{
			ID:       clients.StringValue(row["r_object_id"]),
			Name:     clients.StringValue(row["object_name"]),
			Type:     objectType,
			IsFolder: clients.IsFolderType(objectType),
			Modified: clients.StringValue(row["r_modify_date"]),
		})
	}
	return items, nil
}
