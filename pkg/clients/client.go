/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package clients

import (
	"context"

	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks . Client

// Client is the set of repository operations every bridge protocol provides.
// Implementations must return the same record shapes regardless of how they
// source the data.
type Client interface {
	// Connect opens a repository session and returns the server issued id
	Connect(ctx context.Context, params structs.ConnectParams) (string, error)
	Disconnect(ctx context.Context, sessionID string) error

	// ExecuteQuery runs a raw query. Only the query protocol supports it,
	// the REST protocol returns ErrQueryNotSupported.
	ExecuteQuery(ctx context.Context, sessionID, query string) (*structs.QueryResult, error)

	GetCabinets(ctx context.Context, sessionID string) ([]structs.Cabinet, error)
	GetFolderContents(ctx context.Context, sessionID, folderPath string) ([]structs.FolderItem, error)

	GetUsers(ctx context.Context, sessionID string) ([]*structs.User, error)
	// GetUser returns ErrNotFound when no user has the name
	GetUser(ctx context.Context, sessionID, userName string) (*structs.User, error)
	GetGroupsForUser(ctx context.Context, sessionID, userName string) ([]string, error)

	GetGroups(ctx context.Context, sessionID string) ([]*structs.Group, error)
	// GetGroup returns ErrNotFound when no group has the name
	GetGroup(ctx context.Context, sessionID, groupName string) (*structs.Group, error)
	GetGroupMembers(ctx context.Context, sessionID, groupName string) (*structs.GroupMembers, error)
	GetParentGroups(ctx context.Context, sessionID, groupName string) ([]string, error)
}
