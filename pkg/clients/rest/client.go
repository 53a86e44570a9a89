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

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
)

const serviceName = "rest-bridge"

// Transport is the part of transport.Client the backend needs
type Transport interface {
	DoJSON(ctx context.Context, endpoint, method string, payload, out interface{}) (int, error)
}

// RESTClient implements clients.Client with one call per operation against
// fixed REST bridge paths.
type RESTClient struct {
	transport Transport
}

var _ clients.Client = (*RESTClient)(nil)

func NewClient(transport Transport) *RESTClient {
	return &RESTClient{transport: transport}
}

type connectRequest struct {
	Endpoint   string `json:"endpoint"`
	Repository string `json:"repository"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
}

type entry[P any] struct {
	Content struct {
		Properties P `json:"properties"`
	} `json:"content"`
}

type collection[P any] struct {
	Entries []entry[P] `json:"entries"`
}

type nameList struct {
	Names []string `json:"names"`
}

func sessionPath(sessionID, format string, args ...interface{}) string {
	escaped := make([]interface{}, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return "/sessions/" + url.PathEscape(sessionID) + fmt.Sprintf(format, escaped...)
}

// notFound maps a 404 from a single-entity path to clients.ErrNotFound
func notFound(err error, kind, name string) error {
	var statusErr *clients.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return clients.NotFoundError(kind, name)
	}
	return err
}

func (c *RESTClient) Connect(ctx context.Context, params structs.ConnectParams) (string, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service":    serviceName,
		"connection": params.String(),
	})

	protocol, err := params.Protocol()
	if err != nil {
		return "", err
	}
	if protocol != structs.ProtocolREST {
		return "", fmt.Errorf("%w: rest bridge requires an endpoint", clients.ErrInvalidConnectParams)
	}

	var resp sessionResponse
	_, err = c.transport.DoJSON(ctx, "/connect", http.MethodPost, connectRequest{
		Endpoint:   params.Endpoint,
		Repository: params.Repository,
		Username:   params.Username,
		Password:   params.Password,
	}, &resp)
	if err != nil {
		log.WithError(err).Error("failed to connect")
		return "", fmt.Errorf("failed to connect to %s: %w", params.Repository, err)
	}
	if resp.SessionID == "" {
		return "", errors.New("rest bridge returned an empty session id")
	}

	log.WithField("session", resp.SessionID).Info("connected")
	return resp.SessionID, nil
}

func (c *RESTClient) Disconnect(ctx context.Context, sessionID string) error {
	_, err := c.transport.DoJSON(ctx, "/disconnect", http.MethodPost, sessionRequest{SessionID: sessionID}, nil)
	if err != nil {
		logger.Logger(ctx).WithFields(logrus.Fields{
			"service": serviceName,
			"session": sessionID,
		}).WithError(err).Error("failed to disconnect")
		return err
	}
	return nil
}

// ExecuteQuery is not available over REST
func (c *RESTClient) ExecuteQuery(ctx context.Context, sessionID, query string) (*structs.QueryResult, error) {
	return nil, clients.ErrQueryNotSupported
}

type cabinetProperties struct {
	ID   string `json:"r_object_id"`
	Name string `json:"object_name"`
}

type folderItemProperties struct {
	ID       string `json:"r_object_id"`
	Name     string `json:"object_name"`
	Type     string `json:"r_object_type"`
	Modified string `json:"r_modify_date"`
}

func (c *RESTClient) GetCabinets(ctx context.Context, sessionID string) ([]structs.Cabinet, error) {
	var resp collection[cabinetProperties]
	if _, err := c.transport.DoJSON(ctx, sessionPath(sessionID, "/cabinets"), http.MethodGet, nil, &resp); err != nil {
		return nil, err
	}

	cabinets := make([]structs.Cabinet, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		p := e.Content.Properties
		cabinets = append(cabinets, structs.Cabinet{ID: p.ID, Name: p.Name})
	}
	return cabinets, nil
}

func (c *RESTClient) GetFolderContents(ctx context.Context, sessionID, folderPath string) ([]structs.FolderItem, error) {
	endpoint := sessionPath(sessionID, "/folders/contents") + "?path=" + url.QueryEscape(folderPath)

	var resp collection[folderItemProperties]
	if _, err := c.transport.DoJSON(ctx, endpoint, http.MethodGet, nil, &resp); err != nil {
		return nil, notFound(err, "folder", folderPath)
	}

	items := make([]structs.FolderItem, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		p := e.Content.Properties
		items = append(items, structs.FolderItem{
			ID:       p.ID,
			Name:     p.Name,
			Type:     p.Type,
			IsFolder: clients.IsFolderType(p.Type),
			Modified: p.Modified,
		})
	}
	return items, nil
}
