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

package dql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/sirupsen/logrus"
)

const serviceName = "query-bridge"

// Transport is the part of transport.Client the backend needs
type Transport interface {
	DoJSON(ctx context.Context, endpoint, method string, payload, out interface{}) (int, error)
}

// DQLClient implements clients.Client by composing queries against the query
// protocol bridge and reshaping the returned rows.
type DQLClient struct {
	transport Transport
}

var _ clients.Client = (*DQLClient)(nil)

func NewClient(transport Transport) *DQLClient {
	return &DQLClient{transport: transport}
}

type connectRequest struct {
	Docbroker  string `json:"docbroker"`
	Port       int    `json:"port"`
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

type queryRequest struct {
	SessionID string `json:"sessionId"`
	Query     string `json:"query"`
}

type queryResponse struct {
	Columns  []string                 `json:"columns"`
	Rows     []map[string]interface{} `json:"rows"`
	RowCount *int                     `json:"rowCount"`
}

// Escape doubles every single quote so the value can be embedded in a quoted
// query literal
func Escape(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

func (c *DQLClient) Connect(ctx context.Context, params structs.ConnectParams) (string, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"service":    serviceName,
		"connection": params.String(),
	})

	protocol, err := params.Protocol()
	if err != nil {
		return "", err
	}
	if protocol != structs.ProtocolQuery {
		return "", fmt.Errorf("%w: query bridge requires a docbroker", clients.ErrInvalidConnectParams)
	}

	var resp sessionResponse
	_, err = c.transport.DoJSON(ctx, "/connect", http.MethodPost, connectRequest{
		Docbroker:  params.Docbroker,
		Port:       params.Port,
		Repository: params.Repository,
		Username:   params.Username,
		Password:   params.Password,
	}, &resp)
	if err != nil {
		log.WithError(err).Error("failed to connect")
		return "", fmt.Errorf("failed to connect to %s: %w", params.Repository, err)
	}
	if resp.SessionID == "" {
		return "", errors.New("query bridge returned an empty session id")
	}

	log.WithField("session", resp.SessionID).Info("connected")
	return resp.SessionID, nil
}

func (c *DQLClient) Disconnect(ctx context.Context, sessionID string) error {
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

// ExecuteQuery runs one query and normalizes the tabular result. Missing
// columns are taken from the first row, missing rows become an empty list and
// a missing row count falls back to the number of rows.
func (c *DQLClient) ExecuteQuery(ctx context.Context, sessionID, query string) (*structs.QueryResult, error) {
	log := logger.Logger(ctx).WithField("service", serviceName)

	var resp queryResponse
	_, err := c.transport.DoJSON(ctx, "/query", http.MethodPost, queryRequest{
		SessionID: sessionID,
		Query:     query,
	}, &resp)
	if err != nil {
		log.WithError(err).WithField("query", query).Error("query failed")
		return nil, fmt.Errorf("query failed: %w", err)
	}

	result := &structs.QueryResult{
		Columns: resp.Columns,
		Rows:    resp.Rows,
	}
	if result.Rows == nil {
		result.Rows = []map[string]interface{}{}
	}
	if len(result.Columns) == 0 {
		result.Columns = columnsOf(result.First())
	}
	if resp.RowCount != nil {
		result.RowCount = *resp.RowCount
	} else {
		result.RowCount = len(result.Rows)
	}

	log.WithField("rows", result.RowCount).Debug("query completed")
	return result, nil
}

func columnsOf(row map[string]interface{}) []string {
	columns := make([]string, 0, len(row))
	for name := range row {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}

// names collects one column of every row as a list of names
func (c *DQLClient) names(ctx context.Context, sessionID, query, column string) ([]string, error) {
	result, err := c.ExecuteQuery(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if name := clients.StringValue(row[column]); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}
