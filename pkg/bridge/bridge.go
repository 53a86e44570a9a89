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

package bridge

import (
	"context"
	"errors"
	"sync"

	"github.com/redhat-data-and-ai/repobridge/pkg/clients"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients/dql"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients/rest"
	"github.com/redhat-data-and-ai/repobridge/pkg/clients/transport"
	"github.com/redhat-data-and-ai/repobridge/pkg/common/structs"
	"github.com/redhat-data-and-ai/repobridge/pkg/config"
	"github.com/redhat-data-and-ai/repobridge/pkg/logger"
	"github.com/redhat-data-and-ai/repobridge/pkg/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// closeConcurrency bounds the parallel disconnects of the teardown sweep
const closeConcurrency = 4

// Bridge is the single entry point callers hold. It owns one transport and one
// backend per protocol and routes every session bound call through the
// Registry.
type Bridge struct {
	cfg      config.BridgeConfig
	registry *Registry

	mu         sync.Mutex
	transports map[structs.Protocol]*transport.Client
}

var _ clients.Client = (*Bridge)(nil)

// VariantStatus is the health of one protocol bridge
type VariantStatus struct {
	Protocol structs.Protocol
	BaseURL  string
	Ready    bool
	Err      error
}

func New(cfg config.BridgeConfig, sessions store.SessionStoreInterface) *Bridge {
	return &Bridge{
		cfg:        cfg,
		registry:   NewRegistry(sessions),
		transports: make(map[structs.Protocol]*transport.Client),
	}
}

func (b *Bridge) Registry() *Registry {
	return b.registry
}

func (b *Bridge) transport(protocol structs.Protocol) *transport.Client {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.transports[protocol]; ok {
		return t
	}
	t := transport.NewClient(protocol.String()+"-bridge", transport.Config{
		BaseURL:        b.cfg.BaseURL(protocol),
		RequestTimeout: b.cfg.RequestTimeout,
		HealthTimeout:  b.cfg.HealthTimeout,
		RetryCount:     b.cfg.RetryCount,
		RetryBackoff:   b.cfg.RetryBackoff,
	})
	b.transports[protocol] = t
	return t
}

func newBackend(protocol structs.Protocol, t *transport.Client) clients.Client {
	if protocol == structs.ProtocolREST {
		return rest.NewClient(t)
	}
	return dql.NewClient(t)
}

// EnsureRunning verifies that the bridge for protocol answers its health
// probe and returns the backend serving it. The backend is installed in the
// registry only after a successful probe. Bridge processes are never started
// here.
func (b *Bridge) EnsureRunning(ctx context.Context, protocol structs.Protocol) (clients.Client, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"protocol": protocol,
		"port":     b.cfg.Port(protocol),
	})

	t := b.transport(protocol)
	if err := t.Health(ctx); err != nil {
		log.WithError(err).Error("bridge is not reachable")
		return nil, &clients.BackendUnreachableError{
			Protocol: protocol,
			Port:     b.cfg.Port(protocol),
			Err:      err,
		}
	}

	if backend, ok := b.registry.Backend(protocol); ok {
		return backend, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if backend, ok := b.registry.Backend(protocol); ok {
		return backend, nil
	}
	backend := newBackend(protocol, t)
	b.registry.SetBackend(protocol, backend)

	log.Info("bridge is ready")
	return backend, nil
}

// Status probes both bridges concurrently
func (b *Bridge) Status(ctx context.Context) []VariantStatus {
	protocols := []structs.Protocol{structs.ProtocolQuery, structs.ProtocolREST}
	statuses := make([]VariantStatus, len(protocols))

	g, gctx := errgroup.WithContext(ctx)
	for i, protocol := range protocols {
		g.Go(func() error {
			_, err := b.EnsureRunning(gctx, protocol)
			statuses[i] = VariantStatus{
				Protocol: protocol,
				BaseURL:  b.cfg.BaseURL(protocol),
				Ready:    err == nil,
				Err:      err,
			}
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

// Connect picks the protocol from the params, verifies its bridge, opens the
// session and registers it with that protocol.
func (b *Bridge) Connect(ctx context.Context, params structs.ConnectParams) (string, error) {
	protocol, err := params.Protocol()
	if err != nil {
		return "", err
	}

	backend, err := b.EnsureRunning(ctx, protocol)
	if err != nil {
		return "", err
	}

	sessionID, err := backend.Connect(ctx, params)
	if err != nil {
		return "", err
	}

	if err := b.registry.Register(ctx, sessionID, protocol); err != nil {
		_ = backend.Disconnect(ctx, sessionID)
		return "", err
	}

	logger.Logger(ctx).WithFields(logrus.Fields{
		"session":  sessionID,
		"protocol": protocol,
	}).Info("session registered")
	return sessionID, nil
}

// Disconnect closes the session on its backend. The session is unregistered
// even when the backend call fails.
func (b *Bridge) Disconnect(ctx context.Context, sessionID string) error {
	var disconnectErr error
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		disconnectErr = err
	} else {
		disconnectErr = backend.Disconnect(ctx, sessionID)
	}

	if err := b.registry.Unregister(ctx, sessionID); err != nil {
		return errors.Join(disconnectErr, err)
	}
	return disconnectErr
}

// Close disconnects every registered session
func (b *Bridge) Close(ctx context.Context) error {
	sessions, err := b.registry.Sessions(ctx)
	if err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(closeConcurrency)
	for sessionID := range sessions {
		g.Go(func() error {
			if err := b.Disconnect(gctx, sessionID); err != nil {
				logger.Logger(ctx).WithField("session", sessionID).WithError(err).Warn("failed to disconnect session")
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Logger(ctx).WithField("sessions", len(sessions)).Info("bridge closed")
	return errors.Join(errs...)
}

func (b *Bridge) ExecuteQuery(ctx context.Context, sessionID, query string) (*structs.QueryResult, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.ExecuteQuery(ctx, sessionID, query)
}

func (b *Bridge) GetCabinets(ctx context.Context, sessionID string) ([]structs.Cabinet, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetCabinets(ctx, sessionID)
}

func (b *Bridge) GetFolderContents(ctx context.Context, sessionID, folderPath string) ([]structs.FolderItem, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetFolderContents(ctx, sessionID, folderPath)
}

func (b *Bridge) GetUsers(ctx context.Context, sessionID string) ([]*structs.User, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetUsers(ctx, sessionID)
}

func (b *Bridge) GetUser(ctx context.Context, sessionID, userName string) (*structs.User, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetUser(ctx, sessionID, userName)
}

func (b *Bridge) GetGroupsForUser(ctx context.Context, sessionID, userName string) ([]string, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetGroupsForUser(ctx, sessionID, userName)
}

func (b *Bridge) GetGroups(ctx context.Context, sessionID string) ([]*structs.Group, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetGroups(ctx, sessionID)
}

func (b *Bridge) GetGroup(ctx context.Context, sessionID, groupName string) (*structs.Group, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetGroup(ctx, sessionID, groupName)
}

func (b *Bridge) GetGroupMembers(ctx context.Context, sessionID, groupName string) (*structs.GroupMembers, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetGroupMembers(ctx, sessionID, groupName)
}

func (b *Bridge) GetParentGroups(ctx context.Context, sessionID, groupName string) ([]string, error) {
	backend, err := b.registry.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return backend.GetParentGroups(ctx, sessionID, groupName)
}
