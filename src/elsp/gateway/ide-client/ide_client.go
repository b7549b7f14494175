// Package ideclient sends server-initiated notifications and calls back to the editor of a session.
package ideclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/internal/errors"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Gateway routes outbound messages to the editor connection of the session carried by the context.
type Gateway interface {
	// RegisterClient binds conn to the session id. Called once per accepted connection.
	RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error
	// DeregisterClient forgets the connection of the session id.
	DeregisterClient(ctx context.Context, id uuid.UUID) error

	Progress(ctx context.Context, params *protocol.ProgressParams) error
	WorkDoneProgressCreate(ctx context.Context, params *protocol.WorkDoneProgressCreateParams) error
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
	PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error
	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error
	ApplyEdit(ctx context.Context, params *protocol.ApplyWorkspaceEditParams) (*protocol.ApplyWorkspaceEditResponse, error)
}

type gateway struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]protocol.Client

	logger *zap.Logger
	stats  tally.Scope
}

// New returns a Gateway with no registered clients.
func New(logger *zap.Logger, stats tally.Scope) Gateway {
	return &gateway{
		clients: make(map[uuid.UUID]protocol.Client),
		logger:  logger,
		stats:   stats.SubScope("ide_client"),
	}
}

func (g *gateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	if conn == nil {
		return errors.New("can't register a nil connection")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[id] = protocol.ClientDispatcher(*conn, g.logger.With(zap.Stringer("session", id)))
	return nil
}

func (g *gateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, id)
	return nil
}

func (g *gateway) Progress(ctx context.Context, params *protocol.ProgressParams) error {
	return g.send(ctx, protocol.MethodProgress, func(c protocol.Client) error {
		return c.Progress(ctx, params)
	})
}

func (g *gateway) WorkDoneProgressCreate(ctx context.Context, params *protocol.WorkDoneProgressCreateParams) error {
	return g.send(ctx, protocol.MethodWorkDoneProgressCreate, func(c protocol.Client) error {
		return c.WorkDoneProgressCreate(ctx, params)
	})
}

func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	return g.send(ctx, protocol.MethodWindowLogMessage, func(c protocol.Client) error {
		return c.LogMessage(ctx, params)
	})
}

func (g *gateway) PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error {
	return g.send(ctx, protocol.MethodTextDocumentPublishDiagnostics, func(c protocol.Client) error {
		return c.PublishDiagnostics(ctx, params)
	})
}

func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	return g.send(ctx, protocol.MethodWindowShowMessage, func(c protocol.Client) error {
		return c.ShowMessage(ctx, params)
	})
}

func (g *gateway) ApplyEdit(ctx context.Context, params *protocol.ApplyWorkspaceEditParams) (*protocol.ApplyWorkspaceEditResponse, error) {
	var result *protocol.ApplyWorkspaceEditResponse
	err := g.send(ctx, protocol.MethodWorkspaceApplyEdit, func(c protocol.Client) error {
		var err error
		result, err = c.ApplyEdit(ctx, params)
		return err
	})
	return result, err
}

// send runs fn against the client of the session in ctx and counts the outcome per method.
func (g *gateway) send(ctx context.Context, method string, fn func(protocol.Client) error) error {
	scope := g.stats.Tagged(map[string]string{"method": method})

	client, err := g.client(ctx)
	if err != nil {
		scope.Counter("unrouted").Inc(1)
		return fmt.Errorf("sending %s to IDE: %w", method, err)
	}
	if err := fn(client); err != nil {
		scope.Counter("failed").Inc(1)
		return fmt.Errorf("sending %s to IDE: %w", method, err)
	}
	scope.Counter("sent").Inc(1)
	return nil
}

func (g *gateway) client(ctx context.Context) (protocol.Client, error) {
	id, err := mapper.ContextToSessionUUID(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.clients[id]
	if !ok {
		return nil, &errors.UUIDNotFoundError{UUID: id}
	}
	return c, nil
}
