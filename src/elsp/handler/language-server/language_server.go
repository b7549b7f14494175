// Package languageserver routes LSP requests from editor connections to the language service.
package languageserver

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	controller "github.com/uber/embedded-lsp/src/elsp/controller/language-service"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	elsperrors "github.com/uber/embedded-lsp/src/elsp/internal/errors"
	"github.com/uber/embedded-lsp/src/elsp/internal/jsonrpcfx"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/zap"
)

// Handler accepts editor connections and hands out a router for each of them.
type Handler interface {
	jsonrpcfx.ConnectionManager
}

type handler struct {
	ctrl   controller.Controller
	logger *zap.SugaredLogger
	stats  tally.Scope
}

// New constructs a Handler and registers it with the JSON-RPC module.
func New(ctrl controller.Controller, jsonrpcmod jsonrpcfx.JSONRPCModule, logger *zap.SugaredLogger, stats tally.Scope) (Handler, error) {
	h := &handler{
		ctrl:   ctrl,
		logger: logger.With("handler", "language-server"),
		stats:  stats.SubScope("json_rpc"),
	}
	if err := jsonrpcmod.RegisterConnectionManager(h); err != nil {
		return nil, err
	}
	return h, nil
}

// NewConnection starts a session for the connection and returns a router that includes its UUID.
func (h *handler) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (jsonrpcfx.Router, error) {
	id, err := h.ctrl.InitSession(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("error while creating new connection: %w", err)
	}

	return &jsonRPCRouter{
		ctrl:   h.ctrl,
		uuid:   id,
		logger: h.logger,
		stats:  h.stats,
	}, nil
}

// RemoveConnection cleans up a closed connection.
func (h *handler) RemoveConnection(ctx context.Context, id uuid.UUID) {
	// The session is removed even if no exit notification was received.
	ctx = context.WithValue(ctx, entity.SessionContextKey, id)
	err := h.ctrl.EndSession(ctx, id)
	if elsperrors.IsNotFound(err) {
		// Already ended by an exit notification.
		return
	}
	if err != nil {
		h.logger.Warnf("ending session %s: %s", id, err)
	}
}
