package jsonrpcfx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"github.com/uber/embedded-lsp/src/elsp/internal/serverinfofile"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyAddress = "jsonrpc.address"
	_outputKey        = "lsp-address"
)

// Module is an fx module to handle JSON-RPC requests.
var Module = fx.Provide(New)

// JSONRPCModule represents a module to manage JSON-RPC requests.
type JSONRPCModule interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
	ServeStream(ctx context.Context, conn jsonrpc2.Conn) error
	RegisterConnectionManager(connectionManager ConnectionManager) error
}

// Router serves as the interface through which handling of requests will be implemented.
type Router interface {
	HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error
	UUID() uuid.UUID
}

// ConnectionManager will manage each active connection and its corresponding Router throughout the lifecycle of a connection.
type ConnectionManager interface {
	NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (router Router, err error)
	RemoveConnection(ctx context.Context, id uuid.UUID)
}

type module struct {
	Address string `yaml:"address"`

	connectionMgr  ConnectionManager
	ln             net.Listener
	logger         *zap.SugaredLogger
	stats          tally.Scope
	serverInfoFile serverinfofile.ServerInfoFile

	cancel  context.CancelFunc
	serving sync.WaitGroup
}

// Params define values to be used by the JSON-RPC module.
type Params struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	Logger         *zap.SugaredLogger
	Stats          tally.Scope
	ServerInfoFile serverinfofile.ServerInfoFile
}

// New creates a new server to handle JSON-RPC requests on the configured address.
func New(p Params) (JSONRPCModule, error) {
	if p.Lifecycle == nil || p.Config == nil {
		return nil, errors.New("required parameters are missing")
	}

	m := &module{
		logger:         p.Logger,
		stats:          p.Stats.SubScope("jsonrpc"),
		serverInfoFile: p.ServerInfoFile,
	}
	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: m.OnStart,
		OnStop:  m.OnStop,
	})
	return m, nil
}

// OnStart listens on the configured address, publishes the bound address and begins accepting connections.
func (m *module) OnStart(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}

	// The listening address is only known once bound when the configured port is 0.
	address := m.ln.Addr().String()
	if err := m.serverInfoFile.UpdateField(_outputKey, address); err != nil {
		m.ln.Close()
		return err
	}

	serveCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.serving.Add(1)
	go func() {
		defer m.serving.Done()
		m.serve(serveCtx, address)
	}()
	return nil
}

// OnStop closes the listener and waits for the accept loop to return.
func (m *module) OnStop(ctx context.Context) error {
	if m.cancel == nil {
		return nil
	}
	m.cancel()
	err := m.ln.Close()
	m.serving.Wait()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// ServeStream is called when a new connection is initiated. Requests received via the connection will be routed to the handler, and answered via the connection's replier.
func (m *module) ServeStream(ctx context.Context, conn jsonrpc2.Conn) error {
	if m.connectionMgr == nil {
		m.logger.Errorf("cannot serve connection, no connection manager set")
		return errors.New("cannot serve connection, no connection manager set")
	}

	router, err := m.connectionMgr.NewConnection(ctx, &conn)
	if err != nil {
		return err
	}
	m.logger.Infow("client connected", zap.Stringer("uuid", router.UUID()))
	m.stats.Counter("connections").Inc(1)

	// Requests run one at a time in arrival order, while cancellations are handled as they arrive.
	conn.Go(ctx, protocol.CancelHandler(jsonrpc2.AsyncHandler(router.HandleReq)))

	<-conn.Done()

	m.connectionMgr.RemoveConnection(ctx, router.UUID())
	m.logger.Infow("client disconnected", zap.Stringer("uuid", router.UUID()))
	return conn.Err()
}

// RegisterConnectionManager sets the connection manager, which keeps track of current active connections and provides a Router implementation.
func (m *module) RegisterConnectionManager(connectionMgr ConnectionManager) error {
	if m.connectionMgr != nil {
		return errors.New("cannot register a duplicate connection manager")
	}
	m.connectionMgr = connectionMgr
	return nil
}

func (m *module) setup() error {
	if m.Address == "" {
		return errors.New("setup called before address is set")
	}

	ln, err := net.Listen("tcp", m.Address)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", m.Address, err)
	}
	m.ln = ln
	return nil
}

// serve accepts connections until the listener is closed.
func (m *module) serve(ctx context.Context, address string) {
	m.logger.Infow("started JSON-RPC inbound", zap.String("address", address))
	err := jsonrpc2.Serve(ctx, m.ln, m, 0)
	if err != nil && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
		m.logger.Errorw("JSON-RPC inbound stopped", zap.Error(err))
		return
	}
	m.logger.Infow("stopped JSON-RPC inbound", zap.String("address", address))
}

// processConfig will parse the configuration for any values required by this module.
func (m *module) processConfig(cfg config.Provider) error {
	if err := cfg.Get(_configKeyAddress).Populate(&m.Address); err != nil {
		return fmt.Errorf("getting config field %q: %w", _configKeyAddress, err)
	}
	if m.Address == "" {
		return fmt.Errorf("missing field %q in config", _configKeyAddress)
	}
	return nil
}
