// Package jsonrpcfxmock holds gomock mocks of the interfaces in json_rpc.go.
package jsonrpcfxmock

import (
	context "context"
	reflect "reflect"

	jsonrpcfx "github.com/uber/embedded-lsp/src/elsp/internal/jsonrpcfx"
	jsonrpc2 "go.lsp.dev/jsonrpc2"
	gomock "go.uber.org/mock/gomock"
)

// MockJSONRPCModule is a mock of JSONRPCModule interface.
type MockJSONRPCModule struct {
	ctrl     *gomock.Controller
	recorder *MockJSONRPCModuleMockRecorder
	isgomock struct{}
}

// MockJSONRPCModuleMockRecorder is the mock recorder for MockJSONRPCModule.
type MockJSONRPCModuleMockRecorder struct {
	mock *MockJSONRPCModule
}

// NewMockJSONRPCModule creates a new mock instance.
func NewMockJSONRPCModule(ctrl *gomock.Controller) *MockJSONRPCModule {
	mock := &MockJSONRPCModule{ctrl: ctrl}
	mock.recorder = &MockJSONRPCModuleMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockJSONRPCModule) EXPECT() *MockJSONRPCModuleMockRecorder {
	return m.recorder
}

// OnStart mocks base method.
func (m *MockJSONRPCModule) OnStart(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OnStart", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// OnStart indicates an expected call of OnStart.
func (mr *MockJSONRPCModuleMockRecorder) OnStart(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnStart", reflect.TypeOf((*MockJSONRPCModule)(nil).OnStart), ctx)
}

// OnStop mocks base method.
func (m *MockJSONRPCModule) OnStop(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OnStop", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// OnStop indicates an expected call of OnStop.
func (mr *MockJSONRPCModuleMockRecorder) OnStop(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OnStop", reflect.TypeOf((*MockJSONRPCModule)(nil).OnStop), ctx)
}

// RegisterConnectionManager mocks base method.
func (m *MockJSONRPCModule) RegisterConnectionManager(connectionManager jsonrpcfx.ConnectionManager) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RegisterConnectionManager", connectionManager)
	ret0, _ := ret[0].(error)
	return ret0
}

// RegisterConnectionManager indicates an expected call of RegisterConnectionManager.
func (mr *MockJSONRPCModuleMockRecorder) RegisterConnectionManager(connectionManager any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RegisterConnectionManager", reflect.TypeOf((*MockJSONRPCModule)(nil).RegisterConnectionManager), connectionManager)
}

// ServeStream mocks base method.
func (m *MockJSONRPCModule) ServeStream(ctx context.Context, conn jsonrpc2.Conn) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ServeStream", ctx, conn)
	ret0, _ := ret[0].(error)
	return ret0
}

// ServeStream indicates an expected call of ServeStream.
func (mr *MockJSONRPCModuleMockRecorder) ServeStream(ctx, conn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ServeStream", reflect.TypeOf((*MockJSONRPCModule)(nil).ServeStream), ctx, conn)
}
