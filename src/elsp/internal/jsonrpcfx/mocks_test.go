// gomock mocks of the Router and ConnectionManager interfaces in json_rpc.go.

package jsonrpcfx

import (
	context "context"
	reflect "reflect"

	uuid "github.com/gofrs/uuid"
	jsonrpc2 "go.lsp.dev/jsonrpc2"
	gomock "go.uber.org/mock/gomock"
)

// MockRouter is a mock of Router interface.
type MockRouter struct {
	ctrl     *gomock.Controller
	recorder *MockRouterMockRecorder
	isgomock struct{}
}

// MockRouterMockRecorder is the mock recorder for MockRouter.
type MockRouterMockRecorder struct {
	mock *MockRouter
}

// NewMockRouter creates a new mock instance.
func NewMockRouter(ctrl *gomock.Controller) *MockRouter {
	mock := &MockRouter{ctrl: ctrl}
	mock.recorder = &MockRouterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRouter) EXPECT() *MockRouterMockRecorder {
	return m.recorder
}

// HandleReq mocks base method.
func (m *MockRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HandleReq", ctx, reply, req)
	ret0, _ := ret[0].(error)
	return ret0
}

// HandleReq indicates an expected call of HandleReq.
func (mr *MockRouterMockRecorder) HandleReq(ctx, reply, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HandleReq", reflect.TypeOf((*MockRouter)(nil).HandleReq), ctx, reply, req)
}

// UUID mocks base method.
func (m *MockRouter) UUID() uuid.UUID {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UUID")
	ret0, _ := ret[0].(uuid.UUID)
	return ret0
}

// UUID indicates an expected call of UUID.
func (mr *MockRouterMockRecorder) UUID() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UUID", reflect.TypeOf((*MockRouter)(nil).UUID))
}

// MockConnectionManager is a mock of ConnectionManager interface.
type MockConnectionManager struct {
	ctrl     *gomock.Controller
	recorder *MockConnectionManagerMockRecorder
	isgomock struct{}
}

// MockConnectionManagerMockRecorder is the mock recorder for MockConnectionManager.
type MockConnectionManagerMockRecorder struct {
	mock *MockConnectionManager
}

// NewMockConnectionManager creates a new mock instance.
func NewMockConnectionManager(ctrl *gomock.Controller) *MockConnectionManager {
	mock := &MockConnectionManager{ctrl: ctrl}
	mock.recorder = &MockConnectionManagerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConnectionManager) EXPECT() *MockConnectionManagerMockRecorder {
	return m.recorder
}

// NewConnection mocks base method.
func (m *MockConnectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (Router, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "NewConnection", ctx, conn)
	ret0, _ := ret[0].(Router)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// NewConnection indicates an expected call of NewConnection.
func (mr *MockConnectionManagerMockRecorder) NewConnection(ctx, conn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "NewConnection", reflect.TypeOf((*MockConnectionManager)(nil).NewConnection), ctx, conn)
}

// RemoveConnection mocks base method.
func (m *MockConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RemoveConnection", ctx, id)
}

// RemoveConnection indicates an expected call of RemoveConnection.
func (mr *MockConnectionManagerMockRecorder) RemoveConnection(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveConnection", reflect.TypeOf((*MockConnectionManager)(nil).RemoveConnection), ctx, id)
}
