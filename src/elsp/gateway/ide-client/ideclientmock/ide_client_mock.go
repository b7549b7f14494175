// Package ideclientmock holds gomock mocks of the interfaces in ide_client.go.
package ideclientmock

import (
	context "context"
	reflect "reflect"

	uuid "github.com/gofrs/uuid"
	jsonrpc2 "go.lsp.dev/jsonrpc2"
	protocol "go.lsp.dev/protocol"
	gomock "go.uber.org/mock/gomock"
)

// MockGateway is a mock of Gateway interface.
type MockGateway struct {
	ctrl     *gomock.Controller
	recorder *MockGatewayMockRecorder
	isgomock struct{}
}

// MockGatewayMockRecorder is the mock recorder for MockGateway.
type MockGatewayMockRecorder struct {
	mock *MockGateway
}

// NewMockGateway creates a new mock instance.
func NewMockGateway(ctrl *gomock.Controller) *MockGateway {
	mock := &MockGateway{ctrl: ctrl}
	mock.recorder = &MockGatewayMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGateway) EXPECT() *MockGatewayMockRecorder {
	return m.recorder
}

// ApplyEdit mocks base method.
func (m *MockGateway) ApplyEdit(ctx context.Context, params *protocol.ApplyWorkspaceEditParams) (*protocol.ApplyWorkspaceEditResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyEdit", ctx, params)
	ret0, _ := ret[0].(*protocol.ApplyWorkspaceEditResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ApplyEdit indicates an expected call of ApplyEdit.
func (mr *MockGatewayMockRecorder) ApplyEdit(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyEdit", reflect.TypeOf((*MockGateway)(nil).ApplyEdit), ctx, params)
}

// DeregisterClient mocks base method.
func (m *MockGateway) DeregisterClient(ctx context.Context, id uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeregisterClient", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeregisterClient indicates an expected call of DeregisterClient.
func (mr *MockGatewayMockRecorder) DeregisterClient(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeregisterClient", reflect.TypeOf((*MockGateway)(nil).DeregisterClient), ctx, id)
}

// LogMessage mocks base method.
func (m *MockGateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LogMessage", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// LogMessage indicates an expected call of LogMessage.
func (mr *MockGatewayMockRecorder) LogMessage(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LogMessage", reflect.TypeOf((*MockGateway)(nil).LogMessage), ctx, params)
}

// Progress mocks base method.
func (m *MockGateway) Progress(ctx context.Context, params *protocol.ProgressParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Progress", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// Progress indicates an expected call of Progress.
func (mr *MockGatewayMockRecorder) Progress(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Progress", reflect.TypeOf((*MockGateway)(nil).Progress), ctx, params)
}

// PublishDiagnostics mocks base method.
func (m *MockGateway) PublishDiagnostics(ctx context.Context, params *protocol.PublishDiagnosticsParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PublishDiagnostics", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// PublishDiagnostics indicates an expected call of PublishDiagnostics.
func (mr *MockGatewayMockRecorder) PublishDiagnostics(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PublishDiagnostics", reflect.TypeOf((*MockGateway)(nil).PublishDiagnostics), ctx, params)
}

// RegisterClient mocks base method.
func (m *MockGateway) RegisterClient(ctx context.Context, id uuid.UUID, conn *jsonrpc2.Conn) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RegisterClient", ctx, id, conn)
	ret0, _ := ret[0].(error)
	return ret0
}

// RegisterClient indicates an expected call of RegisterClient.
func (mr *MockGatewayMockRecorder) RegisterClient(ctx, id, conn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RegisterClient", reflect.TypeOf((*MockGateway)(nil).RegisterClient), ctx, id, conn)
}

// ShowMessage mocks base method.
func (m *MockGateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ShowMessage", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// ShowMessage indicates an expected call of ShowMessage.
func (mr *MockGatewayMockRecorder) ShowMessage(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ShowMessage", reflect.TypeOf((*MockGateway)(nil).ShowMessage), ctx, params)
}

// WorkDoneProgressCreate mocks base method.
func (m *MockGateway) WorkDoneProgressCreate(ctx context.Context, params *protocol.WorkDoneProgressCreateParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WorkDoneProgressCreate", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// WorkDoneProgressCreate indicates an expected call of WorkDoneProgressCreate.
func (mr *MockGatewayMockRecorder) WorkDoneProgressCreate(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WorkDoneProgressCreate", reflect.TypeOf((*MockGateway)(nil).WorkDoneProgressCreate), ctx, params)
}
