// Package diagnosticsmock holds gomock mocks of the interfaces in diagnostics.go.
package diagnosticsmock

import (
	context "context"
	reflect "reflect"

	uuid "github.com/gofrs/uuid"
	diagnostics "github.com/uber/embedded-lsp/src/elsp/controller/diagnostics"
	uri "go.lsp.dev/uri"
	gomock "go.uber.org/mock/gomock"
)

// MockController is a mock of Controller interface.
type MockController struct {
	ctrl     *gomock.Controller
	recorder *MockControllerMockRecorder
	isgomock struct{}
}

// MockControllerMockRecorder is the mock recorder for MockController.
type MockControllerMockRecorder struct {
	mock *MockController
}

// NewMockController creates a new mock instance.
func NewMockController(ctrl *gomock.Controller) *MockController {
	mock := &MockController{ctrl: ctrl}
	mock.recorder = &MockControllerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockController) EXPECT() *MockControllerMockRecorder {
	return m.recorder
}

// EndSession mocks base method.
func (m *MockController) EndSession(ctx context.Context, id uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EndSession", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// EndSession indicates an expected call of EndSession.
func (mr *MockControllerMockRecorder) EndSession(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EndSession", reflect.TypeOf((*MockController)(nil).EndSession), ctx, id)
}

// Forget mocks base method.
func (m *MockController) Forget(ctx context.Context, u uri.URI) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Forget", ctx, u)
	ret0, _ := ret[0].(error)
	return ret0
}

// Forget indicates an expected call of Forget.
func (mr *MockControllerMockRecorder) Forget(ctx, u any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Forget", reflect.TypeOf((*MockController)(nil).Forget), ctx, u)
}

// Invalidate mocks base method.
func (m *MockController) Invalidate(ctx context.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Invalidate", ctx)
}

// Invalidate indicates an expected call of Invalidate.
func (mr *MockControllerMockRecorder) Invalidate(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Invalidate", reflect.TypeOf((*MockController)(nil).Invalidate), ctx)
}

// Validate mocks base method.
func (m *MockController) Validate(ctx context.Context, u uri.URI, plugins diagnostics.Plugins) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Validate", ctx, u, plugins)
	ret0, _ := ret[0].(error)
	return ret0
}

// Validate indicates an expected call of Validate.
func (mr *MockControllerMockRecorder) Validate(ctx, u, plugins any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Validate", reflect.TypeOf((*MockController)(nil).Validate), ctx, u, plugins)
}

// ValidateWorkspace mocks base method.
func (m *MockController) ValidateWorkspace(ctx context.Context, plugins diagnostics.Plugins) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateWorkspace", ctx, plugins)
	ret0, _ := ret[0].(error)
	return ret0
}

// ValidateWorkspace indicates an expected call of ValidateWorkspace.
func (mr *MockControllerMockRecorder) ValidateWorkspace(ctx, plugins any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateWorkspace", reflect.TypeOf((*MockController)(nil).ValidateWorkspace), ctx, plugins)
}
