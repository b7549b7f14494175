// Package settingsmock holds gomock mocks of the interfaces in settings.go.
package settingsmock

import (
	context "context"
	reflect "reflect"

	uuid "github.com/gofrs/uuid"
	settings "github.com/uber/embedded-lsp/src/elsp/controller/settings"
	entity "github.com/uber/embedded-lsp/src/elsp/entity"
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

// Get mocks base method.
func (m *MockController) Get(ctx context.Context) entity.Settings {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx)
	ret0, _ := ret[0].(entity.Settings)
	return ret0
}

// Get indicates an expected call of Get.
func (mr *MockControllerMockRecorder) Get(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockController)(nil).Get), ctx)
}

// Load mocks base method.
func (m *MockController) Load(ctx context.Context, workspaceRoot string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx, workspaceRoot)
	ret0, _ := ret[0].(error)
	return ret0
}

// Load indicates an expected call of Load.
func (mr *MockControllerMockRecorder) Load(ctx, workspaceRoot any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockController)(nil).Load), ctx, workspaceRoot)
}

// Subscribe mocks base method.
func (m *MockController) Subscribe(l settings.Listener) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Subscribe", l)
}

// Subscribe indicates an expected call of Subscribe.
func (mr *MockControllerMockRecorder) Subscribe(l any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Subscribe", reflect.TypeOf((*MockController)(nil).Subscribe), l)
}
