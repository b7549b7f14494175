// Package fsmock holds gomock mocks of the interfaces in fs.go.
package fsmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockElspFS is a mock of ElspFS interface.
type MockElspFS struct {
	ctrl     *gomock.Controller
	recorder *MockElspFSMockRecorder
	isgomock struct{}
}

// MockElspFSMockRecorder is the mock recorder for MockElspFS.
type MockElspFSMockRecorder struct {
	mock *MockElspFS
}

// NewMockElspFS creates a new mock instance.
func NewMockElspFS(ctrl *gomock.Controller) *MockElspFS {
	mock := &MockElspFS{ctrl: ctrl}
	mock.recorder = &MockElspFSMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockElspFS) EXPECT() *MockElspFSMockRecorder {
	return m.recorder
}

// DirExists mocks base method.
func (m *MockElspFS) DirExists(path string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DirExists", path)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DirExists indicates an expected call of DirExists.
func (mr *MockElspFSMockRecorder) DirExists(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DirExists", reflect.TypeOf((*MockElspFS)(nil).DirExists), path)
}

// FileExists mocks base method.
func (m *MockElspFS) FileExists(path string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FileExists", path)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FileExists indicates an expected call of FileExists.
func (mr *MockElspFSMockRecorder) FileExists(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FileExists", reflect.TypeOf((*MockElspFS)(nil).FileExists), path)
}

// ReadFile mocks base method.
func (m *MockElspFS) ReadFile(name string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadFile", name)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReadFile indicates an expected call of ReadFile.
func (mr *MockElspFSMockRecorder) ReadFile(name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadFile", reflect.TypeOf((*MockElspFS)(nil).ReadFile), name)
}

// MkdirAll mocks base method.
func (m *MockElspFS) MkdirAll(path string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MkdirAll", path)
	ret0, _ := ret[0].(error)
	return ret0
}

// MkdirAll indicates an expected call of MkdirAll.
func (mr *MockElspFSMockRecorder) MkdirAll(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MkdirAll", reflect.TypeOf((*MockElspFS)(nil).MkdirAll), path)
}
