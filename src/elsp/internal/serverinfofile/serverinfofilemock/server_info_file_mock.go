// Package serverinfofilemock holds gomock mocks of the interfaces in server_info_file.go.
package serverinfofilemock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockServerInfoFile is a mock of ServerInfoFile interface.
type MockServerInfoFile struct {
	ctrl     *gomock.Controller
	recorder *MockServerInfoFileMockRecorder
	isgomock struct{}
}

// MockServerInfoFileMockRecorder is the mock recorder for MockServerInfoFile.
type MockServerInfoFileMockRecorder struct {
	mock *MockServerInfoFile
}

// NewMockServerInfoFile creates a new mock instance.
func NewMockServerInfoFile(ctrl *gomock.Controller) *MockServerInfoFile {
	mock := &MockServerInfoFile{ctrl: ctrl}
	mock.recorder = &MockServerInfoFileMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockServerInfoFile) EXPECT() *MockServerInfoFileMockRecorder {
	return m.recorder
}

// UpdateField mocks base method.
func (m *MockServerInfoFile) UpdateField(key, value string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateField", key, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateField indicates an expected call of UpdateField.
func (mr *MockServerInfoFileMockRecorder) UpdateField(key, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateField", reflect.TypeOf((*MockServerInfoFile)(nil).UpdateField), key, value)
}
