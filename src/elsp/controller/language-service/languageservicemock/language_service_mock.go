// Package languageservicemock holds gomock mocks of the interfaces in language_service.go.
package languageservicemock

import (
	context "context"
	reflect "reflect"

	uuid "github.com/gofrs/uuid"
	entity "github.com/uber/embedded-lsp/src/elsp/entity"
	jsonrpc2 "go.lsp.dev/jsonrpc2"
	protocol "go.lsp.dev/protocol"
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

// CodeAction mocks base method.
func (m *MockController) CodeAction(ctx context.Context, params *protocol.CodeActionParams) ([]entity.CodeAction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CodeAction", ctx, params)
	ret0, _ := ret[0].([]entity.CodeAction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CodeAction indicates an expected call of CodeAction.
func (mr *MockControllerMockRecorder) CodeAction(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CodeAction", reflect.TypeOf((*MockController)(nil).CodeAction), ctx, params)
}

// CodeActionResolve mocks base method.
func (m *MockController) CodeActionResolve(ctx context.Context, action *entity.CodeAction) (*entity.CodeAction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CodeActionResolve", ctx, action)
	ret0, _ := ret[0].(*entity.CodeAction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CodeActionResolve indicates an expected call of CodeActionResolve.
func (mr *MockControllerMockRecorder) CodeActionResolve(ctx, action any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CodeActionResolve", reflect.TypeOf((*MockController)(nil).CodeActionResolve), ctx, action)
}

// Completion mocks base method.
func (m *MockController) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Completion", ctx, params)
	ret0, _ := ret[0].(*protocol.CompletionList)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Completion indicates an expected call of Completion.
func (mr *MockControllerMockRecorder) Completion(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Completion", reflect.TypeOf((*MockController)(nil).Completion), ctx, params)
}

// CompletionResolve mocks base method.
func (m *MockController) CompletionResolve(ctx context.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompletionResolve", ctx, item)
	ret0, _ := ret[0].(*protocol.CompletionItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CompletionResolve indicates an expected call of CompletionResolve.
func (mr *MockControllerMockRecorder) CompletionResolve(ctx, item any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompletionResolve", reflect.TypeOf((*MockController)(nil).CompletionResolve), ctx, item)
}

// Definition mocks base method.
func (m *MockController) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.LocationLink, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Definition", ctx, params)
	ret0, _ := ret[0].([]protocol.LocationLink)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Definition indicates an expected call of Definition.
func (mr *MockControllerMockRecorder) Definition(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Definition", reflect.TypeOf((*MockController)(nil).Definition), ctx, params)
}

// DidChange mocks base method.
func (m *MockController) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DidChange", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// DidChange indicates an expected call of DidChange.
func (mr *MockControllerMockRecorder) DidChange(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DidChange", reflect.TypeOf((*MockController)(nil).DidChange), ctx, params)
}

// DidClose mocks base method.
func (m *MockController) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DidClose", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// DidClose indicates an expected call of DidClose.
func (mr *MockControllerMockRecorder) DidClose(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DidClose", reflect.TypeOf((*MockController)(nil).DidClose), ctx, params)
}

// DidOpen mocks base method.
func (m *MockController) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DidOpen", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// DidOpen indicates an expected call of DidOpen.
func (mr *MockControllerMockRecorder) DidOpen(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DidOpen", reflect.TypeOf((*MockController)(nil).DidOpen), ctx, params)
}

// DidSave mocks base method.
func (m *MockController) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DidSave", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// DidSave indicates an expected call of DidSave.
func (mr *MockControllerMockRecorder) DidSave(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DidSave", reflect.TypeOf((*MockController)(nil).DidSave), ctx, params)
}

// DocumentColor mocks base method.
func (m *MockController) DocumentColor(ctx context.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DocumentColor", ctx, params)
	ret0, _ := ret[0].([]protocol.ColorInformation)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DocumentColor indicates an expected call of DocumentColor.
func (mr *MockControllerMockRecorder) DocumentColor(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DocumentColor", reflect.TypeOf((*MockController)(nil).DocumentColor), ctx, params)
}

// DocumentHighlight mocks base method.
func (m *MockController) DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DocumentHighlight", ctx, params)
	ret0, _ := ret[0].([]protocol.DocumentHighlight)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DocumentHighlight indicates an expected call of DocumentHighlight.
func (mr *MockControllerMockRecorder) DocumentHighlight(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DocumentHighlight", reflect.TypeOf((*MockController)(nil).DocumentHighlight), ctx, params)
}

// DocumentLink mocks base method.
func (m *MockController) DocumentLink(ctx context.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DocumentLink", ctx, params)
	ret0, _ := ret[0].([]protocol.DocumentLink)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DocumentLink indicates an expected call of DocumentLink.
func (mr *MockControllerMockRecorder) DocumentLink(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DocumentLink", reflect.TypeOf((*MockController)(nil).DocumentLink), ctx, params)
}

// DocumentSymbol mocks base method.
func (m *MockController) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]protocol.DocumentSymbol, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DocumentSymbol", ctx, params)
	ret0, _ := ret[0].([]protocol.DocumentSymbol)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DocumentSymbol indicates an expected call of DocumentSymbol.
func (mr *MockControllerMockRecorder) DocumentSymbol(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DocumentSymbol", reflect.TypeOf((*MockController)(nil).DocumentSymbol), ctx, params)
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

// Exit mocks base method.
func (m *MockController) Exit(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exit", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Exit indicates an expected call of Exit.
func (mr *MockControllerMockRecorder) Exit(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exit", reflect.TypeOf((*MockController)(nil).Exit), ctx)
}

// FoldingRange mocks base method.
func (m *MockController) FoldingRange(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FoldingRange", ctx, params)
	ret0, _ := ret[0].([]protocol.FoldingRange)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FoldingRange indicates an expected call of FoldingRange.
func (mr *MockControllerMockRecorder) FoldingRange(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FoldingRange", reflect.TypeOf((*MockController)(nil).FoldingRange), ctx, params)
}

// Formatting mocks base method.
func (m *MockController) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Formatting", ctx, params)
	ret0, _ := ret[0].([]protocol.TextEdit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Formatting indicates an expected call of Formatting.
func (mr *MockControllerMockRecorder) Formatting(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Formatting", reflect.TypeOf((*MockController)(nil).Formatting), ctx, params)
}

// Hover mocks base method.
func (m *MockController) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Hover", ctx, params)
	ret0, _ := ret[0].(*protocol.Hover)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Hover indicates an expected call of Hover.
func (mr *MockControllerMockRecorder) Hover(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Hover", reflect.TypeOf((*MockController)(nil).Hover), ctx, params)
}

// Implementation mocks base method.
func (m *MockController) Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.LocationLink, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Implementation", ctx, params)
	ret0, _ := ret[0].([]protocol.LocationLink)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Implementation indicates an expected call of Implementation.
func (mr *MockControllerMockRecorder) Implementation(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Implementation", reflect.TypeOf((*MockController)(nil).Implementation), ctx, params)
}

// InitSession mocks base method.
func (m *MockController) InitSession(ctx context.Context, conn *jsonrpc2.Conn) (uuid.UUID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InitSession", ctx, conn)
	ret0, _ := ret[0].(uuid.UUID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InitSession indicates an expected call of InitSession.
func (mr *MockControllerMockRecorder) InitSession(ctx, conn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InitSession", reflect.TypeOf((*MockController)(nil).InitSession), ctx, conn)
}

// Initialize mocks base method.
func (m *MockController) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Initialize", ctx, params)
	ret0, _ := ret[0].(*protocol.InitializeResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Initialize indicates an expected call of Initialize.
func (mr *MockControllerMockRecorder) Initialize(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Initialize", reflect.TypeOf((*MockController)(nil).Initialize), ctx, params)
}

// Initialized mocks base method.
func (m *MockController) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Initialized", ctx, params)
	ret0, _ := ret[0].(error)
	return ret0
}

// Initialized indicates an expected call of Initialized.
func (mr *MockControllerMockRecorder) Initialized(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Initialized", reflect.TypeOf((*MockController)(nil).Initialized), ctx, params)
}

// InlayHint mocks base method.
func (m *MockController) InlayHint(ctx context.Context, params *entity.InlayHintParams) ([]entity.InlayHint, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InlayHint", ctx, params)
	ret0, _ := ret[0].([]entity.InlayHint)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// InlayHint indicates an expected call of InlayHint.
func (mr *MockControllerMockRecorder) InlayHint(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InlayHint", reflect.TypeOf((*MockController)(nil).InlayHint), ctx, params)
}

// LinkedEditingRange mocks base method.
func (m *MockController) LinkedEditingRange(ctx context.Context, params *protocol.LinkedEditingRangeParams) (*protocol.LinkedEditingRanges, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LinkedEditingRange", ctx, params)
	ret0, _ := ret[0].(*protocol.LinkedEditingRanges)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LinkedEditingRange indicates an expected call of LinkedEditingRange.
func (mr *MockControllerMockRecorder) LinkedEditingRange(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LinkedEditingRange", reflect.TypeOf((*MockController)(nil).LinkedEditingRange), ctx, params)
}

// Moniker mocks base method.
func (m *MockController) Moniker(ctx context.Context, params *protocol.MonikerParams) ([]protocol.Moniker, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Moniker", ctx, params)
	ret0, _ := ret[0].([]protocol.Moniker)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Moniker indicates an expected call of Moniker.
func (mr *MockControllerMockRecorder) Moniker(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Moniker", reflect.TypeOf((*MockController)(nil).Moniker), ctx, params)
}

// PrepareCallHierarchy mocks base method.
func (m *MockController) PrepareCallHierarchy(ctx context.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PrepareCallHierarchy", ctx, params)
	ret0, _ := ret[0].([]protocol.CallHierarchyItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PrepareCallHierarchy indicates an expected call of PrepareCallHierarchy.
func (mr *MockControllerMockRecorder) PrepareCallHierarchy(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PrepareCallHierarchy", reflect.TypeOf((*MockController)(nil).PrepareCallHierarchy), ctx, params)
}

// PrepareRename mocks base method.
func (m *MockController) PrepareRename(ctx context.Context, params *protocol.PrepareRenameParams) (*protocol.Range, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PrepareRename", ctx, params)
	ret0, _ := ret[0].(*protocol.Range)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PrepareRename indicates an expected call of PrepareRename.
func (mr *MockControllerMockRecorder) PrepareRename(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PrepareRename", reflect.TypeOf((*MockController)(nil).PrepareRename), ctx, params)
}

// RangeFormatting mocks base method.
func (m *MockController) RangeFormatting(ctx context.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RangeFormatting", ctx, params)
	ret0, _ := ret[0].([]protocol.TextEdit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RangeFormatting indicates an expected call of RangeFormatting.
func (mr *MockControllerMockRecorder) RangeFormatting(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RangeFormatting", reflect.TypeOf((*MockController)(nil).RangeFormatting), ctx, params)
}

// References mocks base method.
func (m *MockController) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "References", ctx, params)
	ret0, _ := ret[0].([]protocol.Location)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// References indicates an expected call of References.
func (mr *MockControllerMockRecorder) References(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "References", reflect.TypeOf((*MockController)(nil).References), ctx, params)
}

// Rename mocks base method.
func (m *MockController) Rename(ctx context.Context, params *protocol.RenameParams) (*entity.WorkspaceEdit, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rename", ctx, params)
	ret0, _ := ret[0].(*entity.WorkspaceEdit)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Rename indicates an expected call of Rename.
func (mr *MockControllerMockRecorder) Rename(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rename", reflect.TypeOf((*MockController)(nil).Rename), ctx, params)
}

// RequestFullShutdown mocks base method.
func (m *MockController) RequestFullShutdown(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RequestFullShutdown", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// RequestFullShutdown indicates an expected call of RequestFullShutdown.
func (mr *MockControllerMockRecorder) RequestFullShutdown(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RequestFullShutdown", reflect.TypeOf((*MockController)(nil).RequestFullShutdown), ctx)
}

// SelectionRange mocks base method.
func (m *MockController) SelectionRange(ctx context.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SelectionRange", ctx, params)
	ret0, _ := ret[0].([]protocol.SelectionRange)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SelectionRange indicates an expected call of SelectionRange.
func (mr *MockControllerMockRecorder) SelectionRange(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SelectionRange", reflect.TypeOf((*MockController)(nil).SelectionRange), ctx, params)
}

// Shutdown mocks base method.
func (m *MockController) Shutdown(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Shutdown", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Shutdown indicates an expected call of Shutdown.
func (mr *MockControllerMockRecorder) Shutdown(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Shutdown", reflect.TypeOf((*MockController)(nil).Shutdown), ctx)
}

// SignatureHelp mocks base method.
func (m *MockController) SignatureHelp(ctx context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SignatureHelp", ctx, params)
	ret0, _ := ret[0].(*protocol.SignatureHelp)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SignatureHelp indicates an expected call of SignatureHelp.
func (mr *MockControllerMockRecorder) SignatureHelp(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SignatureHelp", reflect.TypeOf((*MockController)(nil).SignatureHelp), ctx, params)
}

// TypeDefinition mocks base method.
func (m *MockController) TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.LocationLink, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TypeDefinition", ctx, params)
	ret0, _ := ret[0].([]protocol.LocationLink)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TypeDefinition indicates an expected call of TypeDefinition.
func (mr *MockControllerMockRecorder) TypeDefinition(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TypeDefinition", reflect.TypeOf((*MockController)(nil).TypeDefinition), ctx, params)
}
