package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func TestDocumentChangeJSON(t *testing.T) {
	tests := []struct {
		name     string
		change   DocumentChange
		wantKind string
	}{
		{
			name: "text document edit",
			change: DocumentChange{TextDocumentEdit: &protocol.TextDocumentEdit{
				TextDocument: protocol.OptionalVersionedTextDocumentIdentifier{
					TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///a.vue"},
				},
				Edits: []protocol.TextEdit{{NewText: "x"}},
			}},
		},
		{
			name:     "create file",
			change:   DocumentChange{CreateFile: &CreateFile{URI: "file:///new.ts"}},
			wantKind: ResourceOperationCreate,
		},
		{
			name:     "rename file",
			change:   DocumentChange{RenameFile: &RenameFile{OldURI: "file:///a.ts", NewURI: "file:///b.ts"}},
			wantKind: ResourceOperationRename,
		},
		{
			name:     "delete file",
			change:   DocumentChange{DeleteFile: &DeleteFile{URI: "file:///a.ts", Options: &FileOptions{Recursive: true}}},
			wantKind: ResourceOperationDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.change)
			require.NoError(t, err)

			var fields map[string]any
			require.NoError(t, json.Unmarshal(data, &fields))
			if tt.wantKind == "" {
				assert.NotContains(t, fields, "kind")
			} else {
				assert.Equal(t, tt.wantKind, fields["kind"])
			}

			var decoded DocumentChange
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.change.TextDocumentEdit != nil, decoded.TextDocumentEdit != nil)
			assert.Equal(t, tt.change.CreateFile != nil, decoded.CreateFile != nil)
			assert.Equal(t, tt.change.RenameFile != nil, decoded.RenameFile != nil)
			assert.Equal(t, tt.change.DeleteFile != nil, decoded.DeleteFile != nil)
		})
	}
}

func TestDocumentChangeJSONErrors(t *testing.T) {
	_, err := json.Marshal(DocumentChange{})
	assert.Error(t, err)

	var c DocumentChange
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"move"}`), &c))
}

func TestWorkspaceEditIsEmpty(t *testing.T) {
	var nilEdit *WorkspaceEdit
	assert.True(t, nilEdit.IsEmpty())
	assert.True(t, (&WorkspaceEdit{}).IsEmpty())
	assert.False(t, (&WorkspaceEdit{DocumentChanges: []DocumentChange{{DeleteFile: &DeleteFile{URI: "file:///a"}}}}).IsEmpty())
}
