package entity

import (
	"encoding/json"
	"fmt"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Resource operation kinds as sent on the wire.
const (
	ResourceOperationCreate = "create"
	ResourceOperationRename = "rename"
	ResourceOperationDelete = "delete"
)

// WorkspaceEdit is a multi-document edit including file operations and change annotations.
type WorkspaceEdit struct {
	Changes           map[uri.URI][]protocol.TextEdit `json:"changes,omitempty"`
	DocumentChanges   []DocumentChange                `json:"documentChanges,omitempty"`
	ChangeAnnotations map[string]ChangeAnnotation     `json:"changeAnnotations,omitempty"`
}

// IsEmpty reports whether the edit carries nothing to apply.
func (e *WorkspaceEdit) IsEmpty() bool {
	return e == nil || (len(e.Changes) == 0 && len(e.DocumentChanges) == 0 && len(e.ChangeAnnotations) == 0)
}

// ChangeAnnotation describes a group of changes for confirmation in the editor.
type ChangeAnnotation struct {
	Label             string `json:"label"`
	NeedsConfirmation bool   `json:"needsConfirmation,omitempty"`
	Description       string `json:"description,omitempty"`
}

// FileOptions are the options shared by create, rename and delete operations.
type FileOptions struct {
	Overwrite         bool `json:"overwrite,omitempty"`
	IgnoreIfExists    bool `json:"ignoreIfExists,omitempty"`
	Recursive         bool `json:"recursive,omitempty"`
	IgnoreIfNotExists bool `json:"ignoreIfNotExists,omitempty"`
}

// CreateFile creates a new file.
type CreateFile struct {
	Kind         string       `json:"kind"`
	URI          uri.URI      `json:"uri"`
	Options      *FileOptions `json:"options,omitempty"`
	AnnotationID string       `json:"annotationId,omitempty"`
}

// RenameFile renames an existing file.
type RenameFile struct {
	Kind         string       `json:"kind"`
	OldURI       uri.URI      `json:"oldUri"`
	NewURI       uri.URI      `json:"newUri"`
	Options      *FileOptions `json:"options,omitempty"`
	AnnotationID string       `json:"annotationId,omitempty"`
}

// DeleteFile deletes a file.
type DeleteFile struct {
	Kind         string       `json:"kind"`
	URI          uri.URI      `json:"uri"`
	Options      *FileOptions `json:"options,omitempty"`
	AnnotationID string       `json:"annotationId,omitempty"`
}

// DocumentChange is exactly one of a text document edit or a file operation.
type DocumentChange struct {
	TextDocumentEdit *protocol.TextDocumentEdit
	CreateFile       *CreateFile
	RenameFile       *RenameFile
	DeleteFile       *DeleteFile
}

// MarshalJSON implements json.Marshaler.
func (c DocumentChange) MarshalJSON() ([]byte, error) {
	switch {
	case c.TextDocumentEdit != nil:
		return json.Marshal(c.TextDocumentEdit)
	case c.CreateFile != nil:
		op := *c.CreateFile
		op.Kind = ResourceOperationCreate
		return json.Marshal(op)
	case c.RenameFile != nil:
		op := *c.RenameFile
		op.Kind = ResourceOperationRename
		return json.Marshal(op)
	case c.DeleteFile != nil:
		op := *c.DeleteFile
		op.Kind = ResourceOperationDelete
		return json.Marshal(op)
	}
	return nil, fmt.Errorf("empty document change")
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *DocumentChange) UnmarshalJSON(data []byte) error {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	*c = DocumentChange{}
	switch head.Kind {
	case "":
		c.TextDocumentEdit = &protocol.TextDocumentEdit{}
		return json.Unmarshal(data, c.TextDocumentEdit)
	case ResourceOperationCreate:
		c.CreateFile = &CreateFile{}
		return json.Unmarshal(data, c.CreateFile)
	case ResourceOperationRename:
		c.RenameFile = &RenameFile{}
		return json.Unmarshal(data, c.RenameFile)
	case ResourceOperationDelete:
		c.DeleteFile = &DeleteFile{}
		return json.Unmarshal(data, c.DeleteFile)
	}
	return fmt.Errorf("unknown resource operation kind %q", head.Kind)
}

// CodeAction is a code action whose edit may include file operations.
type CodeAction struct {
	Title       string                  `json:"title"`
	Kind        protocol.CodeActionKind `json:"kind,omitempty"`
	Diagnostics []protocol.Diagnostic   `json:"diagnostics,omitempty"`
	IsPreferred bool                    `json:"isPreferred,omitempty"`
	Disabled    *CodeActionDisabled     `json:"disabled,omitempty"`
	Edit        *WorkspaceEdit          `json:"edit,omitempty"`
	Command     *protocol.Command       `json:"command,omitempty"`
	Data        any                     `json:"data,omitempty"`
}

// CodeActionDisabled explains why a code action cannot be applied.
type CodeActionDisabled struct {
	Reason string `json:"reason"`
}

// InlayHintKind is the kind of an inlay hint.
type InlayHintKind int

// Inlay hint kinds.
const (
	InlayHintKindType      InlayHintKind = 1
	InlayHintKindParameter InlayHintKind = 2
)

// InlayHint is an inline annotation rendered by the editor.
type InlayHint struct {
	Position     protocol.Position   `json:"position"`
	Label        string              `json:"label"`
	Kind         InlayHintKind       `json:"kind,omitempty"`
	TextEdits    []protocol.TextEdit `json:"textEdits,omitempty"`
	Tooltip      string              `json:"tooltip,omitempty"`
	PaddingLeft  bool                `json:"paddingLeft,omitempty"`
	PaddingRight bool                `json:"paddingRight,omitempty"`
	Data         any                 `json:"data,omitempty"`
}

// InlayHintParams are the parameters of an inlay hint request.
type InlayHintParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
	Range        protocol.Range                  `json:"range"`
}
