package entity

import (
	"context"
	"iter"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// CodeMapping correlates a byte range of a source document with a byte range of a generated document.
// The two lengths may differ when the generated text expands or contracts the source.
type CodeMapping struct {
	SourceOffset    int
	SourceLength    int
	GeneratedOffset int
	GeneratedLength int
	Data            CodeInformation
}

// SourceEnd returns the exclusive end of the source range.
func (m CodeMapping) SourceEnd() int {
	return m.SourceOffset + m.SourceLength
}

// GeneratedEnd returns the exclusive end of the generated range.
func (m CodeMapping) GeneratedEnd() int {
	return m.GeneratedOffset + m.GeneratedLength
}

// VirtualCode is one node of the generated document tree derived from a source script.
type VirtualCode struct {
	// ID is unique among the nodes of one tree.
	ID         string
	LanguageID protocol.LanguageIdentifier
	Snapshot   Snapshot
	// Mappings relate this node to the source script that owns the tree.
	Mappings []CodeMapping
	// AssociatedMappings relate this node to other source scripts.
	AssociatedMappings map[uri.URI][]CodeMapping
	// LinkedCodeMappings pair offsets within this node that mirror each other.
	LinkedCodeMappings []CodeMapping
	EmbeddedCodes      []*VirtualCode
}

// All yields the node and every embedded node, depth first in declaration order.
func (c *VirtualCode) All() iter.Seq[*VirtualCode] {
	return func(yield func(*VirtualCode) bool) {
		if c == nil {
			return
		}
		stack := []*VirtualCode{c}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(node) {
				return
			}
			for i := len(node.EmbeddedCodes) - 1; i >= 0; i-- {
				stack = append(stack, node.EmbeddedCodes[i])
			}
		}
	}
}

// Find returns the node with the given ID.
func (c *VirtualCode) Find(id string) (*VirtualCode, bool) {
	for node := range c.All() {
		if node.ID == id {
			return node, true
		}
	}
	return nil, false
}

// SourceScript is the top-level handle for one authored document.
type SourceScript struct {
	URI        uri.URI
	LanguageID protocol.LanguageIdentifier
	Snapshot   Snapshot
	// Version is the editor version of the document, zero for documents not opened by the editor.
	Version int32
	// Generation increases every time Snapshot is replaced.
	Generation uint64
	// Root is nil when no language plugin generated code for the script.
	Root *VirtualCode
	// LanguagePlugin is the name of the language plugin that produced Root.
	LanguagePlugin string
}

// LanguagePlugin produces the generated code tree for source scripts it recognizes.
type LanguagePlugin interface {
	// Name identifies the plugin in logs.
	Name() string
	// GetLanguageID returns the language of a document this plugin handles, false if it does not handle it.
	GetLanguageID(uri uri.URI) (protocol.LanguageIdentifier, bool)
	// CreateVirtualCode builds the tree for a new snapshot. A nil result means the plugin declines the script.
	CreateVirtualCode(ctx context.Context, uri uri.URI, languageID protocol.LanguageIdentifier, snapshot Snapshot) (*VirtualCode, error)
	// UpdateVirtualCode builds the tree for a replacement snapshot given the previous tree.
	UpdateVirtualCode(ctx context.Context, uri uri.URI, previous *VirtualCode, snapshot Snapshot) (*VirtualCode, error)
}
