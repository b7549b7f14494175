package entity

import "strings"

// Feature is a single capability that a mapped region of code may enable.
type Feature uint32

// Features that can be enabled per mapping segment.
const (
	FeatureDiagnostics Feature = 1 << iota
	FeatureCompletion
	FeatureHover
	FeatureDefinition
	FeatureTypeDefinition
	FeatureImplementation
	FeatureReferences
	FeatureRename
	FeatureCodeActions
	FeatureSemanticTokens
	FeatureFoldingRanges
	FeatureDocumentLinks
	FeatureColors
	FeatureFormatting
	FeatureLinkedEditingRanges
	FeatureCallHierarchy
	FeatureSelectionRanges
	FeatureInlayHints
	FeatureMoniker
	FeatureHighlights
	FeatureSymbols
	FeatureSignatureHelp

	_featureEnd
)

// FeatureAll enables every feature.
const FeatureAll = _featureEnd - 1

var _featureNames = []string{
	"diagnostics",
	"completion",
	"hover",
	"definition",
	"typeDefinition",
	"implementation",
	"references",
	"rename",
	"codeActions",
	"semanticTokens",
	"foldingRanges",
	"documentLinks",
	"colors",
	"formatting",
	"linkedEditingRanges",
	"callHierarchy",
	"selectionRanges",
	"inlayHints",
	"moniker",
	"highlights",
	"symbols",
	"signatureHelp",
}

// Has reports whether every bit in other is set in f.
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

// String implements fmt.Stringer.
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range _featureNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// RenameBehavior customizes how rename requests are handled for a mapped region.
type RenameBehavior struct {
	// ShouldRename reports whether a rename is permitted at all. Nil allows it.
	ShouldRename func() bool
	// ResolveNewName reshapes a new name typed in source coordinates before it is sent to plugins.
	ResolveNewName func(newName string) string
	// ResolveEditText reshapes replacement text produced in generated coordinates before it lands in the source.
	ResolveEditText func(newText string) string
}

// CodeInformation holds the capabilities of one mapping segment.
type CodeInformation struct {
	Features Feature
	// Rename is consulted only when FeatureRename is set.
	Rename *RenameBehavior
	// ShouldReportDiagnostic, if set, decides per diagnostic whether it is surfaced in the source document.
	ShouldReportDiagnostic func(code string) bool
}

// Enabled reports whether the feature is enabled for this region.
func (c CodeInformation) Enabled(f Feature) bool {
	return c.Features.Has(f)
}

// ResolveNewName applies the rename name transform if one is configured.
func (c CodeInformation) ResolveNewName(newName string) string {
	if c.Rename != nil && c.Rename.ResolveNewName != nil {
		return c.Rename.ResolveNewName(newName)
	}
	return newName
}

// ResolveEditText applies the rename edit-text transform if one is configured.
func (c CodeInformation) ResolveEditText(newText string) string {
	if c.Rename != nil && c.Rename.ResolveEditText != nil {
		return c.Rename.ResolveEditText(newText)
	}
	return newText
}

// CodeFilter selects the mapping segments a feature may translate through.
type CodeFilter func(CodeInformation) bool

// FilterAll accepts every segment.
func FilterAll(CodeInformation) bool {
	return true
}

// FeatureFilter returns a filter accepting segments that enable f.
func FeatureFilter(f Feature) CodeFilter {
	return func(info CodeInformation) bool {
		return info.Enabled(f)
	}
}

// RenameFilter accepts segments that enable rename and whose ShouldRename predicate allows it.
func RenameFilter(info CodeInformation) bool {
	if !info.Enabled(FeatureRename) {
		return false
	}
	if info.Rename != nil && info.Rename.ShouldRename != nil {
		return info.Rename.ShouldRename()
	}
	return true
}
