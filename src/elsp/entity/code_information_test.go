package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "none", Feature(0).String())
	assert.Equal(t, "hover", FeatureHover.String())
	assert.Equal(t, "completion|hover", (FeatureCompletion | FeatureHover).String())
	assert.Len(t, strings.Split(FeatureAll.String(), "|"), len(_featureNames))
}

func TestFeatureFilter(t *testing.T) {
	info := CodeInformation{Features: FeatureHover | FeatureDefinition}

	assert.True(t, FeatureFilter(FeatureHover)(info))
	assert.True(t, FeatureFilter(FeatureHover|FeatureDefinition)(info))
	assert.False(t, FeatureFilter(FeatureHover|FeatureCompletion)(info))
	assert.False(t, FeatureFilter(FeatureFormatting)(info))
	assert.True(t, FilterAll(CodeInformation{}))
}

func TestRenameFilter(t *testing.T) {
	tests := []struct {
		name string
		info CodeInformation
		want bool
	}{
		{
			name: "rename disabled",
			info: CodeInformation{Features: FeatureHover},
		},
		{
			name: "rename enabled",
			info: CodeInformation{Features: FeatureRename},
			want: true,
		},
		{
			name: "rename vetoed",
			info: CodeInformation{
				Features: FeatureRename,
				Rename:   &RenameBehavior{ShouldRename: func() bool { return false }},
			},
		},
		{
			name: "rename behavior without predicate",
			info: CodeInformation{
				Features: FeatureRename,
				Rename:   &RenameBehavior{},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenameFilter(tt.info))
		})
	}
}

func TestResolveRenameText(t *testing.T) {
	plain := CodeInformation{Features: FeatureRename}
	assert.Equal(t, "foo", plain.ResolveNewName("foo"))
	assert.Equal(t, "foo", plain.ResolveEditText("foo"))

	custom := CodeInformation{
		Features: FeatureRename,
		Rename: &RenameBehavior{
			ResolveNewName:  func(s string) string { return "$" + s },
			ResolveEditText: strings.ToUpper,
		},
	}
	assert.Equal(t, "$foo", custom.ResolveNewName("foo"))
	assert.Equal(t, "FOO", custom.ResolveEditText("foo"))
}
