package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskSpec_Normalize_DeduplicatesProjects(t *testing.T) {
	tests := []struct {
		name     string
		projects []string
		want     []string
	}{
		{
			name:     "case variants collapse to first occurrence",
			projects: []string{"src/Foo/Foo.proj", "SRC/FOO/FOO.proj"},
			want:     []string{"src/Foo/Foo.proj"},
		},
		{
			name:     "first casing wins",
			projects: []string{"SRC/FOO/FOO.proj", "src/Foo/Foo.proj"},
			want:     []string{"SRC/FOO/FOO.proj"},
		},
		{
			name:     "order preserved for distinct units",
			projects: []string{"src/B/B.proj", "src/A/A.proj", "src/b/b.proj"},
			want:     []string{"src/B/B.proj", "src/A/A.proj"},
		},
		{
			name:     "empty list stays empty",
			projects: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &TaskSpec{Projects: tt.projects}
			spec.Normalize()
			assert.Equal(t, tt.want, spec.Projects)
		})
	}
}

func TestTaskSpec_Normalize_DefaultsCommitMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "empty gets default", message: "", want: DefaultCommitMessage},
		{name: "whitespace gets default", message: "   ", want: DefaultCommitMessage},
		{name: "explicit message kept", message: "feat: add foo", want: "feat: add foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &TaskSpec{CommitMessage: tt.message}
			spec.Normalize()
			assert.Equal(t, tt.want, spec.CommitMessage)
		})
	}
}

func TestTaskSpec_TestUnits(t *testing.T) {
	spec := &TaskSpec{
		Projects: []string{
			"src/Foo/Foo.proj",
			"src/Foo.Tests/Foo.Tests.proj",
			"src/Bar/Bar.proj",
			"tests/Integration/Integration.proj",
		},
	}

	assert.Equal(t, []string{
		"src/Foo.Tests/Foo.Tests.proj",
		"tests/Integration/Integration.proj",
	}, spec.TestUnits())
}

func TestTaskSpec_MainUnit(t *testing.T) {
	tests := []struct {
		name   string
		files  []FileSpec
		want   string
		wantOK bool
	}{
		{
			name:   "first source file names the unit",
			files:  []FileSpec{{Path: "src/Foo/Bar.ext", Template: "classTemplate"}},
			want:   "src/Foo/Foo.proj",
			wantOK: true,
		},
		{
			name: "non-source files are skipped",
			files: []FileSpec{
				{Path: "docs/readme.md", Template: "classTemplate"},
				{Path: "src/Baz/Qux.ext", Template: "classTemplate"},
			},
			want:   "src/Baz/Baz.proj",
			wantOK: true,
		},
		{
			name:   "source root prefix matches case-insensitively",
			files:  []FileSpec{{Path: "SRC/Foo/Bar.ext", Template: "classTemplate"}},
			want:   "src/Foo/Foo.proj",
			wantOK: true,
		},
		{
			name:   "no source file means no inference",
			files:  []FileSpec{{Path: "docs/readme.md", Template: "classTemplate"}},
			wantOK: false,
		},
		{
			name:   "no files means no inference",
			files:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &TaskSpec{Files: tt.files}
			got, ok := spec.MainUnit()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
