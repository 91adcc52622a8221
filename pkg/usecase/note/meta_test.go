package note_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/spoor/pkg/usecase/note"
)

func TestDeriveHeadingTitle(t *testing.T) {
	meta := note.Derive("# Meeting notes\n\nSome content")
	gt.Equal(t, meta.Title, "Meeting notes")
	gt.Equal(t, meta.Tags, []string{})
}

func TestDeriveFrontmatter(t *testing.T) {
	content := "---\ntitle: Quarterly plan\ntags:\n  - work\n  - planning\n---\n# Ignored heading\n"
	meta := note.Derive(content)
	gt.Equal(t, meta.Title, "Quarterly plan")
	gt.Equal(t, meta.Tags, []string{"work", "planning"})
}

func TestDeriveFrontmatterCommaTags(t *testing.T) {
	content := "---\ntags: work, planning , work\n---\n# Plan\n"
	meta := note.Derive(content)
	gt.Equal(t, meta.Title, "Plan")
	gt.Equal(t, meta.Tags, []string{"work", "planning"})
}

func TestDeriveFallsBackToHeadingAfterFrontmatter(t *testing.T) {
	content := "---\ntags: [a]\n---\n## Sub heading\n"
	meta := note.Derive(content)
	gt.Equal(t, meta.Title, "Sub heading")
	gt.Equal(t, meta.Tags, []string{"a"})
}

func TestDeriveUntitled(t *testing.T) {
	meta := note.Derive("plain text without any heading")
	gt.Equal(t, meta.Title, note.DefaultTitle)
	gt.Equal(t, meta.Tags, []string{})
}

func TestDeriveEmptyContent(t *testing.T) {
	meta := note.Derive("")
	gt.Equal(t, meta.Title, note.DefaultTitle)
	gt.Equal(t, meta.Tags, []string{})
}

func TestDeriveUnterminatedFrontmatter(t *testing.T) {
	meta := note.Derive("---\ntags: [a]\n# Heading in broken block")
	gt.Equal(t, meta.Title, "Heading in broken block")
	gt.Equal(t, meta.Tags, []string{})
}
