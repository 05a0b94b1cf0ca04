package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProducesFullDocument(t *testing.T) {
	out, err := Render("print(1)", "python", "friendly", "", false)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, "print")
	assert.Contains(t, out, "</html>")
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render("package main\n\nfunc main() {}\n", "go", "monokai", "example", true)
	assert.NoError(t, err)
	second, err := Render("package main\n\nfunc main() {}\n", "go", "monokai", "example", true)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderEmbedsTitle(t *testing.T) {
	out, err := Render("print(1)", "python", "friendly", "hello snippet", false)
	assert.NoError(t, err)
	assert.Contains(t, out, "<title>hello snippet</title>")
	assert.Contains(t, out, "<h2>hello snippet</h2>")

	// Without a title there is no caption.
	out, err = Render("print(1)", "python", "friendly", "", false)
	assert.NoError(t, err)
	assert.NotContains(t, out, "<h2>")
}

func TestRenderLineNumbers(t *testing.T) {
	with, err := Render("a = 1\nb = 2\n", "python", "friendly", "", true)
	assert.NoError(t, err)
	without, err := Render("a = 1\nb = 2\n", "python", "friendly", "", false)
	assert.NoError(t, err)

	// The line-number gutter is rendered as a table layout.
	assert.Contains(t, with, "<table")
	assert.NotContains(t, without, "<table")
}

func TestRenderRejectsUnregisteredTags(t *testing.T) {
	_, err := Render("print(1)", "klingon", "friendly", "", false)
	assert.Error(t, err)

	_, err = Render("print(1)", "python", "not-a-style", "", false)
	assert.Error(t, err)
}

func TestRegistryMembership(t *testing.T) {
	assert.True(t, SupportedLanguage(DefaultLanguage))
	assert.True(t, SupportedStyle(DefaultStyle))
	assert.False(t, SupportedLanguage("klingon"))
	assert.False(t, SupportedStyle("neon"))
}
