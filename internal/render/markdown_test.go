package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownSanitizes(t *testing.T) {
	out := string(Markdown("## Título\n\n<script>alert(1)</script>\n\n[enlace](javascript:alert(1))"))
	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "Título")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}

func TestMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", string(Markdown("  \n")))
}

func TestPlainText(t *testing.T) {
	text := PlainText("# Hola\n\nUn **texto** con <em>marcas</em> & más.")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "**")
	assert.Contains(t, text, "Hola")
	assert.Contains(t, text, "& más")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "corto", Summary("corto", 20))
	assert.Equal(t, "una frase…", Summary("una frase bastante larga", 12))
}
