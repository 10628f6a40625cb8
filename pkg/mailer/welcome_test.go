package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, html, err := RenderWelcome(map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to ClearBalance", subject)
	assert.Contains(t, html, "Welcome, Alice!")
}

func TestRenderWelcome_NoName(t *testing.T) {
	_, html, err := RenderWelcome(nil)
	require.NoError(t, err)
	assert.Contains(t, html, "Welcome!")
}

func TestRenderWelcome_EscapesName(t *testing.T) {
	_, html, err := RenderWelcome(map[string]any{"name": "<script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestNewWelcomeJob(t *testing.T) {
	job := NewWelcomeJob("alice@example.com", "Alice")
	assert.Equal(t, "alice@example.com", job.To)
	assert.Equal(t, "welcome", job.Template)
	assert.Equal(t, map[string]any{"name": "Alice"}, job.Data)
}
