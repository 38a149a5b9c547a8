package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoimg/nanoimg/internal/providers"
)

func TestModelsCommandJSON(t *testing.T) {
	prev := modelsJson
	t.Cleanup(func() { modelsJson = prev })
	modelsJson = true

	var buf bytes.Buffer
	modelsCmd.SetOut(&buf)
	require.NoError(t, modelsCmd.RunE(modelsCmd, nil))

	var models []providers.ModelInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &models))
	require.Len(t, models, 2)
	assert.Equal(t, "flash", models[0].Alias)
	assert.Equal(t, "gemini-2.5-flash-image", models[0].ID)
	assert.Equal(t, "pro", models[1].Alias)
	assert.Equal(t, "gemini-3-pro-image-preview", models[1].ID)
}

func TestModelsCommandTable(t *testing.T) {
	prev := modelsJson
	t.Cleanup(func() { modelsJson = prev })
	modelsJson = false

	var buf bytes.Buffer
	modelsCmd.SetOut(&buf)
	require.NoError(t, modelsCmd.RunE(modelsCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "gemini-3-pro-image-preview")
	assert.Contains(t, out, "gemini-2.5-flash-image")
}
