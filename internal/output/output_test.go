package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"simple prompt", "A red apple on a wooden table", "a-red-apple-on-a-wooden-table"},
		{"punctuation stripped", "Hello, world! (v2)", "hello-world-v2"},
		{"whitespace collapsed", "a   b\t\tc", "a-b-c"},
		{"hyphens kept and collapsed", "twenty--one -- two", "twenty-one-two"},
		{"only punctuation falls back", "!!! ???", "untitled"},
		{"empty falls back", "", "untitled"},
		{"accented letters survive", "Café crème brûlée", "café-crème-brûlée"},
		{"cjk survives", "富士山の 水彩画", "富士山の-水彩画"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.prompt))
		})
	}

	t.Run("deterministic", func(t *testing.T) {
		prompt := "A red apple on a wooden table"
		assert.Equal(t, Slug(prompt), Slug(prompt))
	})

	t.Run("capped at 50 runes", func(t *testing.T) {
		long := strings.Repeat("banana ", 30)
		slug := Slug(long)
		assert.LessOrEqual(t, utf8.RuneCountInString(slug), 50)
		assert.False(t, strings.HasSuffix(slug, "-"), "cap must not leave a trailing hyphen")
	})

	t.Run("cap cuts on rune boundaries", func(t *testing.T) {
		long := strings.Repeat("ばなな", 30)
		slug := Slug(long)
		assert.True(t, utf8.ValidString(slug))
		assert.LessOrEqual(t, utf8.RuneCountInString(slug), 50)
	})
}

func TestResolve(t *testing.T) {
	t.Run("explicit path wins verbatim", func(t *testing.T) {
		assert.Equal(t, "./x/y/z.png", Resolve("./x/y/z.png", "ignored prompt", ".jpg"))
	})

	t.Run("derived path lands under the default directory", func(t *testing.T) {
		got := Resolve("", "A red apple on a wooden table", ".png")
		assert.Equal(t, filepath.Join(DefaultDir, "a-red-apple-on-a-wooden-table.png"), got)
	})

	t.Run("idempotent for the same prompt", func(t *testing.T) {
		a := Resolve("", "Same prompt twice", ".png")
		b := Resolve("", "Same prompt twice", ".png")
		assert.Equal(t, a, b)
	})
}

func TestWrite(t *testing.T) {
	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "x", "y", "z.png")
		require.NoError(t, Write(path, []byte("image-bytes")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
	})

	t.Run("overwrites silently", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.png")
		require.NoError(t, Write(path, []byte("first")))
		require.NoError(t, Write(path, []byte("second")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)
	})

	t.Run("bare filename needs no directory", func(t *testing.T) {
		dir := t.TempDir()
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		require.NoError(t, Write("plain.png", []byte("x")))
		_, err = os.Stat(filepath.Join(dir, "plain.png"))
		assert.NoError(t, err)
	})
}
