package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain wav", "recording.wav", "recording"},
		{"spaces replaced", "my meeting notes.mp3", "my_meeting_notes"},
		{"path components stripped", "../../etc/passwd.wav", "passwd"},
		{"unicode replaced", "面试记录.mp3", "audio"},
		{"only extension", ".mp3", "audio"},
		{"empty", "", "audio"},
		{"keeps dashes and dots", "take-2.final.wav", "take-2.final"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeBaseName(tt.filename))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	assert.NoError(t, EnsureDir(dir))
}

func TestReadOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("  hello world \n"), 0o644))

	got, err := ReadOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	_, err = ReadOutputFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
