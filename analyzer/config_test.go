package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		description string
		content     string
		expected    *Config
		expectError bool
	}{
		{
			description: "partial file keeps defaults",
			content:     "includePrefixes:\n  - com/x/\nstrict: true\n",
			expected: &Config{
				Concurrency:     4,
				IncludePrefixes: []string{"com/x/"},
				SkipDirs:        []string{".git", ".idea", ".gradle", "node_modules"},
				Depth:           1,
				Strict:          true,
			},
		},
		{
			description: "overrides",
			content:     "concurrency: 0\nskipDirs: [test-classes]\ndepth: 3\nexcludePrefixes: [java/]\n",
			expected: &Config{
				Concurrency:     1,
				ExcludePrefixes: []string{"java/"},
				SkipDirs:        []string{"test-classes"},
				Depth:           3,
			},
		},
		{
			description: "malformed yaml",
			content:     "concurrency: [",
			expectError: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			location := filepath.Join(t.TempDir(), "classdep.yaml")
			require.NoError(t, os.WriteFile(location, []byte(tc.content), 0o644))
			config, err := LoadConfig(context.Background(), afs.New(), location)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, config)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(context.Background(), nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Accepts(t *testing.T) {
	tests := []struct {
		description string
		config      Config
		className   string
		expected    bool
	}{
		{description: "no prefixes", className: "com/x/Foo", expected: true},
		{description: "included", config: Config{IncludePrefixes: []string{"org/", "com/x/"}}, className: "com/x/Foo", expected: true},
		{description: "not included", config: Config{IncludePrefixes: []string{"org/"}}, className: "com/x/Foo", expected: false},
		{description: "excluded", config: Config{ExcludePrefixes: []string{"com/x/internal/"}}, className: "com/x/internal/Foo", expected: false},
		{description: "exclude wins", config: Config{IncludePrefixes: []string{"com/"}, ExcludePrefixes: []string{"com/x/"}}, className: "com/x/Foo", expected: false},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.config.Accepts(tc.className))
		})
	}
}

func TestConfig_skipPath(t *testing.T) {
	config := DefaultConfig()
	assert.False(t, config.skipPath(""))
	assert.False(t, config.skipPath("com/x"))
	assert.True(t, config.skipPath(".git"))
	assert.True(t, config.skipPath("web/node_modules/lib"))
	assert.False(t, config.skipPath("com/gitx"))
}
