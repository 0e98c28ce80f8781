package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Setenv(StateDirEnv, t.TempDir())

	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "redis storage", modify: func(c *Config) {
			c.Storage.Type = "redis"
			c.Storage.Redis.DB = 3
		}},
		{name: "unknown storage type", modify: func(c *Config) { c.Storage.Type = "bolt" },
			errMsg: `storage.type value "bolt"`},
		{name: "threshold above maximum", modify: func(c *Config) { c.Feed.VisibilityThreshold = 2 },
			errMsg: "feed.visibility_threshold must be at most 1"},
		{name: "cap below minimum", modify: func(c *Config) { c.Seen.MaxEntries = 0 },
			errMsg: "seen.max_entries must be at least 1"},
		{name: "negative redis db", modify: func(c *Config) { c.Storage.Redis.DB = -1 },
			errMsg: "storage.redis.db must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	generated, err := GenerateSchema()
	require.NoError(t, err)

	var embedded map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))
	defs, ok := embedded["$defs"].(map[string]any)
	require.True(t, ok)

	// every section and property of the struct is present in the embedded schema
	for name, def := range generated.Definitions {
		embeddedDef, ok := defs[name].(map[string]any)
		require.True(t, ok, "definition %s missing, run go generate", name)
		props, ok := embeddedDef["properties"].(map[string]any)
		require.True(t, ok, name)
		for pair := def.Properties.Oldest(); pair != nil; pair = pair.Next() {
			assert.Contains(t, props, pair.Key, "%s.%s missing, run go generate", name, pair.Key)
		}
	}
}
