package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearVendorKeys(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "LLM_PROVIDER", "LLM_GEMINI_API_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearVendorKeys(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 9000, cfg.Lesson.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Lesson.Temperature, 1e-9)
	assert.Equal(t, 8000, cfg.Lesson.SourceCharLimit)
	assert.Equal(t, "tnudF2IxzORPhg4r8", cfg.Apify.ImageActor)
	assert.Equal(t, "h7sDV53CddomktSi5", cfg.Apify.VideoActor)
	assert.False(t, cfg.Apify.Enabled())
	assert.False(t, cfg.DocumentAI.Enabled())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Error(t, cfg.RequireLLM())
}

func TestLoad_EnvFile(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("LESSON_MAX_TOKENS", "")
	os.Unsetenv("LESSON_MAX_TOKENS")
	t.Setenv("APIFY_TOKEN", "")
	os.Unsetenv("APIFY_TOKEN")

	path := filepath.Join(t.TempDir(), ".env")
	content := "LESSON_MAX_TOKENS=2048\nAPIFY_TOKEN=apify-test\nLLM_PROVIDER=mock\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LESSON_MAX_TOKENS")
		os.Unsetenv("APIFY_TOKEN")
		os.Unsetenv("LLM_PROVIDER")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Lesson.MaxTokens)
	assert.True(t, cfg.Apify.Enabled())
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.NoError(t, cfg.RequireLLM())
}

func TestLoad_MissingEnvFileTolerated(t *testing.T) {
	clearVendorKeys(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.NoError(t, cfg.RequireLLM())
}

func TestLoad_NestedPrefixes(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("LLM_ANTHROPIC_API_KEY", "ak")
	t.Setenv("LLM_RETRY_ATTEMPTS", "5")
	t.Setenv("DOCUMENTAI_PROJECT_ID", "proj")
	t.Setenv("DOCUMENTAI_PROCESSOR_ID", "proc")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ak", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, uint(5), cfg.LLM.Retry.Attempts)
	assert.True(t, cfg.DocumentAI.Enabled())
	assert.Equal(t, "us", cfg.DocumentAI.Location)
}

func TestValidate(t *testing.T) {
	clearVendorKeys(t)
	t.Setenv("LESSON_SOURCE_CHAR_LIMIT", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LESSON_SOURCE_CHAR_LIMIT")
}
