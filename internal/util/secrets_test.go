package util

import (
	"os"
	"path/filepath"
	"portfoliobias/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearSecretsEnv(t *testing.T) {
	for _, k := range []string{"BIAS_ENV", "OPENAI_API_KEY", "BIAS_STORE", "AWS_REGION", "BIAS_RESULTS_BUCKET", "BIAS_UPLOADS_BUCKET", "DATABASE_URL", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoadSecrets(t *testing.T) {
	t.Run("file with env overrides", func(t *testing.T) {
		clearSecretsEnv(t)
		f := filepath.Join(t.TempDir(), "secrets.json")
		require.NoError(t, os.WriteFile(f, []byte(`{
			"gpt": "file-key",
			"store": "postgres",
			"aws": {"resultsBucket": "file-bucket"},
			"benchmarks": {"momentumReturn": 3.5}
		}`), 0o644))
		t.Setenv("BIAS_SECRETS_FILE", f)
		t.Setenv("BIAS_RESULTS_BUCKET", "env-bucket")
		t.Setenv("PORT", "8080")

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, "file-key", secrets.ChatGPTApiKey)
		require.Equal(t, StorePostgres, secrets.Store)
		require.Equal(t, "env-bucket", secrets.Aws.ResultsBucket)
		require.Equal(t, "us-east-1", secrets.Aws.Region)
		require.Equal(t, 8080, secrets.Port)

		benchmarks := secrets.LoadBenchmarks()
		require.Equal(t, 3.5, benchmarks.MomentumReturn())
		require.Equal(t, domain.DefaultBenchmarks().Sector(), benchmarks.Sector())
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		clearSecretsEnv(t)
		t.Setenv("BIAS_SECRETS_FILE", filepath.Join(t.TempDir(), "none.json"))

		secrets, err := LoadSecrets()
		require.NoError(t, err)
		require.Equal(t, StoreS3, secrets.Store)
		require.Equal(t, 3009, secrets.Port)
	})

	t.Run("bad port", func(t *testing.T) {
		clearSecretsEnv(t)
		t.Setenv("BIAS_SECRETS_FILE", filepath.Join(t.TempDir(), "none.json"))
		t.Setenv("PORT", "abc")

		_, err := LoadSecrets()
		require.Error(t, err)
	})
}

func TestDbSecrets_ToConnectionStr(t *testing.T) {
	require.Equal(t, "postgres://u@h/db", DbSecrets{Url: "postgres://u@h/db"}.ToConnectionStr())
	require.Equal(t,
		"host=localhost port=5432 user=u password=p dbname=bias sslmode=disable",
		DbSecrets{Host: "localhost", Port: "5432", User: "u", Password: "p", Database: "bias"}.ToConnectionStr(),
	)
}
