package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeniorPomidorro/redmine-go-kit/pkg/apis/redmine"
)

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redmine.yaml")
	data := []byte("url: https://redmine.example.com\napi_key: secret\nformat: json\npage_size: 50\ntimeout: 15s\n")
	require.NoError(t, os.WriteFile(path, data, 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		URL:      "https://redmine.example.com",
		APIKey:   "secret",
		Format:   "json",
		PageSize: 50,
		Timeout:  "15s",
	}, cfg)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redmine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: https://file.example.com\napi_key: from-file\n"), 0600))

	t.Setenv("REDMINE_URL", "https://env.example.com")
	t.Setenv("REDMINE_IMPERSONATE", "jsmith")
	t.Setenv("REDMINE_PAGE_SIZE", "10")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.URL)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "jsmith", cfg.Impersonate)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "xml", cfg.Format)
}

func TestLoadMissingFileUsesEnvOnly(t *testing.T) {
	t.Setenv("REDMINE_URL", "https://env.example.com")
	t.Setenv("REDMINE_USERNAME", "admin")
	t.Setenv("REDMINE_PASSWORD", "admin123")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.URL)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "admin123", cfg.Password)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redmine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: [unterminated\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redmine.yaml")
	want := Config{
		URL:      "https://redmine.example.com",
		Token:    "tok",
		Format:   "json",
		PageSize: 100,
	}
	require.NoError(t, Save(want, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "minimal", cfg: Config{URL: "http://localhost"}},
		{name: "missing url", cfg: Config{APIKey: "k"}, wantErr: true},
		{name: "bad format", cfg: Config{URL: "http://localhost", Format: "yaml"}, wantErr: true},
		{name: "password without username", cfg: Config{URL: "http://localhost", Password: "p"}, wantErr: true},
		{name: "bad timeout", cfg: Config{URL: "http://localhost", Timeout: "soon"}, wantErr: true},
		{name: "negative timeout", cfg: Config{URL: "http://localhost", Timeout: "-1s"}, wantErr: true},
		{name: "negative page size", cfg: Config{URL: "http://localhost", PageSize: -1}, wantErr: true},
		{name: "full", cfg: Config{URL: "http://localhost", APIKey: "k", Format: "JSON", Timeout: "5s", PageSize: 10}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOptionsBuildClient(t *testing.T) {
	t.Parallel()

	cfg := Config{
		URL:         "https://redmine.example.com",
		APIKey:      "secret",
		Format:      "json",
		Impersonate: "jsmith",
		Timeout:     "5s",
		PageSize:    40,
	}
	opts, err := cfg.Options()
	require.NoError(t, err)

	client, err := redmine.NewClient(opts...)
	require.NoError(t, err)
	assert.Equal(t, redmine.MimeJSON, client.Serializer().MimeType())
	assert.Equal(t, "https://redmine.example.com", client.URLs().Host())
}

func TestOptionsRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := Config{}.Options()
	require.Error(t, err)
}
