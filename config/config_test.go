package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/powerplay")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SITE_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("VAPID_PUBLIC_KEY", "")
	t.Setenv("VAPID_PRIVATE_KEY", "")
	t.Setenv("VAPID_SUBJECT", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SITE_URL", "https://powerplay.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "https://powerplay.example.com", cfg.SiteURL)
	assert.Equal(t, []string{"https://powerplay.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://powerplay.example.com", cfg.VAPIDSubject)
	assert.False(t, cfg.VAPIDConfigured())
}

func TestLoad_ExplicitValues(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("VAPID_PUBLIC_KEY", "pub")
	t.Setenv("VAPID_PRIVATE_KEY", "priv")
	t.Setenv("VAPID_SUBJECT", "mailto:ops@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "mailto:ops@example.com", cfg.VAPIDSubject)
	assert.True(t, cfg.VAPIDConfigured())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"missing jwt secret", map[string]string{"JWT_SECRET_KEY": ""}},
		{"port is not a number", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadGeocode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/powerplay")
	t.Setenv("KAKAO_REST_API_KEY", "")
	_, err := LoadGeocode()
	assert.Error(t, err)

	t.Setenv("KAKAO_REST_API_KEY", "kakao")
	cfg, err := LoadGeocode()
	require.NoError(t, err)
	assert.Equal(t, "kakao", cfg.KakaoRESTAPIKey)
}
