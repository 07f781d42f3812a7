package vault

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVDataPath(t *testing.T) {
	assert.Equal(t, "secret/data/craftmyresume", kvDataPath("secret/craftmyresume"))
	assert.Equal(t, "secret/data/craftmyresume", kvDataPath("/secret/data/craftmyresume/"))
	assert.Equal(t, "secret", kvDataPath("secret"))
}

func TestGetSecrets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/craftmyresume", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Vault-Token"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"data": map[string]interface{}{
					"database_url": "postgres://vault",
					"jwt_secret":   "s3cret",
					"ignored":      42,
				},
			},
		})
	}))
	defer srv.Close()

	sm, err := NewSecretManager(srv.URL, "test-token")
	require.NoError(t, err)

	secrets, err := sm.GetSecrets(context.Background(), "secret/craftmyresume")
	require.NoError(t, err)
	assert.Equal(t, "postgres://vault", secrets["database_url"])
	assert.Equal(t, "s3cret", secrets["jwt_secret"])
	_, ok := secrets["ignored"]
	assert.False(t, ok)
}
