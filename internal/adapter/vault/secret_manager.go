package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetSecrets reads a KV v2 secret and returns its string values. A path
// like "secret/craftmyresume" is read from "secret/data/craftmyresume".
func (sm *SecretManager) GetSecrets(ctx context.Context, path string) (map[string]string, error) {
	secret, err := sm.client.Logical().ReadWithContext(ctx, kvDataPath(path))
	if err != nil {
		return nil, fmt.Errorf("vault read %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("vault: no secret at %s", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("vault: secret at %s is not a kv v2 document", path)
	}

	out := make(map[string]string, len(data))
	for k, v := range data {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}

func kvDataPath(path string) string {
	path = strings.Trim(path, "/")
	mount, rest, found := strings.Cut(path, "/")
	if !found {
		return path
	}
	if strings.HasPrefix(rest, "data/") {
		return path
	}
	return mount + "/data/" + rest
}
