package wallet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofmine/proofmine-console/pkg/logging"
)

func TestProviderDescriptor(t *testing.T) {
	t.Run("Success: fetches the environment descriptor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/environments/env-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"environment_id": "env-1", "name": "proofmine"}`)
		}))
		defer server.Close()

		provider, err := NewProviderClient(logging.NewNoOpLogger(), server.URL)
		require.NoError(t, err)
		defer provider.Close()

		descriptor, err := provider.Descriptor(context.Background(), "env-1")
		require.NoError(t, err)
		assert.Equal(t, "env-1", descriptor.EnvironmentID)
		assert.Equal(t, "proofmine", descriptor.Name)
	})

	t.Run("Failure: unknown environment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer server.Close()

		provider, err := NewProviderClient(logging.NewNoOpLogger(), server.URL)
		require.NoError(t, err)
		defer provider.Close()

		_, err = provider.Descriptor(context.Background(), "env-missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Failure: empty environment id", func(t *testing.T) {
		provider, err := NewProviderClient(logging.NewNoOpLogger(), "https://auth.example.com")
		require.NoError(t, err)
		defer provider.Close()

		_, err = provider.Descriptor(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestProviderConnectURL(t *testing.T) {
	provider, err := NewProviderClient(logging.NewNoOpLogger(), "https://auth.example.com/")
	require.NoError(t, err)
	defer provider.Close()

	t.Run("default hosted page", func(t *testing.T) {
		raw := provider.ConnectURL(nil, "env-1", "http://127.0.0.1:4321/callback", "state-1")

		parsed, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "https", parsed.Scheme)
		assert.Equal(t, "auth.example.com", parsed.Host)
		assert.Equal(t, "/connect", parsed.Path)
		assert.Equal(t, "env-1", parsed.Query().Get("environment_id"))
		assert.Equal(t, "http://127.0.0.1:4321/callback", parsed.Query().Get("redirect_uri"))
		assert.Equal(t, "state-1", parsed.Query().Get("state"))
	})

	t.Run("descriptor override wins", func(t *testing.T) {
		descriptor := &EnvironmentDescriptor{
			EnvironmentID: "env-1",
			ConnectURL:    "https://wallet.example.com/link",
		}
		raw := provider.ConnectURL(descriptor, "env-1", "http://127.0.0.1:4321/callback", "state-1")

		parsed, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "wallet.example.com", parsed.Host)
		assert.Equal(t, "/link", parsed.Path)
		assert.Equal(t, "env-1", parsed.Query().Get("environment_id"))
	})
}
