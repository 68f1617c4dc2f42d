package redisdb

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient("not-a-redis-url")
	require.Error(t, err)

	_, err = NewClient("")
	require.Error(t, err)
}

func TestNewClient_Connects(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping integration test")
	}

	rdb, err := NewClient(url)
	require.NoError(t, err)
	require.NoError(t, rdb.Close())
}
