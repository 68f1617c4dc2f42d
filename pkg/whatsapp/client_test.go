package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendText_PostsNormalizedPhone(t *testing.T) {
	var got SendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/send/message", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "admin", user)
		require.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(SendMessageResponse{Success: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	err := c.SendText(context.Background(), "011987654321", "Seu pedido esta pronto!")
	require.NoError(t, err)
	require.Equal(t, "5511987654321@s.whatsapp.net", got.Phone)
	require.Equal(t, "Seu pedido esta pronto!", got.Message)
}

func TestSendText_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SendMessageResponse{Success: false, Message: "device not connected"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	err := c.SendText(context.Background(), "5511987654321", "oi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "device not connected")
}

func TestSendText_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "wrong")
	err := c.SendText(context.Background(), "5511987654321", "oi")
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestDeviceStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/app/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"connected": true, "device": "5511999990000"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	st, err := c.DeviceStatus(context.Background())
	require.NoError(t, err)
	require.True(t, st.Data.Connected)
	require.Equal(t, "5511999990000", st.Data.Device)
}

func TestNormalizePhone(t *testing.T) {
	require.Equal(t, "5511987654321", normalizePhone("011987654321"))
	require.Equal(t, "5511987654321", normalizePhone("+5511987654321"))
	require.Equal(t, "5511987654321", normalizePhone("5511987654321"))
}
