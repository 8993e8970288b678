package mcdmcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakeUpstream(t *testing.T, handler func(method string, req rpcRequest, w http.ResponseWriter)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req rpcRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		require.Equal(t, "2.0", req.Jsonrpc)

		handler(req.Method, req, w)
	}))
}

func TestInitializeCapturesSession(t *testing.T) {
	var sawSession string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSession = r.Header.Get("Mcp-Session-Id")

		var req rpcRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		if req.Method == "initialize" {
			w.Header().Set("Mcp-Session-Id", "session-123")
		}
		w.Write([]byte(`{"result":{}}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, Token: "tok"})

	err := client.Initialize(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", sawSession)

	_, err = client.CampaignCalendar(context.Background())
	require.NoError(t, err)
	require.Equal(t, "session-123", sawSession)
}

func TestCallToolReturnsText(t *testing.T) {
	server := newFakeUpstream(t, func(method string, req rpcRequest, w http.ResponseWriter) {
		require.Equal(t, "tools/call", method)
		w.Write([]byte(`{"result":{"content":[{"type":"text","text":"#### 1月17日"}]}}`))
	})
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	text, err := client.CampaignCalendar(context.Background())
	require.NoError(t, err)
	require.Equal(t, "#### 1月17日", text)
}

func TestRpcErrorSurfaces(t *testing.T) {
	server := newFakeUpstream(t, func(method string, req rpcRequest, w http.ResponseWriter) {
		w.Write([]byte(`{"error":{"code":-32000,"message":"token expired"}}`))
	})
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.AutoBindCoupons(context.Background())
	require.ErrorContains(t, err, "token expired")
}

func TestNowDate(t *testing.T) {
	server := newFakeUpstream(t, func(method string, req rpcRequest, w http.ResponseWriter) {
		w.Write([]byte(`{"result":{"content":[],"structuredContent":{"data":{"date":"2026-01-17"}}}}`))
	})
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	date, err := client.NowDate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2026-01-17", date)
}
