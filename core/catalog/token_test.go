package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsProvider_ReusesToken(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600,"token_type":"bearer"}`))
	}))
	defer srv.Close()

	p := NewCredentialsProvider(context.Background(), Config{ClientID: "client", ClientSecret: "secret", TokenURL: srv.URL})

	for i := 0; i < 3; i++ {
		tok, err := p.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok-1", tok)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCredentialsProvider_RefreshesNearExpiry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		// Expires inside the refresh window, so every call fetches again.
		_, _ = w.Write([]byte(`{"access_token":"short","expires_in":30,"token_type":"bearer"}`))
	}))
	defer srv.Close()

	p := NewCredentialsProvider(context.Background(), Config{ClientID: "c", ClientSecret: "s", TokenURL: srv.URL})

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	_, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCredentialsProvider_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid client"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewCredentialsProvider(context.Background(), Config{ClientID: "c", ClientSecret: "s", TokenURL: srv.URL})
	_, err := p.Token(context.Background())
	assert.ErrorContains(t, err, "failed to obtain catalog token")
}

func TestCredentialsProvider_RefreshTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	p := NewCredentialsProvider(context.Background(), Config{ClientID: "c", ClientSecret: "s", TokenURL: srv.URL, TimeoutSeconds: 1})

	start := time.Now()
	_, err := p.Token(context.Background())
	assert.ErrorContains(t, err, "failed to obtain catalog token")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCredentialsProvider_CanceledContext(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	p := NewCredentialsProvider(context.Background(), Config{ClientID: "c", ClientSecret: "s", TokenURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Token(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestStaticToken(t *testing.T) {
	tok, err := StaticToken("abc").Token(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "abc", tok)
}
