package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tosika/pkg/config"

	"github.com/stretchr/testify/assert"
)

type memoryStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{seen: make(map[string]bool)}
}

func (s *memoryStore) Consume(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func newTestClient(verifyURL string) *Client {
	cfg := &config.Config{
		CaptchaSecret:    "test-secret",
		CaptchaVerifyURL: verifyURL,
	}
	return NewClient(cfg, newMemoryStore())
}

func TestVerify_EmptyToken(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	err := client.Verify(context.Background(), "", "127.0.0.1")
	assert.ErrorIs(t, err, ErrTokenRequired)
	// No outbound call for a missing token
	assert.Equal(t, 0, calls)
}

func TestVerify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.FormValue("secret"))
		assert.Equal(t, "good-token", r.FormValue("response"))
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	err := client.Verify(context.Background(), "good-token", "127.0.0.1")
	assert.NoError(t, err)
}

func TestVerify_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	err := client.Verify(context.Background(), "bad-token", "127.0.0.1")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_SingleUse(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	err := client.Verify(context.Background(), "one-shot", "127.0.0.1")
	assert.NoError(t, err)

	// Replaying the same token fails without another remote check
	err = client.Verify(context.Background(), "one-shot", "127.0.0.1")
	assert.ErrorIs(t, err, ErrTokenConsumed)
	assert.Equal(t, 1, calls)
}

func TestVerify_ConsumedEvenWhenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	err := client.Verify(context.Background(), "spent-token", "127.0.0.1")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// A failed attempt still burns the token
	err = client.Verify(context.Background(), "spent-token", "127.0.0.1")
	assert.ErrorIs(t, err, ErrTokenConsumed)
}
