package captcha

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tosika/pkg/config"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenRequired = errors.New("verification token required")
	ErrTokenConsumed = errors.New("verification token already used")
	ErrTokenInvalid  = errors.New("verification failed")
)

// A token is single use: it is marked consumed before the remote check, so a
// replay fails even when the guarded action errored.
const consumedTTL = 10 * time.Minute

// Store tracks consumed tokens. Consume returns false if the key was already
// present.
type Store interface {
	Consume(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Consume(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, "1", ttl).Result()
}

// Verifier checks a human-verification token before a mutating action is
// allowed through.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

type Client struct {
	secret     string
	verifyURL  string
	store      Store
	httpClient *http.Client
}

func NewClient(cfg *config.Config, store Store) *Client {
	return &Client{
		secret:    cfg.CaptchaSecret,
		verifyURL: cfg.CaptchaVerifyURL,
		store:     store,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return ErrTokenRequired
	}

	key := "captcha:used:" + hashToken(token)
	fresh, err := c.store.Consume(ctx, key, consumedTTL)
	if err != nil {
		return fmt.Errorf("failed to check token: %w", err)
	}
	if !fresh {
		return ErrTokenConsumed
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach verification service: %w", err)
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode verification response: %w", err)
	}

	if !result.Success {
		return ErrTokenInvalid
	}

	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
