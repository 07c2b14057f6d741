package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The thank-you flag only needs to outlive the redirect back to the campaign
// page.
const thankYouTTL = 30 * time.Second

// FlagStore keeps the short-lived "just donated" flag shown on the campaign
// page right after a donation submission.
type FlagStore interface {
	SetThankYou(ctx context.Context, campaignID, donorKey string) error
	ThankYouPending(ctx context.Context, campaignID, donorKey string) (bool, error)
}

type flagStore struct {
	client *redis.Client
}

func NewFlagStore(client *redis.Client) FlagStore {
	return &flagStore{client: client}
}

func (s *flagStore) SetThankYou(ctx context.Context, campaignID, donorKey string) error {
	key := thankYouKey(campaignID, donorKey)
	return s.client.Set(ctx, key, time.Now().Unix(), thankYouTTL).Err()
}

func (s *flagStore) ThankYouPending(ctx context.Context, campaignID, donorKey string) (bool, error) {
	n, err := s.client.Exists(ctx, thankYouKey(campaignID, donorKey)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func thankYouKey(campaignID, donorKey string) string {
	return fmt.Sprintf("thankyou:%s:%s", campaignID, donorKey)
}
