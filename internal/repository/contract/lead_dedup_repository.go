package contract

import (
	"context"
	"time"
)

// LeadDedupRepository remembers recently submitted payload hashes so a double
// click or a retried request does not create a second CRM contact.
type LeadDedupRepository interface {
	// Claim reserves hash for ttl. When the hash is already held it returns
	// false and whatever value was stored with Confirm (empty while pending).
	Claim(ctx context.Context, hash string, ttl time.Duration) (bool, string, error)
	Confirm(ctx context.Context, hash, leadId string, ttl time.Duration) error
	Release(ctx context.Context, hash string) error
}
