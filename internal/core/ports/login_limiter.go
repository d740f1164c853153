package ports

import "context"

// LoginLimiter throttles repeated failed logins per identity. Implementations
// keep a counter with a sliding expiry; a successful login resets it.
type LoginLimiter interface {
	TooMany(ctx context.Context, identity string) (bool, error)
	RecordFailure(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}
