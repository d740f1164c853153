package ports

// PasswordHasher is the one-way transform for secrets at rest. Verify runs
// the forward hash-and-compare; the digest is never reversed and stored
// fields are never compared with plain equality.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}
