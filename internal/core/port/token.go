package port

// TokenVerifier resolves a bearer token back to its subject claim. A failed
// verification is always domain.ErrInvalidToken; callers distinguish "no
// token" themselves.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
