package auth

import "context"

// TokenProvider supplies bearer tokens for a resource audience. The
// Fabric client asks for a token before every request; providers are
// expected to cache internally if acquisition is expensive.
type TokenProvider interface {
	GetToken(ctx context.Context, audience string) (string, error)
}

// Static is a fixed pre-acquired token, used in tests and in pipelines
// that inject a token through the environment.
type Static string

func (s Static) GetToken(ctx context.Context, audience string) (string, error) {
	return string(s), nil
}
