package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenExpirySkew refreshes tokens this long before they expire.
const tokenExpirySkew = 60 * time.Second

// TokenProvider yields a valid bearer token, refreshing it when needed.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenProvider.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken returns a provider that always yields token.
func StaticToken(token string) TokenProvider {
	return TokenFunc(func(context.Context) (string, error) { return token, nil })
}

// CredentialsProvider fetches app access tokens with the client-credentials grant
// and reuses each token until it is within a minute of expiry. Safe for concurrent use.
type CredentialsProvider struct {
	src oauth2.TokenSource
}

// NewCredentialsProvider creates a provider for the configured client.
// ctx is kept by the token source for every refresh. Unless ctx already carries an
// *http.Client under oauth2.HTTPClient, refreshes use one bounded by the catalog timeout.
func NewCredentialsProvider(ctx context.Context, cfg Config) *CredentialsProvider {
	if _, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); !ok {
		timeout := cfg.TimeoutSeconds
		if timeout <= 0 {
			timeout = 15
		}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: time.Duration(timeout) * time.Second})
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	return &CredentialsProvider{
		src: oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(ctx), tokenExpirySkew),
	}
}

// Token returns the cached token or fetches a new one. The token source has no
// per-call context, so ctx is only checked before the call; a refresh in flight
// is bounded by the client timeout instead.
func (p *CredentialsProvider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("failed to obtain catalog token: %w", err)
	}
	tok, err := p.src.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain catalog token: %w", err)
	}
	return tok.AccessToken, nil
}
