package backend

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"campus_market/internal/domain"
)

// OAuth2Token serves the access token of any oauth2.TokenSource as an
// opaque bearer string.
type OAuth2Token struct{ src oauth2.TokenSource }

var _ domain.TokenProvider = OAuth2Token{}

func NewOAuth2Token(src oauth2.TokenSource) OAuth2Token { return OAuth2Token{src: src} }

// StaticToken never refreshes; an empty token disables the auth header.
func StaticToken(token string) OAuth2Token {
	if token == "" {
		return OAuth2Token{}
	}
	return NewOAuth2Token(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
}

func (t OAuth2Token) Token(_ context.Context) (string, error) {
	if t.src == nil {
		return "", nil
	}
	tok, err := t.src.Token()
	if err != nil {
		return "", fmt.Errorf("token source: %w", err)
	}
	return tok.AccessToken, nil
}

// TokenFunc adapts a plain function.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// FirstToken asks each provider in order and returns the first non-empty token.
type FirstToken []domain.TokenProvider

func (p FirstToken) Token(ctx context.Context) (string, error) {
	var lastErr error
	for _, tp := range p {
		if tp == nil {
			continue
		}
		tok, err := tp.Token(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if tok != "" {
			return tok, nil
		}
	}
	return "", lastErr
}
