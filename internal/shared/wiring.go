package shared

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"campus_market/internal/adapters/backend"
	redisad "campus_market/internal/adapters/redis"
	"campus_market/internal/app"
	"campus_market/internal/domain"
	"campus_market/internal/fallback"
)

const (
	// most sequential chains one BFF request runs: a profile update
	// accepted without a body re-reads the profile
	chainsPerRequest = 2
	handlerMargin    = 2 * time.Second
	defaultAttempt   = 10 * time.Second
)

// ChainBound is the longest one candidate chain may run. An explicit
// CHAIN_TIMEOUT_SECONDS wins; otherwise every candidate of the longest list
// gets a full request timeout.
func (c Config) ChainBound() time.Duration {
	if c.ChainTimeout > 0 {
		return c.ChainTimeout
	}
	rt := c.RequestTimeout
	if rt <= 0 {
		rt = defaultAttempt
	}
	return time.Duration(app.MaxCandidates()) * rt
}

// HandlerTimeout bounds a BFF request. It always exceeds the chains the
// request can run, so a degraded answer is written before the handler
// gives up.
func (c Config) HandlerTimeout() time.Duration {
	return chainsPerRequest*c.ChainBound() + handlerMargin
}

// NewService wires config into the façade over a fresh backend client and
// the fallback catalog.
func NewService(cfg Config) (*app.Service, func(), error) {
	client, cleanup, err := NewClient(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	return app.NewService(client, fallback.New()), cleanup, nil
}

// NewClient builds the backend executor with its token providers. The
// returned cleanup closes the redis token store when one was configured.
func NewClient(cfg Config) (*backend.Client, func(), error) {
	cleanup := func() {}
	tokens := backend.FirstToken{backend.StaticToken(cfg.BackendToken)}
	if cfg.RedisAddr != "" {
		store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.TokenKey)
		tokens = append(tokens, domain.TokenProvider(store))
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("close token store")
			}
		}
	}

	attempt := cfg.RequestTimeout
	if attempt <= 0 {
		attempt = defaultAttempt
	}
	opts := []backend.Option{
		backend.WithHTTPClient(&http.Client{Timeout: attempt}),
		backend.WithChainTimeout(cfg.ChainBound()),
	}
	if cfg.BreakerEnabled {
		opts = append(opts, backend.WithBreakers(5, 30*time.Second))
	}
	client, err := backend.New(cfg.BackendBase, tokens, cfg.BackendRPS, opts...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	log.Info().
		Str("base", cfg.BackendBase).
		Int("rps", cfg.BackendRPS).
		Bool("breakers", cfg.BreakerEnabled).
		Dur("chain_bound", cfg.ChainBound()).
		Msg("backend client ready")
	return client, cleanup, nil
}
