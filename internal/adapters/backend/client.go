// internal/adapters/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"campus_market/internal/adapters/observability"
	"campus_market/internal/domain"
)

const (
	service      = "backend"
	maxBodyBytes = 8 << 20
)

// Client walks candidate routes against one base URL. Each candidate gets a
// single attempt; the first 2xx wins.
type Client struct {
	base         string
	hc           *http.Client
	tokens       domain.TokenProvider
	rl           *rate.Limiter
	chainTimeout time.Duration

	breakerTrips   uint32
	breakerTimeout time.Duration
	mu             sync.Mutex
	breakers       map[string]*gobreaker.CircuitBreaker
}

var _ domain.Executor = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// WithChainTimeout bounds a whole Execute call, across all candidates.
func WithChainTimeout(d time.Duration) Option { return func(c *Client) { c.chainTimeout = d } }

// WithBreakers enables a circuit breaker per route. A route that failed
// trips times in a row is skipped for timeout.
func WithBreakers(trips uint32, timeout time.Duration) Option {
	return func(c *Client) {
		if trips == 0 {
			trips = 3
		}
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.breakerTrips, c.breakerTimeout = trips, timeout
		c.breakers = map[string]*gobreaker.CircuitBreaker{}
	}
}

func New(base string, tokens domain.TokenProvider, rps int, opts ...Option) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if rps <= 0 {
		rps = 20
	}
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{Timeout: 10 * time.Second},
		tokens: tokens,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ---- errors ----

// StatusError is a candidate that answered with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

type Attempt struct {
	Route  string
	Status int // 0 when the transport failed
	Err    error
}

func (a Attempt) String() string {
	if a.Status != 0 {
		return fmt.Sprintf("%s (%d)", a.Route, a.Status)
	}
	return fmt.Sprintf("%s (%v)", a.Route, a.Err)
}

// ChainError is returned when no candidate succeeded. It is the only error
// Execute returns.
type ChainError struct {
	Method   string
	Attempts []Attempt
	Cause    error // set when the request could not be built at all
}

func (e *ChainError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("backend: %s request not sent: %v", e.Method, e.Cause)
	case len(e.Attempts) == 0:
		return fmt.Sprintf("backend: no candidate routes for %s", e.Method)
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.String()
	}
	return fmt.Sprintf("backend: all %d candidates failed for %s: %s", len(e.Attempts), e.Method, strings.Join(parts, "; "))
}

func (e *ChainError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Cause}
	}
	out := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Err != nil {
			out = append(out, a.Err)
		}
	}
	return out
}

// Routes lists the attempted candidates in order.
func (e *ChainError) Routes() []string {
	out := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		out[i] = a.Route
	}
	return out
}

// ---- Public API ----

func (c *Client) Execute(ctx context.Context, candidates []string, req domain.Request) (domain.Response, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return domain.Response{}, &ChainError{Method: method, Cause: err}
		}
		payload = b
	}

	if c.chainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.chainTimeout)
		defer cancel()
	}

	token := c.token(ctx)
	attempts := make([]Attempt, 0, len(candidates))
	for _, route := range candidates {
		resp, att := c.attempt(ctx, method, route, payload, token, req.Header)
		if att == nil {
			return resp, nil
		}
		log.Debug().Str("method", method).Str("route", route).Int("status", att.Status).Err(att.Err).Msg("candidate failed")
		attempts = append(attempts, *att)
	}

	observability.ObserveExhaustion(service, method)
	err := &ChainError{Method: method, Attempts: attempts}
	log.Warn().Str("method", method).Strs("candidates", candidates).Msg("all candidate routes failed")
	return domain.Response{}, err
}

// ---- Internals ----

func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("token lookup failed; sending unauthenticated")
		return ""
	}
	return tok
}

// attempt issues one request. A nil *Attempt means success.
func (c *Client) attempt(ctx context.Context, method, route string, payload []byte, token string, hdr http.Header) (domain.Response, *Attempt) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Response{}, &Attempt{Route: route, Err: err}
	}

	start := time.Now()
	call := func() (domain.Response, error) { return c.do(ctx, method, route, payload, token, hdr) }

	var (
		resp domain.Response
		err  error
	)
	if cb := c.breaker(route); cb != nil {
		var out any
		out, err = cb.Execute(func() (any, error) {
			r, err := call()
			return r, err
		})
		if r, ok := out.(domain.Response); ok {
			resp = r
		}
	} else {
		resp, err = call()
	}

	if err == nil {
		observability.ObserveExternal(service, route, strconv.Itoa(resp.Status), time.Since(start))
		return resp, nil
	}

	var se *StatusError
	if errors.As(err, &se) {
		observability.ObserveExternal(service, route, strconv.Itoa(se.Code), time.Since(start))
		return domain.Response{}, &Attempt{Route: route, Status: se.Code, Err: err}
	}
	observability.ObserveExternal(service, route, observability.LabelErr(err), time.Since(start))
	return domain.Response{}, &Attempt{Route: route, Err: err}
}

func (c *Client) do(ctx context.Context, method, route string, payload []byte, token string, hdr http.Header) (domain.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(route), body)
	if err != nil {
		return domain.Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "campus-market/1.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range hdr {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := raw
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return domain.Response{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if err != nil {
		// a 2xx whose body broke mid-read still counts as answered, without a body
		log.Debug().Err(err).Str("route", route).Msg("read body failed")
		raw = nil
	}
	return domain.Response{Route: route, Status: resp.StatusCode, Body: decodeBody(raw)}, nil
}

// decodeBody tolerates empty and non-JSON bodies by returning nil.
func decodeBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func (c *Client) url(route string) string {
	if strings.HasPrefix(route, "http://") || strings.HasPrefix(route, "https://") {
		return route
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return c.base + route
}

func (c *Client) breaker(route string) *gobreaker.CircuitBreaker {
	if c.breakers == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok := c.breakers[route]; ok {
		return cb
	}
	trips := c.breakerTrips
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        route,
		MaxRequests: 1,
		Timeout:     c.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trips
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("route", name).Str("from", from.String()).Str("to", to.String()).Msg("route breaker state change")
		},
	})
	c.breakers[route] = cb
	return cb
}
