// Package animation fetches the decorative Lottie animations shown next to
// orders. Every failure degrades to "unavailable"; callers then show the
// category glyph instead.
package animation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
	"github.com/wellywell/orderboard/internal/classify"
	"github.com/wellywell/orderboard/internal/metrics"
)

const (
	Login = "login"

	DefaultTimeout  = 3 * time.Second
	DefaultTTL      = 10 * time.Minute
	DefaultFailTTL  = time.Minute
	maxAnimationLen = 2 << 20
)

var DefaultURLs = map[string]string{
	string(classify.Coffee):  "https://lottie.host/57520e5d-168a-493f-998a-78536f901a1c/vO89TOn60r.json",
	string(classify.Tea):     "https://lottie.host/36979607-1603-4c55-83e9-9bc77a76046e/8n9xLAnX1E.json",
	string(classify.Water):   "https://lottie.host/9f5033c7-3135-4309-883a-48d6139c2357/3nOqD2S0vX.json",
	string(classify.Food):    "https://lottie.host/62635904-8994-47a7-897d-606d1531e842/IEnf3m9u1h.json",
	string(classify.Default): "https://lottie.host/91106093-f111-477d-810a-706f85108f97/Bsc7H0XQkR.json",
	Login:                    "https://lottie.host/4b82d733-4050-4d51-aa3f-8df95cbdf356/M6q3s7Z0g2.json",
}

var (
	ErrUnknownAnimation = errors.New("unknown animation")
	ErrNotJSON          = errors.New("animation is not valid JSON")
	ErrTooLarge         = errors.New("animation is too large")
)

type UnexpectedStatusError struct {
	Code int
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

type entry struct {
	body    []byte
	expires time.Time
}

type Client struct {
	client  *resty.Client
	urls    map[string]string
	ttl     time.Duration
	failTTL time.Duration

	mu    sync.Mutex
	cache map[string]entry

	timeNow func() time.Time
}

func NewClient(urls map[string]string, timeout, ttl time.Duration) *Client {
	return &Client{
		client:  resty.New().SetTimeout(timeout),
		urls:    urls,
		ttl:     ttl,
		failTTL: min(DefaultFailTTL, ttl),
		cache:   make(map[string]entry),
		timeNow: time.Now,
	}
}

// Lookup returns the animation JSON for name, from cache when fresh.
// Failed fetches are cached too, for a shorter time, unless ctx itself
// was cancelled.
func (c *Client) Lookup(ctx context.Context, name string) ([]byte, bool) {
	if _, known := c.urls[name]; !known {
		return nil, false
	}

	c.mu.Lock()
	e, ok := c.cache[name]
	c.mu.Unlock()
	if ok && c.timeNow().Before(e.expires) {
		return e.body, e.body != nil
	}

	body, err := c.Fetch(ctx, name)
	if err != nil && ctx.Err() != nil {
		logger.Debugf("Animation %s lookup abandoned: %s", name, err)
		return nil, false
	}
	if err != nil {
		logger.Debugf("Animation %s unavailable: %s", name, err)
		metrics.AnimationFetchFailuresTotal.WithLabelValues(name).Inc()
		c.store(name, nil, c.failTTL)
		return nil, false
	}
	c.store(name, body, c.ttl)
	return body, true
}

func (c *Client) store(name string, body []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[name] = entry{body: body, expires: c.timeNow().Add(ttl)}
}

// Fetch always goes to the network.
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, error) {
	url, ok := c.urls[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAnimation, name)
	}

	response, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	switch response.StatusCode() {
	case http.StatusOK:
		body := response.Body()
		if len(body) > maxAnimationLen {
			return nil, fmt.Errorf("%w", ErrTooLarge)
		}
		if !json.Valid(body) {
			return nil, fmt.Errorf("%w", ErrNotJSON)
		}
		return body, nil
	default:
		return nil, fmt.Errorf("%w", &UnexpectedStatusError{Code: response.StatusCode()})
	}
}

// Names lists every animation the client knows about.
func (c *Client) Names() []string {
	names := make([]string, 0, len(c.urls))
	for name := range c.urls {
		names = append(names, name)
	}
	return names
}
