package animation

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Warm refreshes every known animation each interval so page renders hit
// a warm cache. It returns when ctx is cancelled.
func (c *Client) Warm(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.refresh(ctx)

		select {
		case <-ctx.Done():
			logger.Info("Context cancel, stopping animation warmer")
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Client) refresh(ctx context.Context) {
	failed := 0
	for _, name := range c.Names() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		body, err := c.Fetch(ctx, name)
		if err != nil {
			failed++
			logger.Warnf("Could not refresh animation %s: %s", name, err)
			continue
		}
		c.store(name, body, c.ttl)
	}
	logger.Infof("Animations refreshed, %d of %d failed", failed, len(c.urls))
}
