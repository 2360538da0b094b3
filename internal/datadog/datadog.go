package datadog

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"
)

// Client emits DogStatsD gauges. A nil or disabled Client drops everything.
type Client struct {
	dogstatsd statsd.ClientInterface
}

// New connects to the agent at addr. When enabled is false no socket is opened.
func New(enabled bool, addr, namespace string, tags []string) *Client {
	if !enabled {
		log.Info().Msg("Datadog metrics disabled")
		return &Client{}
	}

	c, err := statsd.New(addr, statsd.WithNamespace(namespace), statsd.WithTags(tags))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create DogStatsD client")
		return &Client{}
	}

	log.Info().
		Str("addr", addr).
		Str("namespace", namespace).
		Strs("tags", tags).
		Msg("Datadog metrics initialized")

	return &Client{dogstatsd: c}
}

func (c *Client) Gauge(name string, value float64, tags ...string) {
	if c == nil || c.dogstatsd == nil {
		return
	}
	if err := c.dogstatsd.Gauge(name, value, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("Failed to emit gauge metric")
	}
}

func (c *Client) Close() error {
	if c == nil || c.dogstatsd == nil {
		return nil
	}
	return c.dogstatsd.Close()
}
