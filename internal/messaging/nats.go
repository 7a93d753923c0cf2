// Package messaging wraps the NATS connection used to fan engagement
// notifications out to interested consumers. Subjects are per-recipient so a
// consumer can subscribe to one user's stream.
package messaging

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectLikeNotify  = "notify.like"  // + .<external_id>
	SubjectMatchNotify = "notify.match" // + .<external_id>
)

type NATSClient struct {
	conn   *nats.Conn
	logger *log.Logger
}

type NATSConfig struct {
	URL           string
	Name          string
	ReconnectWait time.Duration
	MaxReconnects int
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		Name:          "geostud-api",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1,
	}
}

func NewNATSClient(cfg NATSConfig, logger *log.Logger) (*NATSClient, error) {
	if logger == nil {
		logger = log.Default()
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Printf("[NATS] disconnected: %v", err)
			} else {
				logger.Printf("[NATS] disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Printf("[NATS] reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Printf("[NATS] connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	logger.Printf("[NATS] connected to %s", nc.ConnectedUrl())

	return &NATSClient{conn: nc, logger: logger}, nil
}

func (c *NATSClient) Publish(subject string, data []byte) error {
	return c.conn.Publish(subject, data)
}

// PublishLikeNotify publishes a like notification on the recipient's subject.
func (c *NATSClient) PublishLikeNotify(recipientExternalID int64, data []byte) error {
	return c.Publish(SubjectLikeNotify+"."+strconv.FormatInt(recipientExternalID, 10), data)
}

// PublishMatchNotify publishes a match notification on the recipient's subject.
func (c *NATSClient) PublishMatchNotify(recipientExternalID int64, data []byte) error {
	return c.Publish(SubjectMatchNotify+"."+strconv.FormatInt(recipientExternalID, 10), data)
}

// Close drains the connection so buffered publishes flush before shutdown.
func (c *NATSClient) Close() {
	if c == nil || c.conn == nil {
		return
	}

	if err := c.conn.Drain(); err != nil {
		c.logger.Printf("[NATS] connection drain: %v", err)
	}
	c.logger.Printf("[NATS] client closed")
}
