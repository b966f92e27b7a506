package webpush

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	webpushgo "github.com/SherClockHolmes/webpush-go"

	"github.com/campuskit/campusboard-backend/pkg/config"
	pkgerrors "github.com/campuskit/campusboard-backend/pkg/errors"
	"github.com/campuskit/campusboard-backend/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// ErrEndpointGone reports that the push service no longer recognizes the
// endpoint. Callers should drop the stored registration when they see it.
var ErrEndpointGone = errors.New("push endpoint gone")

var (
	errVAPIDKeysRequired  = errors.New("webpush VAPID key pair is required")
	errSubscriberRequired = errors.New("webpush subscriber contact is required")
	errLoggerRequired     = errors.New("webpush logger is required")
)

// Keys carries the per-endpoint encryption material supplied by the browser.
type Keys struct {
	P256dh string
	Auth   string
}

// Sender delivers an encrypted payload to a single push endpoint.
type Sender interface {
	Send(ctx context.Context, endpoint string, keys Keys, payload []byte) error
}

// Client wraps the webpush-go library with VAPID identity, timeouts, and
// error mapping.
type Client struct {
	publicKey  string
	privateKey string
	subscriber string
	ttlSeconds int
	httpClient *http.Client
	logger     *logger.Logger
}

// New validates the VAPID configuration and returns a push client.
func New(ctx context.Context, cfg config.WebPushConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	publicKey := strings.TrimSpace(cfg.VAPIDPublicKey)
	privateKey := strings.TrimSpace(cfg.VAPIDPrivateKey)
	if publicKey == "" || privateKey == "" {
		return nil, errVAPIDKeysRequired
	}
	subscriber := strings.TrimSpace(cfg.Subscriber)
	if subscriber == "" {
		return nil, errSubscriberRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ttl := cfg.TTLSeconds
	if ttl <= 0 {
		ttl = 86400
	}

	c := &Client{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		ttlSeconds: ttl,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logg,
	}

	logg.Info(ctx, "webpush client initialized")
	return c, nil
}

// PublicKey exposes the VAPID public key for browser-side registration.
func (c *Client) PublicKey() string {
	if c == nil {
		return ""
	}
	return c.publicKey
}

// Send delivers payload to endpoint. A 404 or 410 from the push service maps
// to ErrEndpointGone; any other failure maps to a dependency error.
func (c *Client) Send(ctx context.Context, endpoint string, keys Keys, payload []byte) error {
	sub := &webpushgo.Subscription{
		Endpoint: endpoint,
		Keys: webpushgo.Keys{
			P256dh: keys.P256dh,
			Auth:   keys.Auth,
		},
	}

	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, sub, &webpushgo.Options{
		HTTPClient:      c.httpClient,
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.publicKey,
		VAPIDPrivateKey: c.privateKey,
		TTL:             c.ttlSeconds,
	})
	if err != nil {
		c.logger.Error(ctx, "webpush delivery failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending push notification")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrEndpointGone
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		err := fmt.Errorf("push service returned status %d", resp.StatusCode)
		c.logger.Error(ctx, "webpush delivery rejected", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending push notification")
	}
}
