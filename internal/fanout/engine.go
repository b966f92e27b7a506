package fanout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/campuskit/campusboard-backend/pkg/db/models"
	"github.com/campuskit/campusboard-backend/pkg/logger"
	"github.com/campuskit/campusboard-backend/pkg/metrics"
	"github.com/campuskit/campusboard-backend/pkg/webpush"
)

// PushPayload is the JSON document delivered to the browser's service worker.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

type subscriberSource interface {
	ListEnabledUserIDs(ctx context.Context) ([]uuid.UUID, error)
	ListEnabledEndpoints(ctx context.Context) ([]models.PushEndpoint, error)
	DeleteEndpointByURL(ctx context.Context, endpoint string) error
}

type ledgerWriter interface {
	BulkCreate(ctx context.Context, announcementID uuid.UUID, userIDs []uuid.UUID) error
}

// Params bundles the fan-out engine dependencies.
type Params struct {
	Subscribers subscriberSource
	Ledger      ledgerWriter
	Sender      webpush.Sender
	Logger      *logger.Logger
	Metrics     *metrics.PushMetrics
}

// Engine turns a freshly created announcement into ledger entries and push
// deliveries. The ledger write happens inline with the caller; deliveries
// detach so a slow push service never holds up the request.
type Engine struct {
	subscribers subscriberSource
	ledger      ledgerWriter
	sender      webpush.Sender
	logg        *logger.Logger
	metrics     *metrics.PushMetrics
	inflight    sync.WaitGroup
}

// NewEngine validates dependencies and returns a fan-out engine. Sender may
// be nil when push delivery is not configured; the ledger still fans out.
func NewEngine(params Params) (*Engine, error) {
	if params.Subscribers == nil {
		return nil, fmt.Errorf("subscriber source is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger writer is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Engine{
		subscribers: params.Subscribers,
		ledger:      params.Ledger,
		sender:      params.Sender,
		logg:        params.Logger,
		metrics:     params.Metrics,
	}, nil
}

// AnnouncementCreated records one unread ledger entry per opted-in user and
// kicks off push delivery. It never returns an error: fan-out is best effort
// and must not fail announcement creation.
func (e *Engine) AnnouncementCreated(ctx context.Context, announcementID, authorID uuid.UUID, title string) {
	logCtx := e.logg.WithFields(ctx, map[string]any{
		"announcement_id": announcementID.String(),
		"author_id":       authorID.String(),
	})

	recipients, err := e.subscribers.ListEnabledUserIDs(ctx)
	if err != nil {
		e.logg.Error(logCtx, "fan-out could not list subscribers", err)
		return
	}
	e.metrics.ObserveFanout(len(recipients))
	if len(recipients) == 0 {
		e.logg.Info(logCtx, "fan-out found no subscribers")
		return
	}

	if err := e.ledger.BulkCreate(ctx, announcementID, recipients); err != nil {
		e.logg.Error(logCtx, "fan-out ledger insert failed", err)
	}

	if e.sender == nil {
		return
	}

	endpoints, err := e.subscribers.ListEnabledEndpoints(ctx)
	if err != nil {
		e.logg.Error(logCtx, "fan-out could not list push endpoints", err)
		return
	}
	if len(endpoints) == 0 {
		return
	}

	payload, err := json.Marshal(PushPayload{
		Title: "New announcement",
		Body:  title,
		URL:   fmt.Sprintf("/announcement/%s", announcementID),
	})
	if err != nil {
		e.logg.Error(logCtx, "fan-out payload marshal failed", err)
		return
	}

	// Deliveries outlive the request; the adapter's own timeout bounds them.
	detached := e.logg.WithFields(context.WithoutCancel(logCtx), map[string]any{
		"endpoints": len(endpoints),
	})
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		e.dispatch(detached, endpoints, payload)
	}()
}

// Wait blocks until in-flight deliveries finish. Called on shutdown.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

func (e *Engine) dispatch(ctx context.Context, endpoints []models.PushEndpoint, payload []byte) {
	var wg sync.WaitGroup
	errs := make([]error, len(endpoints))

	for i, endpoint := range endpoints {
		wg.Add(1)
		go func(i int, target models.PushEndpoint) {
			defer wg.Done()
			errs[i] = e.deliver(ctx, target, payload)
		}(i, endpoint)
	}
	wg.Wait()

	if combined := multierr.Combine(errs...); combined != nil {
		e.logg.Error(ctx, "push deliveries finished with failures", combined)
		return
	}
	e.logg.Info(ctx, "push deliveries finished")
}

func (e *Engine) deliver(ctx context.Context, target models.PushEndpoint, payload []byte) error {
	start := time.Now()
	err := e.sender.Send(ctx, target.Endpoint, webpush.Keys{
		P256dh: target.P256dh,
		Auth:   target.Auth,
	}, payload)

	switch {
	case err == nil:
		e.metrics.ObserveDelivery(metrics.PushOutcomeDelivered, time.Since(start))
		return nil
	case errors.Is(err, webpush.ErrEndpointGone):
		e.metrics.ObserveDelivery(metrics.PushOutcomeGone, time.Since(start))
		if pruneErr := e.subscribers.DeleteEndpointByURL(ctx, target.Endpoint); pruneErr != nil {
			return fmt.Errorf("pruning gone endpoint: %w", pruneErr)
		}
		return nil
	default:
		e.metrics.ObserveDelivery(metrics.PushOutcomeFailed, time.Since(start))
		return fmt.Errorf("delivering to %s: %w", target.Endpoint, err)
	}
}
