// =============================================================================
// ORAE Bridge - Pub/Sub Subscriber
// =============================================================================
//
// Receives retail events, hands each to a Handler and acknowledges or
// nacks it according to the returned disposition. Receive errors and idle
// periods restart the underlying stream after ReconnectDelay.
//
// =============================================================================

package transport

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"

	"github.com/ginjaninja78/orae-rims-bridge/internal/converter"
)

// DefaultReconnectDelay is the pause before a receive stream is restarted.
const DefaultReconnectDelay = 5 * time.Second

var errIdle = errors.New("subscriber idle")

// Handler processes one message. Any disposition other than Retry acks it.
type Handler func(ctx context.Context, msg converter.Message) converter.Disposition

// SubscriberSettings tunes flow control and restarts.
type SubscriberSettings struct {
	MaxOutstandingMessages int
	MaxOutstandingBytes    int

	// IdleTimeout restarts the stream when no message arrived for this
	// long. Zero disables the watchdog.
	IdleTimeout time.Duration

	// ReconnectDelay defaults to DefaultReconnectDelay.
	ReconnectDelay time.Duration
}

// Subscriber drives a Pub/Sub subscription.
type Subscriber struct {
	sub      *pubsub.Subscription
	settings SubscriberSettings
	logger   *zap.Logger

	lastActivity atomic.Int64
}

// NewSubscriber wraps sub. A nil logger discards logs.
func NewSubscriber(sub *pubsub.Subscription, settings SubscriberSettings, logger *zap.Logger) (*Subscriber, error) {
	if sub == nil {
		return nil, errors.New("pubsub subscriber: subscription is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.ReconnectDelay <= 0 {
		settings.ReconnectDelay = DefaultReconnectDelay
	}
	if settings.MaxOutstandingMessages > 0 {
		sub.ReceiveSettings.MaxOutstandingMessages = settings.MaxOutstandingMessages
	}
	if settings.MaxOutstandingBytes > 0 {
		sub.ReceiveSettings.MaxOutstandingBytes = settings.MaxOutstandingBytes
	}
	return &Subscriber{sub: sub, settings: settings, logger: logger}, nil
}

// Run receives until ctx is cancelled. It returns nil on cancellation; the
// stream itself is restarted on every error.
func (s *Subscriber) Run(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("pubsub subscriber: handler is required")
	}

	s.logger.Info("subscriber started", zap.String("subscription", s.sub.ID()))
	for {
		err := s.receive(ctx, handler)
		if ctx.Err() != nil {
			s.logger.Info("subscriber stopped", zap.String("subscription", s.sub.ID()))
			return nil
		}

		switch {
		case errors.Is(err, errIdle):
			s.logger.Info("no messages received, restarting subscriber",
				zap.Duration("idleTimeout", s.settings.IdleTimeout))
		case err != nil:
			s.logger.Error("receive failed, reconnecting", zap.Error(err),
				zap.Duration("delay", s.settings.ReconnectDelay))
		default:
			s.logger.Warn("receive returned without error, reconnecting")
		}

		select {
		case <-ctx.Done():
			s.logger.Info("subscriber stopped", zap.String("subscription", s.sub.ID()))
			return nil
		case <-time.After(s.settings.ReconnectDelay):
		}
	}
}

func (s *Subscriber) receive(ctx context.Context, handler Handler) error {
	rctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	s.touch()
	if s.settings.IdleTimeout > 0 {
		go s.watch(rctx, cancel)
	}

	err := s.sub.Receive(rctx, func(mctx context.Context, m *pubsub.Message) {
		s.touch()
		logger := s.logger.With(zap.String("messageId", m.ID))

		disposition := handler(mctx, converter.Message{
			ID:         m.ID,
			Data:       m.Data,
			Attributes: m.Attributes,
		})

		logger.Debug("message handled", zap.Stringer("disposition", disposition))
		if disposition.Ack() {
			m.Ack()
		} else {
			m.Nack()
		}
		s.touch()
	})

	if errors.Is(context.Cause(rctx), errIdle) {
		return errIdle
	}
	return err
}

// watch cancels the receive context with errIdle once no message has been
// seen for IdleTimeout.
func (s *Subscriber) watch(ctx context.Context, cancel context.CancelCauseFunc) {
	interval := s.settings.IdleTimeout / 4
	if interval <= 0 {
		interval = s.settings.IdleTimeout
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			last := time.Unix(0, s.lastActivity.Load())
			if now.Sub(last) >= s.settings.IdleTimeout {
				cancel(errIdle)
				return
			}
		}
	}
}

func (s *Subscriber) touch() {
	s.lastActivity.Store(time.Now().UnixNano())
}
