package transport

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ginjaninja78/orae-rims-bridge/internal/converter"
)

func newTestClient(t *testing.T) (*pubsub.Client, *pstest.Server) {
	t.Helper()
	ctx := context.Background()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	client, err := pubsub.NewClient(ctx, "test-project",
		option.WithEndpoint(srv.Addr),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func newTestSubscription(t *testing.T, client *pubsub.Client) (*pubsub.Topic, *pubsub.Subscription) {
	t.Helper()
	ctx := context.Background()

	topic, err := client.CreateTopic(ctx, "orae-events")
	require.NoError(t, err)
	t.Cleanup(topic.Stop)

	sub, err := client.CreateSubscription(ctx, "orae-events-sub", pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: 10 * time.Second,
	})
	require.NoError(t, err)
	return topic, sub
}

func TestPublisher_PublishesAttributes(t *testing.T) {
	ctx := context.Background()
	client, srv := newTestClient(t)

	topic, err := client.CreateTopic(ctx, "rims-records")
	require.NoError(t, err)

	publisher, err := NewPublisher(topic)
	require.NoError(t, err)
	defer publisher.Stop()

	attrs := converter.ResponseAttributes(map[string]string{"eventType": "SALE"}, "m-1",
		time.Date(2025, 3, 14, 17, 6, 0, 0, time.UTC))
	id, err := publisher.Publish(ctx, []byte(`{"RIMSLF":[]}`), attrs)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	messages := srv.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, `{"RIMSLF":[]}`, string(messages[0].Data))
	assert.Equal(t, "m-1", messages[0].Attributes["responseFor"])
	assert.Equal(t, "2025-03-14T17:06:00Z", messages[0].Attributes["transformedAt"])
	assert.Equal(t, "SALE", messages[0].Attributes["eventType"])
}

func TestNewPublisher_RequiresTopic(t *testing.T) {
	_, err := NewPublisher(nil)
	assert.Error(t, err)
}

func TestSubscriber_AcksAndNacks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, srv := newTestClient(t)
	topic, sub := newTestSubscription(t, client)

	subscriber, err := NewSubscriber(sub, SubscriberSettings{
		MaxOutstandingMessages: 5,
		MaxOutstandingBytes:    1024,
		ReconnectDelay:         10 * time.Millisecond,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, sub.ReceiveSettings.MaxOutstandingMessages)
	assert.Equal(t, 1024, sub.ReceiveSettings.MaxOutstandingBytes)

	_, err = topic.Publish(ctx, &pubsub.Message{Data: []byte("event"), Attributes: map[string]string{"k": "v"}}).Get(ctx)
	require.NoError(t, err)

	var (
		mu         sync.Mutex
		deliveries int
		attrs      map[string]string
	)
	done := make(chan struct{})
	runErr := make(chan error, 1)
	go func() {
		runErr <- subscriber.Run(ctx, func(_ context.Context, msg converter.Message) converter.Disposition {
			mu.Lock()
			defer mu.Unlock()
			deliveries++
			attrs = msg.Attributes
			if deliveries == 1 {
				return converter.Retry
			}
			if deliveries == 2 {
				close(done)
			}
			return converter.Published
		})
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("message was not redelivered after nack")
	}

	require.Eventually(t, func() bool {
		msgs := srv.Messages()
		return len(msgs) == 1 && msgs[0].Acks == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-runErr)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, deliveries)
	assert.Equal(t, "v", attrs["k"])
}

func TestSubscriber_IdleRestart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, _ := newTestClient(t)
	_, sub := newTestSubscription(t, client)

	core, logs := observer.New(zapcore.InfoLevel)
	subscriber, err := NewSubscriber(sub, SubscriberSettings{
		IdleTimeout:    40 * time.Millisecond,
		ReconnectDelay: 10 * time.Millisecond,
	}, zap.New(core))
	require.NoError(t, err)

	var handled atomic.Int32
	runErr := make(chan error, 1)
	go func() {
		runErr <- subscriber.Run(ctx, func(context.Context, converter.Message) converter.Disposition {
			handled.Add(1)
			return converter.Published
		})
	}()

	require.Eventually(t, func() bool {
		return logs.FilterMessage("no messages received, restarting subscriber").Len() >= 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-runErr)
	assert.Zero(t, handled.Load())
	assert.Equal(t, 1, logs.FilterMessage("subscriber stopped").Len())
}

func TestSubscriber_RequiresHandler(t *testing.T) {
	client, _ := newTestClient(t)
	_, sub := newTestSubscription(t, client)

	subscriber, err := NewSubscriber(sub, SubscriberSettings{}, nil)
	require.NoError(t, err)
	assert.Error(t, subscriber.Run(context.Background(), nil))
}
