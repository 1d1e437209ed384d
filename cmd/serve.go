// =============================================================================
// ORAE Bridge - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   orae-bridge serve [--config config.yaml]
//
// Subscribes to subscription_id, converts every retail event and publishes the
// record set to topic_id. Rejected events are acknowledged and dropped;
// infrastructure failures are nacked for redelivery. SIGINT and SIGTERM stop
// the subscriber cleanly.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/orae-rims-bridge/internal/converter"
	"github.com/ginjaninja78/orae-rims-bridge/internal/observability"
	"github.com/ginjaninja78/orae-rims-bridge/internal/transport"
	"github.com/ginjaninja78/orae-rims-bridge/pkg/utils"
)

// archivePrefix is the object prefix used in archive_bucket.
const archivePrefix = "orae-bridge"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Convert retail events from Pub/Sub and publish RIMS record sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if err := cfg.RequirePubSub(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = observability.WithLogger(ctx, logger)

	layout, err := loadLayout(cfg, logger)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: CONNECT
	// =========================================================================

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to create pubsub client: %w", err)
	}
	defer client.Close()

	publisher, err := transport.NewPublisher(client.Topic(cfg.TopicID))
	if err != nil {
		return err
	}
	defer publisher.Stop()

	var archiver utils.Archiver
	if cfg.ArchiveBucket != "" {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		defer storageClient.Close()

		gcs, err := utils.NewGCSArchiver(storageClient, cfg.ArchiveBucket, archivePrefix)
		if err != nil {
			return err
		}
		archiver = gcs
	}

	// =========================================================================
	// STEP 3: RUN
	// =========================================================================

	conv := converter.New(
		converter.WithLogger(observability.NewPrintfAdapter(logger)),
		converter.WithLayout(layout),
		converter.WithInputValidation(!cfg.DisableORAEValidation),
		converter.WithPublisher(publisher),
		converter.WithStore(utils.NewFileManager(cfg.InputSavePath, cfg.OutputSavePath, archiver)),
	)

	subscriber, err := transport.NewSubscriber(client.Subscription(cfg.SubscriptionID), transport.SubscriberSettings{
		MaxOutstandingMessages: cfg.MaxOutstandingMessages,
		MaxOutstandingBytes:    cfg.MaxOutstandingBytes,
		IdleTimeout:            cfg.IdleTimeout(),
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("bridge starting",
		zap.String("project", cfg.ProjectID),
		zap.String("subscription", cfg.SubscriptionID),
		zap.String("topic", cfg.TopicID),
		zap.Bool("inputValidation", !cfg.DisableORAEValidation))

	return subscriber.Run(ctx, func(ctx context.Context, msg converter.Message) converter.Disposition {
		result := conv.Handle(ctx, msg)
		observability.FromContext(ctx).Info("message processed",
			zap.String("messageId", msg.ID),
			zap.Stringer("disposition", result.Disposition),
			zap.Int("orderRecords", result.Stats.OrderRecords),
			zap.Int("tenderRecords", result.Stats.TenderRecords),
			zap.Duration("elapsed", result.Stats.ProcessingTime))
		return result.Disposition
	})
}
