// =============================================================================
// ORAE Bridge - Converter Module
// =============================================================================
//
// This module contains the per-message pipeline. It takes the raw bytes of one
// retail event through to a published RIMS record set and decides what should
// happen to the inbound message.
//
// CONVERSION PIPELINE:
//   1. Save the raw input (when a store is configured)
//   2. Decode the ORAE retail event
//   3. Validate the event (unless input validation is disabled)
//   4. Map the event to RIMSLF/RIMTNF records
//   5. Validate the record set against the field layout
//   6. Encode the record set as indented JSON
//   7. Save the output (when a store is configured)
//   8. Publish the output (when a publisher is configured)
//
// DISPOSITIONS:
//   Rejected   - the message can never succeed; acknowledge and drop it
//   Converted  - a record set was produced but not published
//   Published  - the record set was published
//   Retry      - an infrastructure step failed; nack for redelivery
//
// CONCURRENCY:
//   A Converter holds no per-message state and is safe for concurrent use.
//
// =============================================================================

package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ginjaninja78/orae-rims-bridge/internal/mapper"
	"github.com/ginjaninja78/orae-rims-bridge/internal/orae"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
)

// Attribute keys added to every published response.
const (
	AttrResponseFor   = "responseFor"
	AttrTransformedAt = "transformedAt"
)

// =============================================================================
// DISPOSITION
// =============================================================================

// Disposition tells the caller what to do with the inbound message.
type Disposition int

const (
	Rejected Disposition = iota
	Converted
	Published
	Retry
)

func (d Disposition) String() string {
	switch d {
	case Rejected:
		return "rejected"
	case Converted:
		return "converted"
	case Published:
		return "published"
	case Retry:
		return "retry"
	default:
		return fmt.Sprintf("disposition(%d)", int(d))
	}
}

// Ack reports whether the inbound message should be acknowledged.
func (d Disposition) Ack() bool {
	return d != Retry
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Message is one inbound retail event.
type Message struct {
	// ID is the transport message id. Empty in file mode.
	ID string

	// Data is the raw event JSON.
	Data []byte

	// Attributes are forwarded onto the published response.
	Attributes map[string]string
}

// Result represents the outcome of processing a single message.
type Result struct {
	// MessageID is the inbound message id.
	MessageID string

	// Disposition decides ack or nack.
	Disposition Disposition

	// RecordSet is the mapped output. Nil when decoding failed.
	RecordSet *rims.RecordSet

	// Output is the encoded record set. Empty unless the output validated.
	Output []byte

	// InputFile and OutputFile are the saved copies, if any.
	InputFile  string
	OutputFile string

	// PublishedID is the id the transport assigned to the response.
	PublishedID string

	// Violations lists input or output validation failures.
	Violations []string

	// Error contains the reason the message was not published.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	OrderRecords   int
	TenderRecords  int
	ProcessingTime time.Duration
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// Logger is an interface for printf style logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Publisher sends an encoded record set downstream and returns the id it was
// assigned.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

// Store keeps copies of inputs and outputs. Both methods return the location
// written.
type Store interface {
	SaveInput(ctx context.Context, messageID string, data []byte) (string, error)
	SaveOutput(ctx context.Context, messageID string, data []byte) (string, error)
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the pipeline for individual messages.
type Converter struct {
	mapper        *mapper.Mapper
	layout        *rims.Layout
	validateInput bool
	publisher     Publisher
	store         Store
	logger        Logger
	now           func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The mapper shares it unless WithMapper is used.
func WithLogger(l Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMapper replaces the mapping engine.
func WithMapper(m *mapper.Mapper) Option {
	return func(c *Converter) { c.mapper = m }
}

// WithLayout replaces the built-in field length layout.
func WithLayout(l *rims.Layout) Option {
	return func(c *Converter) {
		if l != nil {
			c.layout = l
		}
	}
}

// WithInputValidation enables or disables validation of the retail event.
func WithInputValidation(enabled bool) Option {
	return func(c *Converter) { c.validateInput = enabled }
}

// WithPublisher sets where record sets are published.
func WithPublisher(p Publisher) Option {
	return func(c *Converter) { c.publisher = p }
}

// WithStore sets where inputs and outputs are saved.
func WithStore(s Store) Option {
	return func(c *Converter) { c.store = s }
}

// WithClock overrides the clock used for transformedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - opts: Options. With none, the converter validates input, uses the
//     built-in layout, discards logs and neither saves nor publishes.
//
// RETURNS:
//   - A new Converter instance.
func New(opts ...Option) *Converter {
	c := &Converter{
		layout:        rims.DefaultLayout(),
		validateInput: true,
		logger:        nopLogger{},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.mapper == nil {
		c.mapper = mapper.New(mapper.WithLogger(c.logger))
	}
	return c
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Convert runs decode, validate, map, validate output and encode on raw event
// bytes. It never saves or publishes.
//
// RETURNS:
//   - A Result with Disposition Converted and Output set on success, or
//     Rejected with Error and Violations describing why.
func (c *Converter) Convert(data []byte) (result Result) {
	startTime := time.Now()
	result.Disposition = Rejected
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	// =========================================================================
	// STEP 1: DECODE
	// =========================================================================

	event, err := orae.Decode(data)
	if err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 2: VALIDATE INPUT
	// =========================================================================

	if c.validateInput {
		if violations := orae.Validate(event); len(violations) > 0 {
			for _, v := range violations {
				c.logger.Warn("input validation: %s", v)
			}
			result.Violations = violations
			result.Error = fmt.Errorf("input validation failed with %d errors", len(violations))
			return result
		}
	}

	// =========================================================================
	// STEP 3: MAP
	// =========================================================================

	set := c.mapper.Map(event)
	result.RecordSet = set
	result.Stats.OrderRecords = len(set.OrderRecords)
	result.Stats.TenderRecords = len(set.TenderRecords)
	c.logger.Debug("mapped %d order records and %d tender records", result.Stats.OrderRecords, result.Stats.TenderRecords)

	// =========================================================================
	// STEP 4: VALIDATE OUTPUT
	// =========================================================================

	if violations := rims.ValidateOutputWithLayout(set, c.layout); len(violations) > 0 {
		for _, v := range violations {
			c.logger.Warn("output validation: %s", v)
		}
		result.Violations = violations
		result.Error = fmt.Errorf("output validation failed with %d errors", len(violations))
		return result
	}

	// =========================================================================
	// STEP 5: ENCODE
	// =========================================================================

	output, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		result.Error = fmt.Errorf("failed to encode record set: %w", err)
		return result
	}

	result.Output = output
	result.Disposition = Converted
	return result
}

// Handle runs the whole pipeline for one inbound message, including saving
// and publishing.
//
// PARAMETERS:
//   - ctx: Bounds the save and publish calls.
//   - msg: The inbound message.
//
// RETURNS:
//   - A Result. Save and publish failures yield Retry.
func (c *Converter) Handle(ctx context.Context, msg Message) (result Result) {
	startTime := time.Now()
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	var inputFile string
	if c.store != nil {
		path, err := c.store.SaveInput(ctx, msg.ID, msg.Data)
		if err != nil {
			c.logger.Error("failed to save input for message %s: %v", msg.ID, err)
			return Result{MessageID: msg.ID, Disposition: Retry, Error: fmt.Errorf("failed to save input: %w", err)}
		}
		inputFile = path
	}

	result = c.Convert(msg.Data)
	result.MessageID = msg.ID
	result.InputFile = inputFile

	if result.Disposition != Converted {
		c.logger.Warn("message %s rejected: %v", msg.ID, result.Error)
		return result
	}

	if c.store != nil {
		path, err := c.store.SaveOutput(ctx, msg.ID, result.Output)
		if err != nil {
			c.logger.Error("failed to save output for message %s: %v", msg.ID, err)
			result.Disposition = Retry
			result.Error = fmt.Errorf("failed to save output: %w", err)
			return result
		}
		result.OutputFile = path
	}

	if c.publisher == nil {
		return result
	}

	attributes := ResponseAttributes(msg.Attributes, msg.ID, c.now())
	id, err := c.publisher.Publish(ctx, result.Output, attributes)
	if err != nil {
		c.logger.Error("failed to publish record set for message %s: %v", msg.ID, err)
		result.Disposition = Retry
		result.Error = fmt.Errorf("failed to publish record set: %w", err)
		return result
	}

	result.PublishedID = id
	result.Disposition = Published
	c.logger.Info("published record set %s for message %s", id, msg.ID)
	return result
}

// ResponseAttributes copies inbound attributes and adds responseFor and
// transformedAt (RFC 3339, UTC). The inbound map is not modified.
func ResponseAttributes(inbound map[string]string, messageID string, at time.Time) map[string]string {
	attributes := make(map[string]string, len(inbound)+2)
	for k, v := range inbound {
		attributes[k] = v
	}
	attributes[AttrResponseFor] = messageID
	attributes[AttrTransformedAt] = at.UTC().Format(time.RFC3339)
	return attributes
}

// =============================================================================
// DEFAULT LOGGER
// =============================================================================

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
