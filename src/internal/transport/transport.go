// FILE: enlight/src/internal/transport/transport.go
package transport

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"enlight/src/internal/config"
	"enlight/src/internal/core"
	"enlight/src/internal/filter"
	"enlight/src/internal/shipper"
	"enlight/src/internal/tags"

	"github.com/charmbracelet/x/ansi"
	"github.com/lixenwraith/log"
)

// Shipper is the batching backend records are handed to.
type Shipper interface {
	Start(ctx context.Context) error
	Stop()
	Flush(ctx context.Context) error
	Enqueue(record core.LogRecord)
	GetStats() shipper.Stats
}

// Transport turns log calls into enriched records and queues them for shipping.
// It never reports a failure back into the caller's logging path.
type Transport struct {
	config     config.TransportConfig
	shipper    Shipper
	filters    *filter.Chain
	logger     *log.Logger
	server     string
	staticTags []core.Tag
	now        func() time.Time

	// Statistics
	totalLogged   atomic.Uint64
	totalSkipped  atomic.Uint64 // below minimum level
	totalFiltered atomic.Uint64
	totalFailed   atomic.Uint64
}

// New validates opts, fills defaults and builds a transport backed by a batch shipper.
func New(opts config.TransportConfig, filters []config.FilterConfig, logger *log.Logger, options ...shipper.Option) (*Transport, error) {
	if err := config.ValidateTransport(&opts); err != nil {
		return nil, fmt.Errorf("invalid transport options: %w", err)
	}

	s, err := shipper.New(&opts, logger, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shipper: %w", err)
	}

	return newTransport(opts, filters, logger, s)
}

func newTransport(opts config.TransportConfig, filters []config.FilterConfig, logger *log.Logger, s Shipper) (*Transport, error) {
	chain, err := filter.NewChain(filters, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter chain: %w", err)
	}

	server := opts.Server
	if server == "" {
		server = hostname()
	}

	t := &Transport{
		config:     opts,
		shipper:    s,
		filters:    chain,
		logger:     logger,
		server:     server,
		staticTags: opts.StaticTags(),
		now:        time.Now,
	}

	logger.Debug("msg", "Transport created",
		"component", "transport",
		"namespace", opts.Namespace,
		"level", opts.Level,
		"server", server,
		"static_tags", len(t.staticTags),
		"filters", chain.Len())
	return t, nil
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return name
}

// Start begins periodic flushing.
func (t *Transport) Start(ctx context.Context) error {
	return t.shipper.Start(ctx)
}

// Stop flushes pending records and stops the shipper.
func (t *Transport) Stop() {
	t.shipper.Stop()
}

// Flush ships pending records immediately.
func (t *Transport) Flush(ctx context.Context) error {
	return t.shipper.Flush(ctx)
}

// Enabled reports whether records at level pass the configured minimum level.
func (t *Transport) Enabled(level string) bool {
	return core.LevelEnabled(level, t.config.Level)
}

// Log records one log call. done, when non-nil, is invoked exactly once with a nil
// error before Log returns, whatever happens to the record.
func (t *Transport) Log(ctx context.Context, level, msg string, meta core.Value, done func(error)) {
	defer func() {
		if r := recover(); r != nil {
			t.totalFailed.Add(1)
			t.logger.Error("msg", "Failed to build log record",
				"component", "transport",
				"level", level,
				"error", fmt.Sprint(r))
		}
		if done != nil {
			done(nil)
		}
	}()

	level = strings.ToLower(level)
	if !t.Enabled(level) {
		t.totalSkipped.Add(1)
		return
	}

	record := t.buildRecord(ctx, level, msg, meta)

	if !t.filters.Apply(record) {
		t.totalFiltered.Add(1)
		return
	}

	t.shipper.Enqueue(record)
	t.totalLogged.Add(1)
}

// buildRecord resolves every record field before the record is queued.
func (t *Transport) buildRecord(ctx context.Context, level, msg string, meta core.Value) core.LogRecord {
	tagList := make([]core.Tag, 0, len(t.staticTags)+len(meta.Fields())+1)
	tagList = append(tagList, t.staticTags...)
	if meta.IsMap() {
		tagList = tags.AppendFlatten(tagList, meta.Fields(), "")
	}

	requestID, ok := tags.ResolveRequestID(ctx, meta)
	if ok {
		tagList = tags.AppendRequestID(tagList, requestID)
	}

	return core.LogRecord{
		Level:     level,
		Message:   t.message(level, msg, meta),
		Namespace: t.config.Namespace,
		RequestID: requestID,
		Server:    t.server,
		Date:      t.now(),
		Tags:      tagList,
	}
}

func (t *Transport) message(level, msg string, meta core.Value) core.Message {
	if t.config.Decolorize {
		msg = ansi.Strip(msg)
	}
	if level == core.LevelError && meta.IsError() {
		return errorMessage(msg, meta.Err(), t.config.Decolorize)
	}
	return core.TextMessage(msg)
}

// Stats aggregates transport, filter and shipper statistics.
func (t *Transport) Stats() map[string]any {
	return map[string]any{
		"total_logged":   t.totalLogged.Load(),
		"total_skipped":  t.totalSkipped.Load(),
		"total_filtered": t.totalFiltered.Load(),
		"total_failed":   t.totalFailed.Load(),
		"filters":        t.filters.GetStats(),
		"shipper":        t.shipper.GetStats().Map(),
	}
}
