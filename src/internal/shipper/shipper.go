// FILE: enlight/src/internal/shipper/shipper.go
package shipper

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"enlight/src/internal/config"
	"enlight/src/internal/core"
	"enlight/src/internal/format"
	"enlight/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// State of the shipper run loop
const (
	StateIdle     = "idle"
	StateFlushing = "flushing"
	StateStopped  = "stopped"
)

var okPrefix = []byte("OK")

// Shipper buffers log records and posts them to the ingest endpoint in batches.
type Shipper struct {
	// Configuration
	config   *config.TransportConfig
	endpoint string
	interval time.Duration
	timeout  time.Duration

	// Network
	client *fasthttp.Client

	// Application
	queue   *queue
	encoder format.Encoder
	logger  *log.Logger

	// Runtime
	full      chan struct{}
	flushMu   sync.Mutex
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	startTime time.Time
	running   atomic.Bool
	flushing  atomic.Bool
	stopped   atomic.Bool

	// Statistics
	totalEnqueued atomic.Uint64
	totalShipped  atomic.Uint64
	totalDropped  atomic.Uint64
	totalBatches  atomic.Uint64
	failedBatches atomic.Uint64
	lastEnqueued  atomic.Value // time.Time
	lastBatchSent atomic.Value // time.Time
}

// Option customizes a Shipper.
type Option func(*Shipper)

// WithDial replaces the dialer of the HTTP client.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(s *Shipper) {
		s.client.Dial = dial
	}
}

// WithEncoder replaces the default JSON encoder.
func WithEncoder(encoder format.Encoder) Option {
	return func(s *Shipper) {
		s.encoder = encoder
	}
}

// New creates a shipper for validated transport options.
func New(opts *config.TransportConfig, logger *log.Logger, options ...Option) (*Shipper, error) {
	if opts == nil {
		return nil, fmt.Errorf("shipper options cannot be nil")
	}
	endpoint := opts.Endpoint()
	if endpoint == "" {
		return nil, fmt.Errorf("shipper requires an endpoint")
	}

	interval := time.Duration(opts.FlushIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = core.DefaultFlushIntervalMS * time.Millisecond
	}

	s := &Shipper{
		config:    opts,
		endpoint:  endpoint,
		interval:  interval,
		timeout:   time.Duration(opts.TimeoutMS) * time.Millisecond,
		queue:     &queue{},
		encoder:   format.NewJSONEncoder(opts.Compress, logger),
		logger:    logger,
		full:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		startTime: time.Now(),
	}
	s.lastEnqueued.Store(time.Time{})
	s.lastBatchSent.Store(time.Time{})

	s.client = &fasthttp.Client{
		MaxConnsPerHost:               4,
		MaxIdleConnDuration:           10 * time.Second,
		ReadTimeout:                   s.timeout,
		WriteTimeout:                  s.timeout,
		DisableHeaderNamesNormalizing: true,
	}

	if strings.HasPrefix(endpoint, "https://") && opts.InsecureSkipVerify {
		s.client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
		logger.Warn("msg", "TLS certificate verification disabled",
			"component", "shipper",
			"endpoint", endpoint)
	}

	for _, option := range options {
		option(s)
	}

	return s, nil
}

// Start launches the flush timer. Records enqueued before Start are kept.
func (s *Shipper) Start(ctx context.Context) error {
	if s.stopped.Load() {
		return fmt.Errorf("shipper already stopped")
	}
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("shipper already started")
	}

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("msg", "Shipper started",
		"component", "shipper",
		"endpoint", s.endpoint,
		"flush_interval_ms", s.interval.Milliseconds(),
		"max_batch_size", s.config.MaxBatchSize,
		"encoder", s.encoder.Name())
	return nil
}

// Stop cancels the flush timer and ships whatever is still pending.
func (s *Shipper) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("msg", "Stopping shipper", "component", "shipper")
		s.stopped.Store(true)
		close(s.done)
		s.wg.Wait()

		// Final drain, no further pushes are accepted past this point
		s.flushMu.Lock()
		if batch := s.queue.close(); len(batch) > 0 {
			s.send(batch)
		}
		s.flushMu.Unlock()

		s.running.Store(false)
		s.logger.Info("msg", "Shipper stopped",
			"component", "shipper",
			"total_enqueued", s.totalEnqueued.Load(),
			"total_batches", s.totalBatches.Load(),
			"failed_batches", s.failedBatches.Load())
	})
}

// Enqueue appends a fully built record to the pending batch. It never blocks on the network.
func (s *Shipper) Enqueue(record core.LogRecord) {
	n, ok := s.queue.push(record)
	if !ok {
		s.totalDropped.Add(1)
		s.logger.Warn("msg", "Record dropped, shipper stopped",
			"component", "shipper",
			"level", record.Level)
		return
	}

	s.totalEnqueued.Add(1)
	s.lastEnqueued.Store(time.Now())

	if s.config.MaxBatchSize > 0 && int64(n) >= s.config.MaxBatchSize {
		select {
		case s.full <- struct{}{}:
		default:
		}
	}
}

// Flush ships the pending batch now and waits for the request to finish or ctx to end.
func (s *Shipper) Flush(ctx context.Context) error {
	if s.stopped.Load() {
		return fmt.Errorf("shipper stopped")
	}

	finished := make(chan struct{})
	go func() {
		s.flush()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of records waiting for the next flush.
func (s *Shipper) Pending() int {
	return s.queue.len()
}

// State returns the run loop state.
func (s *Shipper) State() string {
	switch {
	case s.flushing.Load():
		return StateFlushing
	case s.stopped.Load():
		return StateStopped
	default:
		return StateIdle
	}
}

// run is the flush timer. Flushes happen one at a time on this goroutine.
func (s *Shipper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush()
		case <-s.full:
			s.flush()
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// flush drains the queue and ships it. flushMu keeps at most one request in flight.
func (s *Shipper) flush() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	batch := s.queue.drain()
	if len(batch) == 0 {
		return
	}
	s.send(batch)
}

// send posts one batch. Failures are logged and the batch is discarded.
func (s *Shipper) send(batch []core.LogRecord) {
	s.flushing.Store(true)
	defer s.flushing.Store(false)

	s.totalBatches.Add(1)
	s.lastBatchSent.Store(time.Now())

	payload, err := s.encoder.Encode(batch)
	if err != nil {
		s.logger.Error("msg", "Failed to encode batch",
			"component", "shipper",
			"error", err,
			"batch_size", len(batch))
		s.failedBatches.Add(1)
		return
	}
	if payload.Records == 0 {
		s.failedBatches.Add(1)
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(payload.ContentType)
	if payload.ContentEncoding != "" {
		req.Header.Set("Content-Encoding", payload.ContentEncoding)
	}
	req.Header.Set(core.APIKeyHeader, s.config.APIKey)
	req.Header.Set("User-Agent", version.UserAgent())
	req.SetBody(payload.Body)

	if s.timeout > 0 {
		err = s.client.DoTimeout(req, resp, s.timeout)
	} else {
		err = s.client.Do(req, resp)
	}

	if err != nil {
		s.logger.Error("msg", "Failed to ship batch",
			"component", "shipper",
			"endpoint", s.endpoint,
			"batch_size", payload.Records,
			"error", err)
		s.failedBatches.Add(1)
		return
	}

	body := resp.Body()
	if !bytes.HasPrefix(body, okPrefix) {
		s.logger.Error("msg", "Batch rejected by ingest service",
			"component", "shipper",
			"status_code", resp.StatusCode(),
			"response", string(body),
			"batch_size", payload.Records)
		s.failedBatches.Add(1)
		return
	}

	s.totalShipped.Add(uint64(payload.Records))
	s.logger.Debug("msg", "Batch shipped",
		"component", "shipper",
		"batch_size", payload.Records,
		"status_code", resp.StatusCode())
}
