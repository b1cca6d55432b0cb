// FILE: enlight/src/internal/source/stdin.go
package source

import (
	"bufio"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"enlight/src/internal/config"
	"enlight/src/internal/core"

	"github.com/lixenwraith/log"
)

const maxLineSize = 1024 * 1024

// Reads log lines from standard input or any other reader
type StdinSource struct {
	reader      io.Reader
	parser      *lineParser
	subscribers []chan Entry
	mu          sync.RWMutex
	closed      bool
	done        chan struct{}
	stopOnce    sync.Once
	bufferSize  int64
	startTime   time.Time
	logger      *log.Logger

	// Statistics
	totalEntries   atomic.Uint64
	droppedEntries atomic.Uint64
	jsonEntries    atomic.Uint64
	lastEntryTime  atomic.Value // time.Time
}

// Creates a source reading os.Stdin
func NewStdinSource(cfg config.SourceConfig, logger *log.Logger) *StdinSource {
	return NewReaderSource(os.Stdin, cfg, logger)
}

// Creates a source reading r line by line
func NewReaderSource(r io.Reader, cfg config.SourceConfig, logger *log.Logger) *StdinSource {
	bufferSize := cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	defaultLevel := cfg.DefaultLevel
	if defaultLevel == "" {
		defaultLevel = core.LevelInfo
	}

	source := &StdinSource{
		reader: r,
		parser: &lineParser{
			defaultLevel: defaultLevel,
			guessLevel:   cfg.GuessLevel,
		},
		bufferSize:  bufferSize,
		subscribers: make([]chan Entry, 0),
		done:        make(chan struct{}),
		logger:      logger,
		startTime:   time.Now(),
	}
	source.lastEntryTime.Store(time.Time{})
	return source
}

func (s *StdinSource) Subscribe() <-chan Entry {
	ch := make(chan Entry, s.bufferSize)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.mu.Unlock()
	return ch
}

func (s *StdinSource) Start() error {
	go s.readLoop()
	s.logger.Info("msg", "Stdin source started", "component", "stdin_source")
	return nil
}

func (s *StdinSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.closeSubscribers()
		s.logger.Info("msg", "Stdin source stopped", "component", "stdin_source")
	})
}

func (s *StdinSource) GetStats() SourceStats {
	lastEntry, _ := s.lastEntryTime.Load().(time.Time)

	return SourceStats{
		Type:           "stdin",
		TotalEntries:   s.totalEntries.Load(),
		DroppedEntries: s.droppedEntries.Load(),
		JSONEntries:    s.jsonEntries.Load(),
		StartTime:      s.startTime,
		LastEntryTime:  lastEntry,
		Details:        map[string]any{},
	}
}

func (s *StdinSource) readLoop() {
	defer s.closeSubscribers()

	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		select {
		case <-s.done:
			return
		default:
			line := scanner.Text()
			if line == "" {
				continue
			}

			level, msg, meta, isJSON := s.parser.parse(line)
			if isJSON {
				s.jsonEntries.Add(1)
			}

			s.publish(Entry{
				Time:    time.Now(),
				Level:   level,
				Message: msg,
				Meta:    meta,
				RawSize: int64(len(line)),
			})
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error("msg", "Scanner error reading stdin",
			"component", "stdin_source",
			"error", err)
		return
	}
	s.logger.Debug("msg", "Stdin source reached end of input", "component", "stdin_source")
}

// Hands the entry to every subscriber, waiting while a subscriber buffer is full.
// Entries are dropped only once the source is stopping.
func (s *StdinSource) publish(entry Entry) {
	s.totalEntries.Add(1)
	s.lastEntryTime.Store(entry.Time)

	// Read lock held across the send; closeSubscribers takes the write lock after done is closed
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.droppedEntries.Add(1)
		return
	}

	for _, ch := range s.subscribers {
		select {
		case ch <- entry:
		case <-s.done:
			s.droppedEntries.Add(1)
			s.logger.Debug("msg", "Dropped log entry - source stopping",
				"component", "stdin_source")
		}
	}
}

func (s *StdinSource) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.subscribers {
		close(ch)
	}
}
