// ABOUTME: Inbox watcher that ingests transcript files dropped into a directory
// ABOUTME: fsnotify create events feed a bounded pool of handler goroutines
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/harper/tubescribe/internal/logger"
	"github.com/harper/tubescribe/internal/transcript"
)

// Defaults for Options
const (
	DefaultMaxConcurrent = 2
	DefaultSettleDelay   = 500 * time.Millisecond
)

// EventHandler processes one new transcript file
type EventHandler func(ctx context.Context, filePath string) error

// Options tune concurrency and how long to wait for a file to finish writing
type Options struct {
	MaxConcurrent int
	SettleDelay   time.Duration
}

// Watcher monitors one directory
type Watcher struct {
	inputDir    string
	handler     EventHandler
	log         logger.Logger
	watcher     *fsnotify.Watcher
	semaphore   chan struct{}
	settleDelay time.Duration
	wg          sync.WaitGroup
}

// New creates a Watcher on inputDir
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (*Watcher, error) {
	if log == nil {
		log = logger.Nop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(inputDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	settle := opts.SettleDelay
	if settle < 0 {
		settle = 0
	} else if settle == 0 {
		settle = DefaultSettleDelay
	}

	return &Watcher{
		inputDir:    inputDir,
		handler:     handler,
		log:         log,
		watcher:     fw,
		semaphore:   make(chan struct{}, maxConcurrent),
		settleDelay: settle,
	}, nil
}

// Start blocks until ctx is cancelled, then waits for in-flight files
func (w *Watcher) Start(ctx context.Context) error {
	w.log.Info(ctx, "inbox watcher started", "dir", w.inputDir, "max_concurrent", cap(w.semaphore))

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !transcript.IsTranscriptFile(event.Name) {
				w.log.Debug(ctx, "ignoring file", "path", event.Name)
				continue
			}
			w.log.Info(ctx, "transcript detected", "path", event.Name)

			select {
			case w.semaphore <- struct{}{}:
			case <-ctx.Done():
				return w.drain(ctx)
			}

			w.wg.Add(1)
			go func(path string) {
				defer w.wg.Done()
				defer func() { <-w.semaphore }()
				w.process(ctx, path)
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error(ctx, "watcher error", "error", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) process(ctx context.Context, path string) {
	// give the writer time to finish
	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, path); err != nil {
		w.log.Error(ctx, "failed to ingest file", "path", path, "error", err)
		return
	}
	w.log.Info(ctx, "file ingested", "path", path)
}

func (w *Watcher) drain(ctx context.Context) error {
	w.log.Info(ctx, "waiting for in-flight files")
	w.wg.Wait()
	w.log.Info(ctx, "inbox watcher stopped")
	return ctx.Err()
}
