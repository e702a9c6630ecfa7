package vfs

import (
	"context"
	"sync"
	"time"
)

// SimpleWatcher is a polling-based watcher portable across OSes and usable
// with any FileSystem, MemFS included.
type SimpleWatcher struct {
	fs   FileSystem
	evCh chan Event
	erCh chan error

	mu    sync.Mutex
	paths map[string]snapshot

	stop      context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// snapshot is what a poll remembers about a path.
type snapshot struct {
	exists bool
	size   int64
	mod    time.Time
}

func NewSimpleWatcher(fs FileSystem) *SimpleWatcher {
	return &SimpleWatcher{
		fs:    fs,
		evCh:  make(chan Event, 64),
		erCh:  make(chan error, 1),
		paths: make(map[string]snapshot),
	}
}

func (w *SimpleWatcher) Events() <-chan Event { return w.evCh }
func (w *SimpleWatcher) Errors() <-chan error { return w.erCh }

// Add starts tracking name. Its current state is the baseline, so only
// later changes produce events.
func (w *SimpleWatcher) Add(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths[name] = w.look(name)
	return nil
}

func (w *SimpleWatcher) Remove(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.paths, name)
	return nil
}

// Close stops polling and closes the event channel. Later calls do nothing.
func (w *SimpleWatcher) Close() error {
	w.closeOnce.Do(func() {
		if w.stop != nil {
			w.stop()
		}
		w.wg.Wait()
		close(w.evCh)
	})
	return nil
}

// StartPolling begins a timestamp-based change poll of the added paths at
// the given interval.
func (w *SimpleWatcher) StartPolling(ctx context.Context, interval time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	w.stop = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, ev := range w.poll() {
					select {
					case w.evCh <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return nil
}

// poll compares every tracked path with its last snapshot.
func (w *SimpleWatcher) poll() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()

	var events []Event
	now := time.Now()
	for name, prev := range w.paths {
		cur := w.look(name)
		var op WatchOp
		switch {
		case !prev.exists && cur.exists:
			op = OpCreate
		case prev.exists && !cur.exists:
			op = OpRemove
		case cur.exists && (cur.size != prev.size || !cur.mod.Equal(prev.mod)):
			op = OpWrite
		}
		w.paths[name] = cur
		if op != 0 {
			events = append(events, Event{Path: name, Op: op, Time: now})
		}
	}
	return events
}

func (w *SimpleWatcher) look(name string) snapshot {
	info, err := w.fs.Stat(name)
	if err != nil {
		return snapshot{}
	}
	return snapshot{exists: true, size: info.Size(), mod: info.ModTime()}
}
