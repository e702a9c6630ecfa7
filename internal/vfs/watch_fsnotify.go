package vfs

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher implements Watcher using fsnotify for OS-native notifications.
type FSNotifyWatcher struct {
	w    *fsnotify.Watcher
	evC  chan Event
	erC  chan error
	done chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewFSWatcher creates a new FSNotifyWatcher.
func NewFSWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FSNotifyWatcher{
		w:    w,
		evC:  make(chan Event, 128),
		erC:  make(chan error, 1),
		done: make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *FSNotifyWatcher) loop() {
	defer close(fw.evC)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			select {
			case fw.evC <- Event{Path: ev.Name, Op: translateOp(ev.Op), Time: time.Now()}:
			case <-fw.done:
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		case <-fw.done:
			return
		}
	}
}

func translateOp(o fsnotify.Op) WatchOp {
	var op WatchOp
	if o.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if o.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if o.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if o.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if o.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

func (fw *FSNotifyWatcher) Events() <-chan Event     { return fw.evC }
func (fw *FSNotifyWatcher) Errors() <-chan error     { return fw.erC }
func (fw *FSNotifyWatcher) Add(name string) error    { return fw.w.Add(name) }
func (fw *FSNotifyWatcher) Remove(name string) error { return fw.w.Remove(name) }

// AddTree watches root and every directory below it. fsnotify itself is
// not recursive.
func (fw *FSNotifyWatcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.w.Add(p)
		}
		return nil
	})
}

// Close stops the watcher. Later calls return the first call's result.
func (fw *FSNotifyWatcher) Close() error {
	fw.closeOnce.Do(func() {
		close(fw.done)
		fw.closeErr = fw.w.Close()
	})
	return fw.closeErr
}
