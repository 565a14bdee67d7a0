package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-temp-monitor/internal/util"
)

// Event reports that the watched file changed on disk.
type Event struct {
	Path      string
	Operation string
	Removed   bool
}

// FileWatcher notifies about changes to a single file. The parent directory
// is watched so that atomic replace-by-rename is seen as well.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan Event
	last    *util.FileInfo

	done      chan struct{}
	closeOnce sync.Once
}

const eventBufferSize = 16

func NewFileWatcher(path string) (*FileWatcher, error) {
	return newFileWatcher(path, eventBufferSize)
}

func newFileWatcher(path string, bufferSize int) (*FileWatcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    path,
		events:  make(chan Event, bufferSize),
		done:    make(chan struct{}),
	}
	fw.last, _ = util.GetFileInfo(path)

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}

			info, err := util.GetFileInfo(fw.path)
			if err != nil {
				info = nil
			}
			// Several fsnotify events usually accompany one rewrite
			if info.Same(fw.last) {
				continue
			}
			fw.last = info

			util.LogDebug("Reading log changed", util.F("path", fw.path), util.F("op", event.Op.String()))
			ev := Event{
				Path:      fw.path,
				Operation: event.Op.String(),
				Removed:   info == nil,
			}
			select {
			case fw.events <- ev:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events delivers change notifications. The channel is closed after Close.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

// Close stops watching. A pending notification nobody receives is dropped.
func (fw *FileWatcher) Close() error {
	fw.closeOnce.Do(func() { close(fw.done) })
	return fw.watcher.Close()
}
