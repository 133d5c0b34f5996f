package render

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// watcher invalidates the template cache when the watched directory
// changes. Rapid event bursts (editors writing temp files, bulk copies) are
// debounced so the cache is dropped once, not per event.
type watcher struct {
	fsw *fsnotify.Watcher
	wg  sync.WaitGroup
}

func newWatcher(dir string, invalidate func()) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &watcher{fsw: fsw}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		var debounceTimer *time.Timer
		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				// Ignore chmod events
				if event.Op&fsnotify.Chmod != 0 {
					continue
				}

				if debounceTimer != nil {
					debounceTimer.Reset(watchDebounce)
				} else {
					debounceTimer = time.AfterFunc(watchDebounce, invalidate)
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Printf("Template watcher error: %v", err)
			}
		}
	}()

	return w, nil
}

func (w *watcher) stop() error {
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
