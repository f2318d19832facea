package filewatch

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// OnModify invokes onModify each time one of target files is modified
// (= written, created, removed, or renamed).
//
// # Args
//
// - ctx: watching stops when this context is done.
//
// - onModify: called with the modified file path. It is called from the
// watching goroutine; keep it short or dispatch.
//
// - targetFilePath ...string: file pathes to be watched.
//
// # Returns
//
// - func(): stop watching.
//
// - error: error caused when it fails to start watching files.
func OnModify(ctx context.Context, onModify func(path string), targetFilePath ...string) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cctx, cancel := context.WithCancel(ctx)

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				onModify(event.Name)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	for _, f := range targetFilePath {
		if err := w.Add(f); err != nil {
			cancel()
			return nil, err
		}
	}
	return cancel, nil
}
