package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/blockgen/compiler/load"
)

// debounce is how long a document must stay unchanged before it is
// regenerated. Editors often write a file in several steps.
const debounce = 100 * time.Millisecond

// watchDocuments calls regenerate for every workspace document under paths
// that is written or created, until ctx is done. Failures are logged and
// watching continues.
func watchDocuments(ctx context.Context, logger *slog.Logger, paths []string, regenerate func(path string) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Documents given as files are watched individually; directories
	// watch every document directly inside them.
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		path = filepath.Clean(path)
		dir := path
		if info.IsDir() {
			dirs[path] = true
		} else {
			dir = filepath.Dir(path)
			files[path] = true
		}
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	watched := func(name string) bool {
		name = filepath.Clean(name)
		return load.IsDocument(name) && (files[name] || dirs[filepath.Dir(name)])
	}

	logger.Info("watching for changes", "paths", paths)
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !watched(ev.Name) {
				continue
			}
			logger.Debug("document changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch failed", "error", err)
		case <-timer.C:
			for path := range pending {
				if err := regenerate(path); err != nil {
					logger.Error("regeneration failed", "path", path, "error", err)
				}
			}
			clear(pending)
		}
	}
}
