// Copyright (C) The Schemaver Authors 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package schemafile

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/schemaver/schemaver-go/internal"
)

// Holder provides thread-safe access to a scheme definitions file with hot
// reload support. A reload that fails keeps the previous pack.
type Holder struct {
	mu       sync.RWMutex
	pack     *Pack
	path     string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*Pack)
	stopCh   chan struct{}
}

// NewHolder creates a holder and loads the initial definitions.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	pack, err := Load(path)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, internal.WrapError(err, "absolute path")
	}

	return &Holder{
		pack:   pack,
		path:   absPath,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// Get returns the current pack.
func (h *Holder) Get() *Pack {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pack
}

// Reload recompiles the definitions from disk. It returns an error and keeps
// the old pack if loading fails.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading scheme definitions")

	newPack, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("reload failed, keeping old definitions")
		return err
	}

	h.mu.Lock()
	oldPack := h.pack
	h.pack = newPack
	h.mu.Unlock()

	h.logChanges(oldPack, newPack)

	for _, fn := range h.onChange {
		fn(newPack)
	}

	h.logger.Info().Msg("scheme definitions reloaded")
	return nil
}

// OnChange registers a callback invoked after each successful reload.
func (h *Holder) OnChange(fn func(*Pack)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// WatchFile starts watching the definitions file. Changes trigger automatic
// reload.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return internal.WrapError(err, "create watcher")
	}
	h.watcher = watcher

	// Watch the directory; editors that save atomically replace the file.
	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return internal.WrapError(err, "watch directory")
	}

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching scheme definitions for changes")
	return nil
}

// WatchSignals starts listening for SIGHUP to trigger reload.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading scheme definitions")
				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-h.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()
}

// Stop stops watching for file changes and signals.
func (h *Holder) Stop() {
	close(h.stopCh)
	if h.watcher != nil {
		h.watcher.Close()
	}
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("scheme definitions changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(old, new *Pack) {
	seen := make(map[string]bool, len(old.names))
	for _, name := range old.names {
		seen[name] = true
	}
	for _, name := range new.names {
		if !seen[name] {
			h.logger.Info().Str("scheme", name).Msg("scheme added")
		}
		delete(seen, name)
	}
	for name := range seen {
		h.logger.Info().Str("scheme", name).Msg("scheme removed")
	}
}
