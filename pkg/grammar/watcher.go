package grammar

import (
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/nlpstack/ccgparse/pkg/category"
	"github.com/nlpstack/ccgparse/pkg/combinator"
)

// Watcher hot-reloads a grammar pack directory: whenever one of the four
// flat files changes on disk, it reloads and atomically swaps the pointer
// returned by Current, never mutating the previously-returned *Pack (in
// flight batch parses keep reading the old, still-immutable, value until
// their next Current() call). Follows the fsnotify-driven hot-reload
// pattern used elsewhere in this codebase for config/grammar reload.
type Watcher struct {
	dir         string
	name        string
	binaryRules []combinator.Rule
	roots       []category.Category

	current atomic.Pointer[Pack]
	watcher *fsnotify.Watcher
	onError func(error)
}

// NewWatcher performs an initial Load and starts watching dir for changes.
// onError (may be nil) receives reload failures; the previously loaded
// Pack remains current when a reload fails, so a bad edit never takes
// live traffic down.
func NewWatcher(dir, name string, binaryRules []combinator.Rule, roots []category.Category, onError func(error)) (*Watcher, error) {
	pack, err := Load(dir, name, binaryRules, roots)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{dir: dir, name: name, binaryRules: binaryRules, roots: roots, watcher: fsw, onError: onError}
	w.current.Store(pack)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) reload() {
	pack, err := Load(w.dir, w.name, w.binaryRules, w.roots)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.current.Store(pack)
}

// Current returns the most recently loaded, immutable Pack.
func (w *Watcher) Current() *Pack {
	return w.current.Load()
}

// Close stops watching the directory. In-flight holders of a *Pack
// obtained from Current keep using it safely — Packs are never mutated.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
