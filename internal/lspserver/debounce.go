package lspserver

import (
	"sync"
	"time"
)

// debounceDelay is the quiet period after an edit before the document is
// re-linted, so a fast typist doesn't trigger a lint pass per keystroke.
const debounceDelay = 250 * time.Millisecond

// debouncer runs a callback per URI after debounceDelay has elapsed since
// the most recent schedule call for that URI. Each call bumps a per-URI
// token; a fired timer only runs its callback if its token is still current,
// so a superseded edit's lint result can never run after a newer one.
type debouncer struct {
	mu     sync.Mutex
	tokens map[string]uint64
	timers map[string]*time.Timer
}

func newDebouncer() *debouncer {
	return &debouncer{
		tokens: make(map[string]uint64),
		timers: make(map[string]*time.Timer),
	}
}

// schedule (re)starts uri's debounce timer, cancelling any pending one.
func (d *debouncer) schedule(uri string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tokens[uri]++
	token := d.tokens[uri]

	if t, ok := d.timers[uri]; ok {
		t.Stop()
	}

	d.timers[uri] = time.AfterFunc(debounceDelay, func() {
		d.mu.Lock()
		current := d.tokens[uri] == token
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// cancel stops any pending timer for uri without running its callback, used
// before an immediate lint (didOpen/didSave) so a stale debounce never
// overwrites a fresher result.
func (d *debouncer) cancel(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tokens[uri]++
	if t, ok := d.timers[uri]; ok {
		t.Stop()
		delete(d.timers, uri)
	}
}

// forget drops all debounce state for uri, called on didClose.
func (d *debouncer) forget(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[uri]; ok {
		t.Stop()
		delete(d.timers, uri)
	}
	delete(d.tokens, uri)
}
