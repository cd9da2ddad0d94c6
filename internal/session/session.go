// Package session holds the per-document state an editor host keeps
// between scans: buffer snapshots, cached span sets and the debounce
// timers that coalesce rapid re-scan triggers.
package session

import (
	"sync"
	"time"

	"github.com/tliron/commonlog"

	"github.com/tagtint/tagtint/internal/engine"
	"github.com/tagtint/tagtint/internal/scanner"
)

var log = commonlog.GetLogger("tagtint.session")

type document struct {
	text  string
	kind  scanner.ContentKind
	spans []engine.ColoredSpan
	dirty bool
	timer *time.Timer
}

// Session owns every open document. It is constructed on activation and
// torn down with the host; none of its state is ambient.
type Session struct {
	mu sync.Mutex

	docs        map[string]*document
	paletteSize int
	debounce    time.Duration
	scans       int
}

func New(paletteSize int, debounce time.Duration) *Session {
	return &Session{
		docs:        make(map[string]*document),
		paletteSize: paletteSize,
		debounce:    debounce,
	}
}

// Open registers a document and scans it immediately.
func (s *Session) Open(uri, text string, kind scanner.ContentKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := &document{text: text, kind: kind}
	s.docs[uri] = doc
	s.scanLocked(uri, doc)
}

// Change replaces a document's text and schedules a re-scan. Scheduling
// replaces any previously scheduled instance: a burst of edits produces
// one scan, of the latest snapshot.
func (s *Session) Change(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return
	}

	doc.text = text
	doc.dirty = true

	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(s.debounce, func() {
		s.Recompute(uri)
	})
}

// Recompute runs one scan against the document's latest snapshot. It is a
// no-op when the cached spans are already current.
func (s *Session) Recompute(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok || !doc.dirty {
		return
	}

	s.scanLocked(uri, doc)
}

// Spans returns the document's span set, scanning first if a pending
// debounce hasn't fired yet. Stale results are never served.
func (s *Session) Spans(uri string) []engine.ColoredSpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return nil
	}

	if doc.dirty {
		s.scanLocked(uri, doc)
	}

	return doc.spans
}

// Text returns the document's current snapshot.
func (s *Session) Text(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}

	return doc.text, true
}

// Close drops a document and cancels any pending re-scan.
func (s *Session) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return
	}

	if doc.timer != nil {
		doc.timer.Stop()
	}
	delete(s.docs, uri)
}

// ScanCount reports how many scans have run since the session started.
func (s *Session) ScanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scans
}

func (s *Session) scanLocked(uri string, doc *document) {
	doc.spans = engine.Scan(doc.text, doc.kind, s.paletteSize)
	doc.dirty = false
	s.scans++

	log.Debugf("scanned %s (%s): %d spans", uri, doc.kind, len(doc.spans))
}
