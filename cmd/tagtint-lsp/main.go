package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tagtint/tagtint/internal/palette"
	"github.com/tagtint/tagtint/internal/scanner"
	"github.com/tagtint/tagtint/internal/session"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "tagtint"

// debounceDelay coalesces didChange bursts into one scan of the latest
// snapshot.
const debounceDelay = 75 * time.Millisecond

var version string = "0.1.0"
var handler protocol.Handler

var (
	pal  = palette.Default()
	sess = session.New(pal.Size(), debounceDelay)
)

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			uri := params.TextDocument.URI
			sess.Open(uri, params.TextDocument.Text, kindOf(uri, params.TextDocument.Text))

			return nil
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := sess.Text(params.TextDocument.URI)
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					content = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					content = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			sess.Change(params.TextDocument.URI, content)

			return nil
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			sess.Close(params.TextDocument.URI)

			return nil
		},
		TextDocumentSemanticTokensFull: semanticTokensFull,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     tokenTypes(pal.Size()),
			TokenModifiers: []string{"delimiter", "name"},
		},
		Range: false,
		Full:  true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func semanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := sess.Text(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("document %q not found", params.TextDocument.URI)
	}

	return &protocol.SemanticTokens{
		Data: encodeTokens(content, sess.Spans(params.TextDocument.URI)),
	}, nil
}

// tokenTypes names one semantic token type per palette index; the client
// theme maps each to an actual color.
func tokenTypes(n int) []string {
	types := make([]string, n)
	for i := range types {
		types[i] = fmt.Sprintf("tagColor%d", i)
	}

	return types
}

// kindOf classifies the document behind a file URI; non-file URIs fall
// back to content-based detection.
func kindOf(docURI, content string) scanner.ContentKind {
	name := ""

	if u, err := url.Parse(docURI); err == nil && u.Scheme == "file" {
		name = filepath.Base(u.Path)
	}

	return session.DetectKind(name, []byte(content))
}
