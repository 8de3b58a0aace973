package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/saijs/js/parser"
)

const lsName = "saijs"

type Option func(*Server)

// WithFileKind parses every document as kind instead of inferring it from
// the document's extension.
func WithFileKind(kind parser.FileKind) Option {
	return func(s *Server) {
		s.kind = &kind
	}
}

func WithStrict() Option {
	return func(s *Server) {
		s.strict = true
	}
}

// Server publishes parse diagnostics and document symbols for open
// JavaScript and TypeScript documents. Every change reparses the whole
// document.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	kind    *parser.FileKind
	strict  bool
	log     commonlog.Logger

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

type document struct {
	uri     protocol.DocumentUri
	version protocol.Integer
	tree    *parser.Tree
}

func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		version: version,
		log:     commonlog.GetLogger("saijs.lsp"),
		docs:    map[protocol.DocumentUri]*document{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.log.Infof("open %s", params.TextDocument.URI)
	doc := s.update(params.TextDocument.URI, params.TextDocument.Version, []byte(params.TextDocument.Text))
	s.publish(ctx, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("change to %s: only full document sync is supported, got %T", params.TextDocument.URI, change)
	}
	doc := s.update(params.TextDocument.URI, params.TextDocument.Version, []byte(textChange.Text))
	s.publish(ctx, doc)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	version := protocol.Integer(0)
	if doc := s.document(params.TextDocument.URI); doc != nil {
		version = doc.version
	}
	doc := s.update(params.TextDocument.URI, version, []byte(*params.Text))
	s.publish(ctx, doc)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.log.Infof("close %s", params.TextDocument.URI)
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return documentSymbols(doc.tree), nil
}

func (s *Server) document(uri protocol.DocumentUri) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[uri]
}

// update parses text and stores the result as the current state of uri.
func (s *Server) update(uri protocol.DocumentUri, version protocol.Integer, text []byte) *document {
	path := uriToPath(uri)
	opts := []parser.Option{parser.WithFile(path), parser.WithFileKind(parser.FileKindFor(path))}
	if s.kind != nil {
		opts = append(opts, parser.WithFileKind(*s.kind))
	}
	if s.strict {
		opts = append(opts, parser.WithStrict())
	}

	doc := &document{
		uri:     uri,
		version: version,
		tree:    parser.Parse(text, opts...),
	}
	s.log.Debugf("parsed %s version %d: %d diagnostics", uri, version, len(doc.tree.Diagnostics))

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

func (s *Server) publish(ctx *glsp.Context, doc *document) {
	version := protocol.UInteger(doc.version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     &version,
		Diagnostics: convertDiagnostics(doc.uri, doc.tree),
	})
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return uri
		}
		return filepath.Clean(parsed.Path)
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
