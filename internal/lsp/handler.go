// Package lsp implements the Language Server Protocol surface described in
// SPEC_FULL.md §D: hover on a call instruction's line resolves to the
// callee name set the full points-to analysis computed for that line, and
// missing-debug-line warnings are published as diagnostics. Adapted from
// the teacher's internal/lsp (KansoHandler): same glsp/commonlog wiring,
// same mutex-guarded per-path cache, re-pointed at this analysis's
// ir.Program/report.Reporter instead of Kanso's ast.Contract.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ssaflow/internal/ir"
	"ssaflow/internal/irtext"
	"ssaflow/internal/pointer"
	"ssaflow/internal/report"
)

// Handler implements the LSP server methods for the call-target resolver.
type Handler struct {
	mu     sync.RWMutex
	source map[string]string
	progs  map[string]*ir.Program
	reps   map[string]*report.Reporter
}

// NewHandler returns an empty Handler.
func NewHandler() *Handler {
	return &Handler{
		source: make(map[string]string),
		progs:  make(map[string]*ir.Program),
		reps:   make(map[string]*report.Reporter),
	}
}

// Initialize advertises hover and diagnostics support.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("ssaflow-lsp Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: ptrBool(true),
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("ssaflow-lsp Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("ssaflow-lsp Shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen analyzes the module and publishes its diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)
	return h.analyzeAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentDidChange re-analyzes on every full-document change.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)
	return h.analyzeAndPublish(ctx, params.TextDocument.URI)
}

// TextDocumentDidClose drops the cached analysis for the closed file.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.source, path)
	delete(h.progs, path)
	delete(h.reps, path)

	return nil
}

// TextDocumentHover answers with the resolved call targets recorded at
// the hovered line, if any.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	rep := h.reps[path]
	h.mu.RUnlock()
	if rep == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	targets := rep.Targets(line)
	if len(targets) == 0 {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: "resolved call targets: " + strings.Join(targets, ", "),
		},
	}, nil
}

// analyzeAndPublish re-reads, re-parses, re-analyzes and publishes fresh
// diagnostics for the module at uri.
func (h *Handler) analyzeAndPublish(ctx *glsp.Context, uri protocol.DocumentUri) error {
	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	prog, err := irtext.ParseString(path, string(content))
	if err != nil {
		sendDiagnosticNotification(ctx, uri, parseErrorDiagnostics(err))
		return nil
	}

	rep := pointer.Analyze(prog)

	h.mu.Lock()
	h.source[path] = string(content)
	h.progs[path] = prog
	h.reps[path] = rep
	h.mu.Unlock()

	diagnostics := append(missingDebugLineDiagnostics(prog), unsupportedConstructDiagnostics(prog)...)
	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool { return &b }

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
