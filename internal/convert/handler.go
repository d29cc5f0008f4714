// Package convert serves the document conversion endpoints. Each content tree
// gets one POST route that resolves the requested file, converts it to HTML
// and returns the guarded result.
package convert

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/docx"
	"github.com/srazzak/tutorsite/internal/guard"
	"github.com/srazzak/tutorsite/internal/logger"
)

const (
	defaultMaxBodyBytes     = 64 << 10
	defaultMaxDocumentBytes = 20 << 20
)

// Options configures the conversion handlers.
type Options struct {
	Logger           *logger.Logger
	MaxBodyBytes     int64
	MaxDocumentBytes int64
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultMaxBodyBytes
	}
	if o.MaxDocumentBytes <= 0 {
		o.MaxDocumentBytes = defaultMaxDocumentBytes
	}
	return o
}

// Response is the success body.
type Response struct {
	HTML     string         `json:"html"`
	Messages []docx.Message `json:"messages"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Stage names a step of the request pipeline. It is logged on failure.
type Stage string

const (
	StageReceived   Stage = "received"
	StageValidating Stage = "validating"
	StageResolving  Stage = "resolving"
	StageConverting Stage = "converting"
	StageGuarding   Stage = "guarding"
	StageResponding Stage = "responding"
)

// Handler converts documents from one content tree.
type Handler struct {
	tree *contenttree.Tree
	opts Options
}

// NewHandler creates a Handler for tree.
func NewHandler(tree *contenttree.Tree, opts Options) *Handler {
	return &Handler{tree: tree, opts: opts.withDefaults()}
}

// RegisterRoutes mounts a POST conversion route for every tree in reg.
func RegisterRoutes(r chi.Router, reg *contenttree.Registry, opts Options) {
	for _, t := range reg.Trees() {
		r.Post(t.Route, NewHandler(t, opts).ServeHTTP)
	}
}

// Convert runs the pipeline for an already decoded request and returns the
// guarded result.
func (h *Handler) Convert(req contenttree.DocumentRequest) (*Response, Stage, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, StageValidating, wrap(contenttree.ErrFilenameRequired)
	}

	path, err := h.tree.Resolve(req)
	if err != nil {
		return nil, StageResolving, wrap(err)
	}

	res, err := docx.ConvertFile(path, h.opts.MaxDocumentBytes)
	if err != nil {
		return nil, StageConverting, wrap(err)
	}

	msgs := res.Messages
	if msgs == nil {
		msgs = []docx.Message{}
	}
	return &Response{HTML: guard.Guard(res.HTML), Messages: msgs}, StageGuarding, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.opts.Logger.With(
		"request_id", middleware.GetReqID(r.Context()),
		"tree", string(h.tree.Kind),
	)

	var req contenttree.DocumentRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A body that does not decode carries no filename.
		log.Info("document request rejected", "stage", StageReceived, "status", http.StatusBadRequest, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: MsgFilenameRequired})
		return
	}

	resp, stage, err := h.Convert(req)
	if err != nil {
		status, msg := Classify(err)
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("document conversion failed", "stage", stage, "filename", req.Filename, "error", err)
		default:
			log.Info("document request rejected", "stage", stage, "filename", req.Filename, "status", status, "error", err)
		}
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	if len(resp.Messages) > 0 {
		log.Debug("conversion messages", "stage", StageResponding, "filename", req.Filename, "count", len(resp.Messages))
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
