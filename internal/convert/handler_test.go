package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/docx"
	"github.com/srazzak/tutorsite/internal/docx/docxtest"
	"github.com/srazzak/tutorsite/internal/guard"
	"github.com/srazzak/tutorsite/internal/logger"
)

type fixture struct {
	root   string
	router chi.Router
}

func setup(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	p1 := filepath.Join(root, "public", "OP1")
	p2 := filepath.Join(root, "public", "OP2")
	inter := filepath.Join(root, "public", "intermediate")
	for _, d := range []string{
		filepath.Join(p1, "Unit1"),
		filepath.Join(p2, "notes"),
		filepath.Join(p2, "important_topics"),
		filepath.Join(inter, "xi"),
	} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	writeDoc(t, filepath.Join(p1, "Unit1", "Topic1_BinaryRepresentsData.docx"), docxtest.New().
		Heading(1, "Binary Represents Data").
		Paragraph(docxtest.Text("Computers store everything as bits.")))
	writeDoc(t, filepath.Join(p2, "notes", "Unit 7.docx"), docxtest.New().
		Styled("Fancy", docxtest.Text("Algorithms")))
	writeDoc(t, filepath.Join(inter, "xi", "Chapter 1.docx"), docxtest.New().
		Paragraph(docxtest.Bold("Networks")))
	if err := os.WriteFile(filepath.Join(p2, "notes", "broken.docx"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := contenttree.NewRegistry(
		contenttree.OLevelP1(p1),
		contenttree.OLevelP2(p2),
		contenttree.Intermediate(inter),
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, reg, Options{})
	return &fixture{root: root, router: r}
}

func writeDoc(t *testing.T, path string, b *docxtest.Builder) {
	t.Helper()
	if err := b.WriteFile(path); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func (f *fixture) post(t *testing.T, route, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, route, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func TestConvertP1Topic(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/api/convert-document", `{"filename":"Topic1_BinaryRepresentsData.docx","unitPath":"Unit1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !guard.IsGuarded(resp.HTML) {
		t.Error("response html is not guarded")
	}
	if n := strings.Count(resp.HTML, guard.Caption); n != 1 {
		t.Errorf("watermark count = %d, want 1", n)
	}
	h1 := strings.Index(resp.HTML, "<h1>Binary Represents Data</h1>")
	p := strings.Index(resp.HTML, "<p>Computers store everything as bits.</p>")
	if h1 < 0 || p < 0 || h1 > p {
		t.Errorf("heading and paragraph missing or out of order in %q", resp.HTML)
	}
	if resp.Messages == nil || len(resp.Messages) != 0 {
		t.Errorf("messages = %#v, want empty list", resp.Messages)
	}
	if !strings.Contains(w.Body.String(), `"messages":[]`) {
		t.Errorf("messages should encode as an empty array: %s", w.Body.String())
	}
}

func TestConvertP2DefaultsToNotes(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/api/convert-document-p2", `{"filename":"Unit 7.docx"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Severity != docx.SeverityWarning {
		t.Fatalf("messages = %#v, want one warning", resp.Messages)
	}
	if !strings.Contains(w.Body.String(), `"type":"warning"`) {
		t.Errorf("warning not encoded with type field: %s", w.Body.String())
	}
}

func TestConvertIntermediate(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/api/convert-document-intermediate", `{"filename":"Chapter 1.docx","level":"xi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Networks") {
		t.Errorf("body missing content: %s", w.Body.String())
	}
}

func TestConvertErrors(t *testing.T) {
	f := setup(t)

	cases := []struct {
		name   string
		route  string
		body   string
		status int
		msg    string
	}{
		{"missing filename", "/api/convert-document-p2", `{"folder":"notes"}`, 400, MsgFilenameRequired},
		{"blank filename", "/api/convert-document", `{"filename":"   "}`, 400, MsgFilenameRequired},
		{"not json", "/api/convert-document-p2", `filename=x`, 400, MsgFilenameRequired},
		{"empty body", "/api/convert-document-p2", ``, 400, MsgFilenameRequired},
		{"json null", "/api/convert-document-p2", `null`, 400, MsgFilenameRequired},
		{"missing file", "/api/convert-document-p2", `{"filename":"Nope.docx","folder":"notes"}`, 404, MsgNotFound},
		{"unknown folder", "/api/convert-document-p2", `{"filename":"Unit 7.docx","folder":"secret"}`, 404, MsgNotFound},
		{"traversal", "/api/convert-document-p2", `{"filename":"../../../etc/passwd"}`, 404, MsgNotFound},
		{"bad unit", "/api/convert-document", `{"filename":"Topic1_BinaryRepresentsData.docx","unitPath":"../OP2"}`, 404, MsgNotFound},
		{"missing level", "/api/convert-document-intermediate", `{"filename":"Chapter 1.docx"}`, 404, MsgNotFound},
		{"corrupt document", "/api/convert-document-p2", `{"filename":"broken.docx"}`, 500, MsgConversionFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.post(t, tc.route, tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tc.status, w.Body.String())
			}
			if got := decodeError(t, w); got != tc.msg {
				t.Errorf("error = %q, want %q", got, tc.msg)
			}
		})
	}
}

func TestConversionFailureHidesCause(t *testing.T) {
	f := setup(t)
	w := f.post(t, "/api/convert-document-p2", `{"filename":"broken.docx"}`)
	if strings.Contains(w.Body.String(), "zip") {
		t.Errorf("internal cause leaked: %s", w.Body.String())
	}
}

func TestConversionFailureIsLogged(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes", "broken.docx"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := contenttree.NewRegistry(contenttree.OLevelP2(root))
	if err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zap.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	RegisterRoutes(r, reg, Options{Logger: log})

	req := httptest.NewRequest(http.MethodPost, "/api/convert-document-p2", strings.NewReader(`{"filename":"broken.docx"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	entries := logs.FilterLevelExact(zap.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("got %d error entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if got := fmt.Sprint(ctx["stage"]); got != string(StageConverting) {
		t.Errorf("stage = %q, want %q", got, StageConverting)
	}
	if got := fmt.Sprint(ctx["error"]); !strings.Contains(got, "zip") {
		t.Errorf("error = %q, want the zip cause", got)
	}
	if id, _ := ctx["request_id"].(string); id == "" {
		t.Errorf("request_id missing: %v", ctx)
	}
	if got := fmt.Sprint(ctx["filename"]); got != "broken.docx" {
		t.Errorf("filename = %q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	root := t.TempDir()
	reg, err := contenttree.NewRegistry(contenttree.OLevelP2(root))
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	RegisterRoutes(r, reg, Options{MaxBodyBytes: 32})

	body := `{"filename":"` + strings.Repeat("a", 64) + `.docx"}`
	req := httptest.NewRequest(http.MethodPost, "/api/convert-document-p2", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDocumentLimit(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "notes", "big.docx"), docxtest.New().
		Paragraph(docxtest.Text(strings.Repeat("bits ", 2000))))

	reg, err := contenttree.NewRegistry(contenttree.OLevelP2(root))
	if err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	RegisterRoutes(r, reg, Options{MaxDocumentBytes: 128})

	req := httptest.NewRequest(http.MethodPost, "/api/convert-document-p2", strings.NewReader(`{"filename":"big.docx"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/api/convert-document", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{contenttree.ErrFilenameRequired, 400, MsgFilenameRequired},
		{contenttree.ErrNotFound, 404, MsgNotFound},
		{os.ErrNotExist, 404, MsgNotFound},
		{&docx.ConversionError{Op: "open", Err: errors.New("boom")}, 500, MsgConversionFailed},
		{errors.New("disk on fire"), 500, MsgConversionFailed},
		{&ValidationError{Message: MsgFilenameRequired, Err: errors.New("EOF")}, 400, MsgFilenameRequired},
	}
	for _, tc := range cases {
		status, msg := Classify(tc.err)
		if status != tc.status || msg != tc.msg {
			t.Errorf("Classify(%v) = %d %q, want %d %q", tc.err, status, msg, tc.status, tc.msg)
		}
	}
}

func TestWrapTaxonomy(t *testing.T) {
	var ce *ConversionError
	if !errors.As(wrap(&docx.ConversionError{Op: "x", Err: errors.New("y")}), &ce) {
		t.Error("docx error should wrap as ConversionError")
	}
	var ie *InternalError
	if !errors.As(wrap(errors.New("z")), &ie) {
		t.Error("unknown error should wrap as InternalError")
	}
	var ne *NotFoundError
	if !errors.As(wrap(contenttree.ErrNotFound), &ne) {
		t.Error("ErrNotFound should wrap as NotFoundError")
	}
}
