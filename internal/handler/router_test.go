package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/joestump/workflows/internal/auth"
	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/testutil"
	"github.com/joestump/workflows/internal/workflow"
)

const (
	shellSummary  = "Open an online shop for handmade goods."
	shellWorkflow = "1. **Research**\n   - **Action**: Study [Etsy](https://www.etsy.com/) best sellers\n<script>alert(1)</script>\n"
)

type shellTestEnv struct {
	srv    *httptest.Server
	client *http.Client
	fake   *testutil.FakeCompleter
}

// newShellTestEnv starts the full router over a scripted completion client
// and returns a cookie-keeping client for it.
func newShellTestEnv(t *testing.T, fake *testutil.FakeCompleter) *shellTestEnv {
	t.Helper()
	if fake == nil {
		fake = &testutil.FakeCompleter{Summary: shellSummary, Workflow: shellWorkflow}
	}
	renderer, err := render.New(render.Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	router := NewRouter(Deps{
		SessionManager: NewSessionManager(time.Hour, false),
		Pipeline:       workflow.NewPipeline(fake, nil, workflow.Options{}),
		Renderer:       renderer,
		BearerAuth:     auth.NewBearerTokenMiddleware(nil),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &shellTestEnv{srv: srv, client: &http.Client{Jar: jar}, fake: fake}
}

func (e *shellTestEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (e *shellTestEnv) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestIndex_RendersForm(t *testing.T) {
	env := newShellTestEnv(t, nil)
	resp, body := env.get(t, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	for _, want := range []string{
		`name="goal"`,
		`<option value="Generalist" selected>Generalist</option>`,
		`<option value="Content Creator">Content Creator</option>`,
		`name="region"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if strings.Contains(body, `href="/download"`) {
		t.Error("download offered before anything was generated")
	}
}

func TestGenerate_ThenDownload(t *testing.T) {
	env := newShellTestEnv(t, nil)

	resp, body := env.post(t, "/generate", url.Values{
		"goal":   {"Launch an Etsy store"},
		"role":   {"Entrepreneur"},
		"region": {"Berlin, Germany"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	for _, want := range []string{
		"Workflow generated.",
		"Launch an Etsy store</textarea>",
		`<option value="Entrepreneur" selected>`,
		`value="Berlin, Germany"`,
		shellSummary,
		"<strong>Action</strong>",
		`<a href="https://www.etsy.com/">Etsy</a>`,
		`href="/download"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("raw HTML from the model reached the page")
	}

	// The flash is shown once.
	_, body = env.get(t, "/")
	if strings.Contains(body, "Workflow generated.") {
		t.Error("flash shown twice")
	}

	resp, pdf := env.get(t, "/download")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="workflow_launch_an_etsy_store.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(pdf, "%PDF-") {
		t.Error("download is not a PDF")
	}
	if n := env.fake.CallCount(); n != 2 {
		t.Errorf("completion calls = %d, want 2", n)
	}
}

func TestDownload_NothingGenerated(t *testing.T) {
	env := newShellTestEnv(t, nil)
	resp, _ := env.get(t, "/download")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		fake  *testutil.FakeCompleter
		form  url.Values
		flash string
		calls int
	}{
		{
			name:  "blank goal",
			form:  url.Values{"goal": {"  "}},
			flash: "Please describe your goal first.",
		},
		{
			name:  "unknown role",
			form:  url.Values{"goal": {"Launch an Etsy store"}, "role": {"Astronaut"}},
			flash: "is not a known role.",
		},
		{
			name:  "completion failure",
			fake:  &testutil.FakeCompleter{Summary: shellSummary, WorkflowErr: errors.New("boom")},
			form:  url.Values{"goal": {"Launch an Etsy store"}},
			flash: "The planner could not produce a workflow.",
			calls: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newShellTestEnv(t, tt.fake)
			_, body := env.post(t, "/generate", tt.form)
			if !strings.Contains(body, tt.flash) {
				t.Errorf("page missing flash %q", tt.flash)
			}
			if goal := tt.form.Get("goal"); strings.TrimSpace(goal) != "" && !strings.Contains(body, goal+"</textarea>") {
				t.Error("inputs were not kept after a failure")
			}
			if n := env.fake.CallCount(); n != tt.calls {
				t.Errorf("completion calls = %d, want %d", n, tt.calls)
			}
			if resp, _ := env.get(t, "/download"); resp.StatusCode != http.StatusNotFound {
				t.Errorf("download status = %d, want %d", resp.StatusCode, http.StatusNotFound)
			}
		})
	}
}

func TestReset_ClearsSession(t *testing.T) {
	env := newShellTestEnv(t, nil)
	env.post(t, "/generate", url.Values{"goal": {"Launch an Etsy store"}})

	_, body := env.post(t, "/reset", nil)
	if strings.Contains(body, "Launch an Etsy store") {
		t.Error("goal still shown after reset")
	}
	if resp, _ := env.get(t, "/download"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("download status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestTheme_Toggle(t *testing.T) {
	env := newShellTestEnv(t, nil)
	_, body := env.post(t, "/theme", url.Values{"theme": {"dark"}})
	if !strings.Contains(body, `data-theme="dark"`) {
		t.Error("dark theme not applied")
	}

	resp, _ := env.post(t, "/theme", url.Values{"theme": {"neon"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestOperationalRoutes(t *testing.T) {
	env := newShellTestEnv(t, nil)
	tests := []struct {
		path string
		want string
	}{
		{path: "/healthz", want: "ok"},
		{path: "/metrics", want: "go_goroutines"},
		{path: "/static/css/app.css", want: "--accent"},
		{path: "/api/v1/roles", want: `"roles"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := env.get(t, tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
		})
	}

	// The API never issues a browser session.
	resp, _ := env.get(t, "/api/v1/roles")
	if len(resp.Cookies()) != 0 {
		t.Errorf("API response set cookies: %v", resp.Cookies())
	}
}

func TestFailureFlash(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: workflow.ErrEmptyGoal, want: "warning"},
		{err: &workflow.CompletionError{Stage: workflow.StageSummary, Err: errors.New("x")}, want: "error"},
		{err: &render.RenderError{Op: "encode", Err: errors.New("x")}, want: "error"},
	}
	for _, tt := range tests {
		if got := failureFlash(tt.err).Type; got != tt.want {
			t.Errorf("failureFlash(%v).Type = %q, want %q", tt.err, got, tt.want)
		}
	}
}
