package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joestump/workflows/internal/api"
	"github.com/joestump/workflows/internal/auth"
	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/testutil"
	"github.com/joestump/workflows/internal/workflow"
)

const (
	testSummary  = "Open an online shop for handmade goods."
	testWorkflow = "1. **Research**\n   - **Action**: Study [Etsy](https://www.etsy.com/) best sellers\n"
)

// testEnv holds the router and the fake completion client behind it.
type testEnv struct {
	Router http.Handler
	Fake   *testutil.FakeCompleter
	Dir    string
}

type envOption func(*api.Deps, *workflow.Options)

func withTokens(tokens ...string) envOption {
	return func(d *api.Deps, _ *workflow.Options) {
		d.BearerAuth = auth.NewBearerTokenMiddleware(tokens)
	}
}

func withPipelineTimeout(d time.Duration) envOption {
	return func(_ *api.Deps, o *workflow.Options) { o.Timeout = d }
}

// newTestEnv wires the API router with a real pipeline and text renderer
// over a scripted completion client.
func newTestEnv(t *testing.T, fake *testutil.FakeCompleter, opts ...envOption) *testEnv {
	t.Helper()
	if fake == nil {
		fake = &testutil.FakeCompleter{Summary: testSummary, Workflow: testWorkflow}
	}
	dir := t.TempDir()
	renderer, err := render.New(render.Options{Dir: dir})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	deps := api.Deps{BearerAuth: auth.NewBearerTokenMiddleware(nil), Renderer: renderer}
	var popts workflow.Options
	for _, o := range opts {
		o(&deps, &popts)
	}
	deps.Pipeline = workflow.NewPipeline(fake, nil, popts)

	return &testEnv{Router: api.NewAPIRouter(deps), Fake: fake, Dir: dir}
}

func (env *testEnv) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}
