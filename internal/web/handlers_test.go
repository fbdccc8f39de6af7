package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"bnote/internal/config"
	"bnote/internal/store"
)

type testEnv struct {
	srv   *Server
	store *store.Store
	ts    *httptest.Server
}

func newTestEnv(t *testing.T, baseURL string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "note.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}

	staticDir := filepath.Join(dir, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		t.Fatalf("mkdir static: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	cfg := config.Config{
		BaseURL:   baseURL,
		Location:  time.UTC,
		StaticDir: staticDir,
	}
	srv, err := NewServer(cfg, st)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{srv: srv, store: st, ts: ts}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(e.ts.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp, string(body)
}

func (e *testEnv) insert(t *testing.T, body, noteType, ts string) store.Note {
	t.Helper()
	n, err := e.store.Insert(context.Background(), body, noteType, ts)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return n
}

func TestNewRendersEmptyEditor(t *testing.T) {
	env := newTestEnv(t, "")
	for _, path := range []string{"/", "/new"} {
		resp, body := env.get(t, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		if !strings.Contains(body, `name="note_id" value="-1"`) {
			t.Fatalf("%s: expected sentinel id in editor, got %s", path, body)
		}
		if !strings.Contains(body, `action="/add"`) {
			t.Fatalf("%s: expected form action, got %s", path, body)
		}
	}
}

func TestAddInsertsAndUpdates(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	form := url.Values{"note": {"line one\r\nline two"}, "note_id": {"-1"}, "note_type": {"note"}}
	resp, err := http.PostForm(env.ts.URL+"/add", form)
	if err != nil {
		t.Fatalf("post add: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `name="note_id" value="-1"`) {
		t.Fatalf("expected fresh editor after add, got %s", body)
	}

	notes, err := env.store.List(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	created := notes[0]
	if created.Body != "line one\nline two" {
		t.Fatalf("expected carriage returns stripped, got %q", created.Body)
	}
	if created.Date != "2024-03-15 12:00:00" {
		t.Fatalf("expected server timestamp, got %q", created.Date)
	}

	form = url.Values{"note": {"changed"}, "note_id": {strconv.FormatInt(created.ID, 10)}, "note_type": {"todo"}}
	resp, err = http.PostForm(env.ts.URL+"/add", form)
	if err != nil {
		t.Fatalf("post update: %v", err)
	}
	resp.Body.Close()

	notes, err = env.store.List(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 || notes[0].Body != "changed" || notes[0].Type != "todo" {
		t.Fatalf("expected in-place update, got %+v", notes)
	}
}

func TestAddRejectsBadID(t *testing.T) {
	env := newTestEnv(t, "")
	resp, err := http.PostForm(env.ts.URL+"/add", url.Values{"note": {"x"}, "note_id": {"abc"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListAllHasNoNavigation(t *testing.T) {
	env := newTestEnv(t, "")
	env.insert(t, "alpha", "note", "2024-03-14 09:00:00")
	env.insert(t, "beta", "note", "2024-03-15 09:00:00")

	resp, body := env.get(t, "/list-all")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "alpha") || !strings.Contains(body, "beta") {
		t.Fatalf("expected all notes, got %s", body)
	}
	if strings.Contains(body, `class="daynav"`) {
		t.Fatalf("expected no day navigation on list-all")
	}
}

func TestListTodayUsesConfiguredClock(t *testing.T) {
	env := newTestEnv(t, "")
	env.insert(t, "today note", "note", "2024-03-15 23:59:59")
	env.insert(t, "yesterday note", "note", "2024-03-14 10:00:00")

	_, body := env.get(t, "/list")
	if !strings.Contains(body, "today note") {
		t.Fatalf("expected today's note, got %s", body)
	}
	if strings.Contains(body, "yesterday note") {
		t.Fatalf("unexpected note from another day")
	}
	if !strings.Contains(body, `href="/list/2024-03-14"`) || !strings.Contains(body, `href="/list/2024-03-16"`) {
		t.Fatalf("expected prev/next links, got %s", body)
	}
}

func TestListByDateLinkifiesAndNavigates(t *testing.T) {
	env := newTestEnv(t, "/bnote")
	env.insert(t, "see http://x.test/a?b=1 now", "note", "2024-01-31 08:00:00")

	resp, body := env.get(t, "/list/2024-01-31")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `see <a href="http://x.test/a?b=1">http://x.test/a?b=1</a> now`) {
		t.Fatalf("expected linkified body, got %s", body)
	}
	if !strings.Contains(body, `href="/bnote/list/2024-01-30"`) || !strings.Contains(body, `href="/bnote/list/2024-02-01"`) {
		t.Fatalf("expected base-prefixed navigation, got %s", body)
	}
	if !strings.Contains(body, "January 2024") {
		t.Fatalf("expected month calendar, got %s", body)
	}
}

func TestListByInvalidDateIsNotFound(t *testing.T) {
	env := newTestEnv(t, "")
	for _, path := range []string{"/list/garbage", "/list/20240131", "/list/2024-02-30"} {
		resp, body := env.get(t, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
		if !strings.Contains(body, "Not found") {
			t.Fatalf("%s: expected not-found view, got %s", path, body)
		}
	}
}

func TestEditPopulatesEditor(t *testing.T) {
	env := newTestEnv(t, "")
	n := env.insert(t, "edit <me>", "todo", "2024-03-15 09:00:00")

	resp, body := env.get(t, "/edit/"+strconv.FormatInt(n.ID, 10))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `value="`+strconv.FormatInt(n.ID, 10)+`"`) {
		t.Fatalf("expected note id in form, got %s", body)
	}
	if !strings.Contains(body, "edit &lt;me&gt;") {
		t.Fatalf("expected escaped body in textarea, got %s", body)
	}
	if !strings.Contains(body, `name="note_type" value="todo"`) {
		t.Fatalf("expected type prefilled, got %s", body)
	}
}

func TestEditMissingIsNotFound(t *testing.T) {
	env := newTestEnv(t, "")
	for _, path := range []string{"/edit/999", "/edit/abc"} {
		resp, _ := env.get(t, path)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestDeleteRedirectsAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t, "/bnote")
	n := env.insert(t, "gone", "note", "2024-03-15 09:00:00")
	path := "/delete/" + strconv.FormatInt(n.ID, 10)

	for i := 0; i < 2; i++ {
		resp, _ := env.get(t, path)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("attempt %d: expected 303, got %d", i+1, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/bnote/list" {
			t.Fatalf("attempt %d: unexpected redirect %q", i+1, loc)
		}
	}
	if _, ok, err := env.store.Get(context.Background(), n.ID); err != nil || ok {
		t.Fatalf("expected note deleted (ok=%v err=%v)", ok, err)
	}
}

func TestDigestRendersMarkdown(t *testing.T) {
	env := newTestEnv(t, "")
	env.insert(t, "prose entry", "note", "2024-03-15 09:00:00")
	env.insert(t, "task entry", "todo", "2024-03-15 09:30:00")

	resp, body := env.get(t, "/md/20240315")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "<h1>2024.03.15</h1>") || !strings.Contains(body, "<p>prose entry</p>") {
		t.Fatalf("expected rendered digest, got %s", body)
	}
	if strings.Contains(body, "task entry") {
		t.Fatalf("expected non-note types excluded")
	}

	_, body = env.get(t, "/md")
	if !strings.Contains(body, "2024.03.15") {
		t.Fatalf("expected today's digest, got %s", body)
	}

	resp, _ = env.get(t, "/md/bogus")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for bad digest date, got %d", resp.StatusCode)
	}
}

func TestStaticServesFilesInsideRoot(t *testing.T) {
	env := newTestEnv(t, "")
	resp, body := env.get(t, "/static/style.css")
	if resp.StatusCode != http.StatusOK || body != "body{}" {
		t.Fatalf("expected css, got %d %q", resp.StatusCode, body)
	}
	resp, _ = env.get(t, "/static/missing.css")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing file, got %d", resp.StatusCode)
	}
}

func TestStaticFilePathRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		in string
		ok bool
	}{
		{"style.css", true},
		{"css/site.css", true},
		{"css/../style.css", true},
		{"../secret.txt", false},
		{"..", false},
		{"/etc/passwd", false},
		{"..\\secret.txt", false},
		{"", false},
	}
	for _, c := range cases {
		_, err := StaticFilePath(root, c.in)
		if c.ok && err != nil {
			t.Fatalf("expected ok for %q, got %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("expected error for %q", c.in)
		}
	}
}

func TestUnknownRouteIsNotFoundView(t *testing.T) {
	env := newTestEnv(t, "")
	resp, body := env.get(t, "/nope")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "Not found") {
		t.Fatalf("expected not-found view, got %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestConcurrentRequestsShareStore(t *testing.T) {
	env := newTestEnv(t, "")
	const workers = 8
	errs := make(chan error, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			resp, err := http.PostForm(env.ts.URL+"/add", url.Values{"note": {"n" + strconv.Itoa(i)}, "note_id": {"-1"}, "note_type": {"note"}})
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("add status %d", resp.StatusCode)
			}
		}(i)
		go func() {
			defer wg.Done()
			resp, err := http.Get(env.ts.URL + "/list")
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("list status %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent request failed: %v", err)
	}

	notes, err := env.store.List(context.Background(), store.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != workers {
		t.Fatalf("expected %d notes, got %d", workers, len(notes))
	}
}
