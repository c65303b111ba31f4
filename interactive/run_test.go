package interactive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"quick-translate/translator"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fakeEndpoint answers like the gtx endpoint with "<UPPER(q)>[<tl>]".
func fakeEndpoint(t *testing.T) *translator.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_, _ = fmt.Fprintf(w, `[[["%s[%s]","%s"]],null,"%s"]`,
			strings.ToUpper(q.Get("q")), q.Get("tl"), q.Get("q"), q.Get("sl"))
	}))
	t.Cleanup(srv.Close)
	return translator.NewClient(translator.WithBaseURL(srv.URL))
}

func runSession(t *testing.T, input, exportDir string) string {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(fakeEndpoint(t), "auto", "vi", exportDir, "fake", strings.NewReader(input), &out)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSessionTranslatesAndSwitchesLanguages(t *testing.T) {
	out := runSession(t, "1\nHello\n2\nGood morning | | Bye\n3\nen\nja\n1\nHi\n4\n", t.TempDir())

	assert.Contains(t, out, "Hello → HELLO[vi]")
	assert.Contains(t, out, "Good morning → GOOD MORNING[vi]")
	assert.Contains(t, out, "Bye → BYE[vi]")
	assert.Contains(t, out, "Languages set to en → ja")
	assert.Contains(t, out, "Hi → HI[ja]")
	assert.Contains(t, out, "Goodbye!")
}

func TestSessionRejectsBadInput(t *testing.T) {
	out := runSession(t, "9\n1\n\n3\n\nauto\n", t.TempDir())

	assert.Contains(t, out, "Invalid choice")
	assert.Contains(t, out, "Text cannot be empty")
	assert.Contains(t, out, "only valid as a source language")
	assert.Contains(t, out, "Goodbye!", "EOF ends the session")
}

func TestSessionExportsJSON(t *testing.T) {
	dir := t.TempDir()
	out := runSession(t, "2 --o json\nHi | Bye\n4\n", dir)

	assert.Contains(t, out, "JSON exported successfully")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "batch_"))
}

func TestSessionKeepsLanguagesWhenTargetInvalid(t *testing.T) {
	out := runSession(t, "3\nen\nauto\n4\n", t.TempDir())

	assert.Contains(t, out, "only valid as a source language")
	assert.NotContains(t, out, "Languages set to")
	assert.NotContains(t, out, "Languages: en →")
	assert.Contains(t, out, "Languages: auto → vi")
}

func TestSessionStopsOnCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out bytes.Buffer
	s := NewSession(fakeEndpoint(t), "auto", "vi", t.TempDir(), "fake", pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the context was canceled")
	}
	assert.Contains(t, out.String(), "Goodbye!")
}
