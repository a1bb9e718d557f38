package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type result struct {
	stdout string
	stderr string
}

func execute(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return result{stdout: out.String(), stderr: errOut.String()}, err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &got), s)
	return got
}

func TestRepairCommand(t *testing.T) {
	dir := t.TempDir()
	reply := writeFile(t, dir, "reply.txt", "Here you go:\n```json\n{\"errorType\":\"TypeError\",\"severity\":\"critical\",\"complexity\":\"Low\",\"confidence\":80}\n```")
	code := writeFile(t, dir, "app.js", "const total = items.length;\nconsole.log(total)")

	res, err := execute(t, "", "repair", "--response", reply, "--code", code, "--language", "JavaScript")
	require.NoError(t, err)

	got := decodeJSON(t, res.stdout)
	assert.Equal(t, "TypeError", got["errorType"])
	assert.Nil(t, got["complexity"])
	assert.Len(t, got["alternatives"], 3)
	assert.Equal(t, map[string]any{"total": "items.length"}, got["variableSnapshot"])
	assert.Contains(t, res.stderr, "Analysis complete")
	assert.NotContains(t, res.stderr, "could not be parsed")
}

func TestRepairCommand_ReplyFromStdinFallsBack(t *testing.T) {
	dir := t.TempDir()
	code := writeFile(t, dir, "main.py", "print(y)")

	res, err := execute(t, "no json at all", "repair", "--response", "-", "--code", code, "-l", "python")
	require.NoError(t, err)

	got := decodeJSON(t, res.stdout)
	assert.Equal(t, "Analysis Error", got["errorType"])
	assert.Equal(t, "Complexity: Medium", got["complexity"])
	assert.Contains(t, res.stderr, "model reply could not be parsed")
}

func TestRepairCommand_EmptyCode(t *testing.T) {
	dir := t.TempDir()
	reply := writeFile(t, dir, "reply.txt", "{}")
	code := writeFile(t, dir, "empty.py", "  \n")

	_, err := execute(t, "", "repair", "--response", reply, "--code", code, "-l", "python")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code and language are required")
}

// fakeOpenAI serves chat completions whose content is reply.
func fakeOpenAI(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		body, _ := json.Marshal(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func analyzeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	for _, k := range []string{
		"AI_PROVIDER", "AI_MODEL", "AI_BASE_URL", "AI_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
	return writeFile(t, dir, "config.yaml", fmt.Sprintf(`
ai:
  provider: openai
  model: gpt-4o-mini
  apiKey: test-key
  baseURL: %s/v1
  timeout: 5s
`, baseURL))
}

func TestAnalyzeCommand(t *testing.T) {
	srv := fakeOpenAI(t, `{"errorType":"NameError","severity":"critical","rootCause":"y is undefined","complexity":"High","confidence":88}`)
	dir := t.TempDir()
	cfg := analyzeConfig(t, dir, srv.URL)
	src := writeFile(t, dir, "main.py", "x = 5\nprint(y)")

	res, err := execute(t, "", "analyze", src, "-l", "python", "-e", "NameError: name 'y' is not defined", "-o", "json", "--config", cfg)
	require.NoError(t, err)

	got := decodeJSON(t, res.stdout)
	assert.Equal(t, "NameError", got["errorType"])
	assert.Equal(t, "Complexity: High", got["complexity"])
	assert.Equal(t, float64(88), got["confidence"])
	assert.Len(t, got["learningResources"], 3)
	assert.Contains(t, res.stderr, "Analysis complete")
}

func TestAnalyzeCommand_FallbackNotice(t *testing.T) {
	srv := fakeOpenAI(t, "Sorry, I cannot produce JSON today.")
	dir := t.TempDir()
	cfg := analyzeConfig(t, dir, srv.URL)

	res, err := execute(t, "console.log(a)", "analyze", "-l", "javascript", "-o", "json", "--config", cfg)
	require.NoError(t, err)

	got := decodeJSON(t, res.stdout)
	assert.Equal(t, "Analysis Error", got["errorType"])
	assert.Equal(t, "console.log(a)", got["suggestedFix"].(map[string]any)["code"])
	assert.Contains(t, res.stderr, "model reply could not be parsed")
}

func TestAnalyzeCommand_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	cfg := analyzeConfig(t, dir, srv.URL)

	_, err := execute(t, "print(1)", "analyze", "-l", "python", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestVersionCommand(t *testing.T) {
	res, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "codedoctor "+version)
}
