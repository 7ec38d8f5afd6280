// ABOUTME: End-to-end tests running CLI commands against a temp SQLite store
// ABOUTME: English transcripts need no LLM calls, so no network is used

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testVideo = "enVideo0001"

const testTranscript = `{"language":"English","language_code":"en","data":[
{"text":"welcome to the kitchen","start":0,"duration":5},
{"text":"today we bake bread","start":30,"duration":5},
{"text":"now the garden part","start":200,"duration":5}]}`

// setupWorkspace points config at a temp transcript dir and database
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("TUBESCRIBE_CONFIG", "")
	t.Setenv("TUBESCRIBE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("TUBESCRIBE_DB", filepath.Join(dir, "data", "tubescribe.db"))
	t.Setenv("TRANSCRIPT_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")

	if err := os.WriteFile(filepath.Join(dir, testVideo+".json"), []byte(testTranscript), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_IngestAndList(t *testing.T) {
	setupWorkspace(t)

	out, err := runCLI(t, "ingest", testVideo)
	if err != nil {
		t.Fatalf("ingest error = %v", err)
	}
	if !strings.Contains(out, "Ingested enVideo0001 (English): 3 snippets, 2 chunks") {
		t.Errorf("ingest output = %q", out)
	}

	out, err = runCLI(t, "--format", "json", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var videos []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &videos); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, out)
	}
	if len(videos) != 1 || videos[0]["video_id"] != testVideo || videos[0]["translated"] != false {
		t.Errorf("videos = %+v", videos)
	}
}

func TestCLI_Lookup(t *testing.T) {
	setupWorkspace(t)

	out, err := runCLI(t, "lookup", "https://youtu.be/"+testVideo, "0:15")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	if !strings.Contains(out, "[00:00 - 00:30] welcome to the kitchen today we bake bread") {
		t.Errorf("lookup output missing match:\n%s", out)
	}
	if !strings.Contains(out, "now the garden part") {
		t.Errorf("lookup output missing next chunk:\n%s", out)
	}

	if !strings.Contains(out, "match    [00:00 - 00:30]") {
		t.Errorf("exact hit should be labelled match:\n%s", out)
	}

	// 100s falls between chunks, so the following chunk is reported.
	out, err = runCLI(t, "lookup", testVideo, "100")
	if err != nil {
		t.Fatalf("lookup in gap error = %v", err)
	}
	if !strings.Contains(out, "nearest  [03:20") || !strings.Contains(out, "now the garden part") {
		t.Errorf("gap lookup should label the following chunk nearest:\n%s", out)
	}
	if strings.Contains(out, "match ") {
		t.Errorf("gap lookup should not claim an exact match:\n%s", out)
	}

	out, err = runCLI(t, "lookup", testVideo, "999")
	if err != nil {
		t.Fatalf("lookup past end error = %v", err)
	}
	if strings.TrimSpace(out) != "no data found" {
		t.Errorf("lookup past end = %q", out)
	}

	if _, err := runCLI(t, "lookup", testVideo, "--", "-5"); err == nil {
		t.Error("negative timestamp should fail")
	}
}

func TestCLI_ExportMarkdown(t *testing.T) {
	dir := setupWorkspace(t)
	path := filepath.Join(dir, "out", "talk.md")

	if _, err := runCLI(t, "export", testVideo, "-o", path); err != nil {
		t.Fatalf("export error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "**[00:00 - 00:30]** welcome to the kitchen") {
		t.Errorf("export content:\n%s", content)
	}
}

func TestCLI_Remove(t *testing.T) {
	setupWorkspace(t)

	if _, err := runCLI(t, "ingest", testVideo); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "remove", testVideo); err != nil {
		t.Fatalf("remove error = %v", err)
	}

	out, err := runCLI(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No videos found") {
		t.Errorf("list after remove = %q", out)
	}
}

func TestCLI_MissingTranscript(t *testing.T) {
	setupWorkspace(t)

	_, err := runCLI(t, "lookup", "zzzzzzzzzzz", "5")
	if err == nil {
		t.Fatal("expected error for a video with no transcript")
	}
}

func TestCLI_IngestNeedsInput(t *testing.T) {
	setupWorkspace(t)

	if _, err := runCLI(t, "ingest"); err == nil || !strings.Contains(err.Error(), "--file") {
		t.Errorf("ingest without args error = %v", err)
	}
}
