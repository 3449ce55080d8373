//go:build integration
// +build integration

package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "dimms_test")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func fakeDiscogs(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/identity":
			_, _ = w.Write([]byte(`{"id": 1, "username": "tester"}`))
		case "/database/search":
			_, _ = w.Write([]byte(`{"pagination": {"items": 1}, "results": [{"id": 1003, "title": "Muse", "uri": "/artist/1003-Muse"}]}`))
		case "/artists/1003/releases":
			_, _ = w.Write([]byte(`{"pagination": {"items": 1}, "releases": [{"id": 11, "title": "Showbiz", "year": 1999, "artist": "Muse"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func env(t *testing.T, baseURL, token, outDir string) []string {
	return append(os.Environ(),
		"HOME="+t.TempDir(),
		"DISCOGS_TOKEN="+token,
		"DIMMS_DISCOGS_BASE_URL="+baseURL,
		"DIMMS_OUTPUT_DIR="+outDir,
		"DIMMS_CACHE_ENABLED=false",
	)
}

// TestMissingTokenIsFatal checks the process exits before running a command
func TestMissingTokenIsFatal(t *testing.T) {
	bin := buildBinary(t)
	server := fakeDiscogs(t)

	cmd := exec.Command(bin, "search-artists", "Muse")
	cmd.Env = env(t, server.URL, "", t.TempDir())
	output, err := cmd.CombinedOutput()

	if err == nil {
		t.Fatal("expected non-zero exit without a token")
	}
	if !strings.Contains(string(output), "DISCOGS_TOKEN") {
		t.Errorf("expected guidance about DISCOGS_TOKEN, got: %s", output)
	}
}

// TestBadArtistID checks a non-integer ID exits non-zero
func TestBadArtistID(t *testing.T) {
	bin := buildBinary(t)
	server := fakeDiscogs(t)

	cmd := exec.Command(bin, "list-albums", "abc")
	cmd.Env = env(t, server.URL, "token", t.TempDir())
	if err := cmd.Run(); err == nil {
		t.Error("expected non-zero exit for a non-integer artist ID")
	}
}

// TestSearchCommand runs a direct search against a fake API
func TestSearchCommand(t *testing.T) {
	bin := buildBinary(t)
	server := fakeDiscogs(t)

	cmd := exec.Command(bin, "search-artists", "Muse")
	cmd.Env = env(t, server.URL, "token", t.TempDir())
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("search failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "Total Results: 1") {
		t.Errorf("unexpected output: %s", output)
	}
}

// TestInteractiveSession feeds a scripted session on stdin
func TestInteractiveSession(t *testing.T) {
	bin := buildBinary(t)
	server := fakeDiscogs(t)
	outDir := t.TempDir()

	cmd := exec.Command(bin, "-i")
	cmd.Env = env(t, server.URL, "token", outDir)
	cmd.Stdin = strings.NewReader(strings.Join([]string{
		"foobar",
		"search-artists Muse",
		"list-albums 1003",
		"dump-all-data --separate --file x.csv",
		"bye",
	}, "\n") + "\n")

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("session failed: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "Unknown command: foobar") {
		t.Errorf("expected unknown command message, got: %s", output)
	}

	for _, name := range []string{"artists_x.csv", "albums_x.csv"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "x.csv")); !os.IsNotExist(err) {
		t.Error("separate dump must not write a combined file")
	}
}
