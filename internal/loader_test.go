package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chat-history/testutil"
)

func TestLoader_Discover(t *testing.T) {
	root := testutil.CreateProjectsFixture(t)
	testutil.WriteFixture(t, root, "loose.jsonl", []byte(testutil.UserLine("x1", "s-x", "2025-01-15T08:00:00Z", "loose")+"\n"))
	testutil.WriteFixture(t, root, filepath.Join("alpha", "notes.txt"), []byte("not a transcript"))

	files, err := NewLoader().Discover(root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []SourceFile{
		{Path: filepath.Join(root, "alpha", "agent-sub.jsonl"), Project: "alpha", Agent: true},
		{Path: filepath.Join(root, "alpha", "session-a.jsonl"), Project: "alpha"},
		{Path: filepath.Join(root, "beta", "session-b.jsonl"), Project: "beta"},
		{Path: filepath.Join(root, "beta", "session-b2.jsonl"), Project: "beta"},
		{Path: filepath.Join(root, "loose.jsonl"), Project: "projects"},
	}
	if len(files) != len(want) {
		t.Fatalf("Discover() found %d files, want %d: %+v", len(files), len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d = %+v, want %+v", i, files[i], want[i])
		}
	}
}

func TestLoader_DiscoverErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.jsonl")
	if err := os.WriteFile(file, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		root string
	}{
		{"missing root", filepath.Join(dir, "missing")},
		{"root is a file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Discover(tt.root)
			var srcErr *SourceError
			if !errors.As(err, &srcErr) {
				t.Fatalf("Discover() error = %v, want *SourceError", err)
			}
			if srcErr.Op != "stat" {
				t.Errorf("Op = %q, want stat", srcErr.Op)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	root := testutil.CreateProjectsFixture(t)

	result, err := NewLoader().Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Root != root {
		t.Errorf("Root = %q, want %q", result.Root, root)
	}
	if result.MainFiles() != 3 || result.AgentFiles() != 1 {
		t.Errorf("files = %d main / %d agent, want 3/1", result.MainFiles(), result.AgentFiles())
	}
	if len(result.Messages) != 12 {
		t.Errorf("len(Messages) = %d, want 12", len(result.Messages))
	}
	if result.SkippedLines != 1 {
		t.Errorf("SkippedLines = %d, want 1", result.SkippedLines)
	}

	agents := 0
	for _, msg := range result.Messages {
		if msg.Agent {
			agents++
			if msg.SourceFile != "agent-sub.jsonl" {
				t.Errorf("agent message from %q", msg.SourceFile)
			}
		}
		if msg.Schema != SchemaPrimary {
			t.Errorf("message %q has schema %v", msg.IdentityKey, msg.Schema)
		}
	}
	if agents != 2 {
		t.Errorf("agent messages = %d, want 2", agents)
	}

	if got := BuildTimeline(result.Messages, true); len(got) != 10 {
		t.Errorf("deduplicated timeline has %d messages, want 10", len(got))
	}
}

func TestLoader_LoadAlternate(t *testing.T) {
	root := testutil.CreateRolloutFixture(t)

	result, err := NewLoader().Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(result.Messages))
	}

	for _, msg := range result.Messages {
		if msg.Schema != SchemaAlternate {
			t.Errorf("Schema = %v, want alternate", msg.Schema)
		}
		if msg.SessionID != "abc123" {
			t.Errorf("SessionID = %q, want abc123", msg.SessionID)
		}
		if msg.Project != "2025" {
			t.Errorf("Project = %q, want 2025", msg.Project)
		}
	}

	work := NewReconstructor(DefaultWorkTimeConfig()).Reconstruct(BuildTimeline(result.Messages, true))
	if work.TotalTime.Minutes() != 3 {
		t.Errorf("TotalTime = %v, want 3m", work.TotalTime)
	}
}

func TestLoader_ReadTranscript(t *testing.T) {
	input := strings.Join([]string{
		"",
		testutil.SummaryLine("summary"),
		"   ",
		testutil.UserLine("u1", "s1", "2025-01-15T10:00:00Z", "Hello"),
		"garbage",
		testutil.AssistantLine("a1", "s1", "2025-01-15T10:00:05Z", "Hi"),
		`{"type":"assistant"`,
	}, "\n")

	messages, skipped, err := NewLoader().ReadTranscript(strings.NewReader(input), SourceFile{Path: "/x/demo/f.jsonl", Project: "demo"})
	if err != nil {
		t.Fatalf("ReadTranscript() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if messages[0].SourceFile != "f.jsonl" || messages[0].Project != "demo" {
		t.Errorf("origin = %q/%q, want f.jsonl/demo", messages[0].SourceFile, messages[0].Project)
	}
	if messages[0].IdentityKey != "u1" || messages[1].IdentityKey != "a1" {
		t.Error("ReadTranscript() should keep file order")
	}
}

func TestLoader_ReadTranscriptLongLine(t *testing.T) {
	long := strings.Repeat("x", 256*1024)
	input := testutil.AssistantLine("a1", "s1", "2025-01-15T10:00:05Z", long)

	messages, _, err := NewLoader().ReadTranscript(strings.NewReader(input), SourceFile{Path: "f.jsonl"})
	if err != nil {
		t.Fatalf("ReadTranscript() error = %v", err)
	}
	if len(messages) != 1 || len(messages[0].FirstText()) != len(long) {
		t.Error("ReadTranscript() should read lines longer than the default scanner buffer")
	}
}

func TestLoader_LoadFileMissing(t *testing.T) {
	_, _, err := NewLoader().LoadFile(SourceFile{Path: filepath.Join(t.TempDir(), "gone.jsonl")})
	var srcErr *SourceError
	if !errors.As(err, &srcErr) || srcErr.Op != "open" {
		t.Errorf("LoadFile() error = %v, want open SourceError", err)
	}
}
