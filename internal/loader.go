package internal

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxLineSize bounds a single JSONL record; tool outputs can be very large
const maxLineSize = 10 * 1024 * 1024

// SourceFile is a transcript file found under a root directory
type SourceFile struct {
	Path    string
	Project string
	Agent   bool
}

// LoadResult holds everything read from a root directory, before deduplication
type LoadResult struct {
	Root         string
	Files        []SourceFile
	Messages     []*Message
	SkippedLines int
}

// MainFiles counts the non-agent transcript files
func (r *LoadResult) MainFiles() int {
	count := 0
	for _, f := range r.Files {
		if !f.Agent {
			count++
		}
	}
	return count
}

// AgentFiles counts the agent-* transcript files
func (r *LoadResult) AgentFiles() int {
	return len(r.Files) - r.MainFiles()
}

// Loader discovers transcript files and turns them into canonical messages
type Loader struct {
	normalizer *Normalizer
}

// NewLoader creates a new Loader
func NewLoader() *Loader {
	return &Loader{normalizer: NewNormalizer()}
}

// Discover lists the *.jsonl files under root. Files directly in root belong to
// the project named after root; anything deeper belongs to the project named
// after its top-level subdirectory.
func (l *Loader) Discover(root string) ([]SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &SourceError{Path: root, Op: "stat", Err: err}
	}
	if !info.IsDir() {
		return nil, &SourceError{Path: root, Op: "stat", Err: fmt.Errorf("not a directory")}
	}

	rootProject := filepath.Base(filepath.Clean(root))
	var files []SourceFile

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip directories we can't access
			LogWarn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsTranscriptFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		project := rootProject
		if parts := strings.Split(filepath.ToSlash(rel), "/"); len(parts) > 1 {
			project = parts[0]
		}

		files = append(files, SourceFile{
			Path:    path,
			Project: project,
			Agent:   IsAgentFile(d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, &SourceError{Path: root, Op: "scan", Err: err}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	LogDebug("Discovered %d transcript files under %s", len(files), root)
	return files, nil
}

// Load reads and normalizes every transcript file under root. Unreadable files
// are logged and skipped; only an unusable root is an error.
func (l *Loader) Load(root string) (*LoadResult, error) {
	files, err := l.Discover(root)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Root: root, Files: files}
	for _, file := range files {
		messages, skipped, err := l.LoadFile(file)
		if err != nil {
			LogWarn("Failed to read %s: %v", file.Path, err)
			continue
		}
		result.Messages = append(result.Messages, messages...)
		result.SkippedLines += skipped
	}

	LogDebug("Loaded %d messages (%d unreadable lines)", len(result.Messages), result.SkippedLines)
	return result, nil
}

// LoadFile reads one transcript file and returns its messages in file order,
// plus the number of lines that could not be parsed.
func (l *Loader) LoadFile(file SourceFile) ([]*Message, int, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, 0, &SourceError{Path: file.Path, Op: "open", Err: err}
	}
	defer f.Close()

	messages, skipped, err := l.ReadTranscript(f, file)
	if err != nil {
		return nil, 0, &SourceError{Path: file.Path, Op: "read", Err: err}
	}
	return messages, skipped, nil
}

// ReadTranscript parses JSONL records from r. The schema is detected from the
// file name and the first non-blank line.
func (l *Loader) ReadTranscript(r io.Reader, file SourceFile) ([]*Message, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	origin := Origin{
		SourceFile: filepath.Base(file.Path),
		Project:    file.Project,
		Agent:      file.Agent,
	}

	var (
		messages []*Message
		skipped  int
		schema   Schema
		detected bool
		lineNo   int
	)

	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !detected {
			schema = DetectSchema(file.Path, line)
			detected = true
		}

		rec, err := ParseRecord(line, schema, origin)
		if err != nil {
			skipped++
			LogDebug("%s:%d: %v", origin.SourceFile, lineNo, err)
			continue
		}
		if msg, ok := l.normalizer.Normalize(rec); ok {
			messages = append(messages, msg)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}

	return messages, skipped, nil
}
