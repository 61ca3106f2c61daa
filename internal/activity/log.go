package activity

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the log.
const (
	ActionSelect   = "select"
	ActionDeselect = "deselect"
	ActionRandom   = "random"
	ActionNotFound = "not_found"
	ActionSearch   = "search"
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	Action    string    `json:"action"`
	Node      string    `json:"node,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// session groups every entry written by one process.
var session = uuid.NewString()

// Session returns the id stamped on entries written by this process.
func Session() string {
	return session
}

func logPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cxgraph", "activity.jsonl")
}

// Log appends an entry to the activity log.
func Log(action, node, details string) error {
	return appendEntry(Entry{
		Timestamp: time.Now(),
		Session:   session,
		Action:    action,
		Node:      node,
		Details:   details,
	})
}

func appendEntry(entry Entry) error {
	path := logPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%s\n", data)
	return err
}

// Read returns the last N entries from the log, newest first.
func Read(count int) ([]Entry, error) {
	data, err := os.ReadFile(logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Entry
		if json.Unmarshal(line, &e) == nil {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Appends are chronological, so reversing first keeps ties newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

// Search finds entries whose action, node or details contain query.
func Search(query string, count int) ([]Entry, error) {
	all, err := Read(0)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var results []Entry
	for _, e := range all {
		if contains(e.Action, q) || contains(e.Node, q) || contains(e.Details, q) {
			results = append(results, e)
			if count > 0 && len(results) >= count {
				break
			}
		}
	}
	return results, nil
}

// Clear removes all log entries.
func Clear() error {
	err := os.Remove(logPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
