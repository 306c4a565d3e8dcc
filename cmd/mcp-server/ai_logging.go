package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"
)

type sessionEvent struct {
	SessionID  string `json:"session_id"`
	Timestamp  string `json:"timestamp"`
	ToolName   string `json:"tool_name"`
	PlaceName  string `json:"place_name,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	CommitHash string `json:"commit_hash,omitempty"`
	Error      string `json:"error,omitempty"`
}

var (
	gitCommitOnce sync.Once
	gitCommitHash string
)

// logToolSession records a structured entry for one tool execution, locally
// and into DuckDB when available. It is asynchronous and must never block the
// tool handler.
func logToolSession(toolName, placeName string, durationMs int64, err error) {
	go func() {
		event := sessionEvent{
			SessionID:  newSessionID(),
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			ToolName:   toolName,
			PlaceName:  placeName,
			DurationMs: durationMs,
			CommitHash: getGitCommit(),
			Error:      errString(err),
		}

		data, marshalErr := json.Marshal(event)
		if marshalErr != nil {
			log.Printf("failed to marshal session event: %v", marshalErr)
			return
		}

		// Always log locally.
		log.Println(string(data))

		if duckDB == nil {
			return
		}
		_, execErr := duckDB.Exec(`
			INSERT INTO mcp_session_log (session_id, timestamp, tool_name, place_name, duration_ms, commit_hash, error)
			VALUES (?, now(), ?, ?, ?, ?, ?)
		`, event.SessionID, event.ToolName, event.PlaceName, event.DurationMs, event.CommitHash, event.Error)
		if execErr != nil {
			log.Printf("failed to write session event to DuckDB: %v", execErr)
		}
	}()
}

// getGitCommit returns the current git HEAD commit hash, cached after the
// first successful lookup.
func getGitCommit() string {
	gitCommitOnce.Do(func() {
		out, err := exec.Command("git", "rev-parse", "HEAD").Output()
		if err != nil {
			// Git being unavailable must not affect tool execution.
			return
		}
		gitCommitHash = strings.TrimSpace(string(out))
	})
	return gitCommitHash
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// newSessionID generates a random 128-bit hex identifier.
func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
