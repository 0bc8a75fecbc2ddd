// Package history records every site build in the SQLite ledger so that
// `codex history` and the dev server can show what was built from which
// manifest.
package history

import "time"

// Trigger identifies what started a build.
type Trigger string

const (
	TriggerBuild Trigger = "build"
	TriggerServe Trigger = "serve"
	TriggerWatch Trigger = "watch"
)

// Status is the outcome of a build.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Build is a single ledger record.
type Build struct {
	ID             string        `json:"id"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	Manifest       string        `json:"manifest"`
	ManifestDigest string        `json:"manifest_digest,omitempty"`
	OutputDir      string        `json:"output_dir"`
	Pages          int           `json:"pages"`
	Plates         int           `json:"plates"`
	Thumbnails     int           `json:"thumbnails"`
	Assets         int           `json:"assets"`
	Trigger        Trigger       `json:"trigger"`
	Status         Status        `json:"status"`
	Error          string        `json:"error,omitempty"`
}
