package logging

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// GenerateSessionID creates a unique identifier for one daemon run.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
// Example: 20251217_205106_a7b3
func GenerateSessionID() string {
	now := time.Now()
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return now.Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// ParseSessionFilename extracts the run id from a run log filename. The
// live file, its rolled .1 copy and gzipped forms of either are accepted.
// Example: "session_20251217_205106_a7b3.log.1.gz" -> "20251217_205106_a7b3", true
func ParseSessionFilename(filename string) (sessionID string, ok bool) {
	rest, ok := strings.CutPrefix(filename, "session_")
	if !ok {
		return "", false
	}
	idx := strings.Index(rest, ".log")
	if idx <= 0 {
		return "", false
	}
	switch rest[idx:] {
	case ".log", ".log.gz", ".log.1", ".log.1.gz":
		return rest[:idx], true
	default:
		return "", false
	}
}

// RunStarted reads the start time encoded in a run id.
func RunStarted(sessionID string) (time.Time, bool) {
	const layout = "20060102_150405"
	if len(sessionID) < len(layout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layout, sessionID[:len(layout)], time.Local)
	return t, err == nil
}

// SessionFilename generates the log filename for a run id.
// Example: "20251217_205106_a7b3" -> "session_20251217_205106_a7b3.log"
func SessionFilename(sessionID string) string {
	return "session_" + sessionID + ".log"
}
