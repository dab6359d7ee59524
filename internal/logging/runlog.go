package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// RunLogOptions bounds what the log directory may hold.
type RunLogOptions struct {
	MaxSizeMB  int  // size cap of the live file before it is rolled to .1
	KeepRuns   int  // earlier runs kept besides the current one; 0 keeps all
	MaxAgeDays int  // earlier runs older than this are removed; 0 disables
	Compress   bool // gzip the files of earlier runs
}

// RunLog is the file half of the daemon logger. A run writes to
// session_<id>.log; past the size cap that file moves to session_<id>.log.1
// and a fresh one starts, so one run never holds more than two files.
type RunLog struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	file    *os.File
	size    int64
}

// OpenRunLog opens or appends to the log file of runID under dir.
func OpenRunLog(dir, runID string, opts RunLogOptions) (*RunLog, error) {
	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	l := &RunLog{
		path:    filepath.Join(dir, SessionFilename(runID)),
		maxSize: int64(maxSize) << 20,
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *RunLog) open() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat run log: %w", err)
	}
	l.file, l.size = f, info.Size()
	return nil
}

func (l *RunLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return 0, os.ErrClosed
	}
	if l.size > 0 && l.size+int64(len(p)) > l.maxSize {
		if err := l.roll(); err != nil {
			return 0, err
		}
	}
	n, err := l.file.Write(p)
	l.size += int64(n)
	return n, err
}

// roll replaces the previous .1 file with the live one.
func (l *RunLog) roll() error {
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close run log: %w", err)
	}
	l.file = nil
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		return fmt.Errorf("roll run log: %w", err)
	}
	return l.open()
}

// Close closes the live file. Later writes fail.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// PruneRunLogs removes or compresses the files of runs other than current.
// It returns how many runs were removed.
func PruneRunLogs(dir, current string, opts RunLogOptions, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read log dir: %w", err)
	}

	runs := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := ParseSessionFilename(e.Name())
		if !ok || id == current {
			continue
		}
		runs[id] = append(runs[id], e.Name())
	}

	ids := make([]string, 0, len(runs))
	for id := range runs {
		ids = append(ids, id)
	}
	// Run ids start with their timestamp, so the newest sorts first.
	slices.Sort(ids)
	slices.Reverse(ids)

	var errs []error
	removed := 0
	for i, id := range ids {
		expired := false
		if started, ok := RunStarted(id); ok && opts.MaxAgeDays > 0 {
			expired = now.Sub(started) > time.Duration(opts.MaxAgeDays)*24*time.Hour
		}
		if expired || (opts.KeepRuns > 0 && i >= opts.KeepRuns) {
			for _, name := range runs[id] {
				if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
					errs = append(errs, err)
				}
			}
			removed++
			continue
		}
		if !opts.Compress {
			continue
		}
		for _, name := range runs[id] {
			if strings.HasSuffix(name, ".gz") {
				continue
			}
			if err := gzipFile(filepath.Join(dir, name)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return removed, errors.Join(errs...)
}

// gzipFile replaces path with path.gz.
func gzipFile(path string) (err error) {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(path+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	_, err = io.Copy(zw, in)
	err = errors.Join(err, zw.Close(), out.Close())
	if err != nil {
		_ = os.Remove(path + ".gz")
		return fmt.Errorf("compress %s: %w", filepath.Base(path), err)
	}
	return os.Remove(path)
}
