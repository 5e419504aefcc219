package hyperparams

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"go.uber.org/zap"
)

// ReportFilename is the name of the file written by Report.
const ReportFilename = "hyperparameters.json"

// ReportLinePattern matches the log lines emitted by Report.
var ReportLinePattern = regexp.MustCompile(`^hyperparameters: (?P<key>[^=]+)=(?P<value>.*)$`)

// Report writes the cache as a flat JSON object to dir/hyperparameters.json,
// replacing any earlier report, and logs one "hyperparameters: key=value"
// line per entry in key order. Failures are returned as ErrIO.
func (s *Store) Report(dir string) error {
	snapshot := s.Snapshot()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrIO, err)
	}

	if err := writeFileAtomic(dir, ReportFilename, data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := logValue(snapshot[key])
		s.logger.Info(ReportLine(key, value),
			zap.String("key", key),
			zap.String("value", value),
		)
	}
	return nil
}

// ReportLine formats a single report log line.
func ReportLine(key, value string) string {
	return fmt.Sprintf("hyperparameters: %s=%s", key, value)
}

// ParseReportLine extracts key and value from a line produced by Report.
func ParseReportLine(line string) (key, value string, ok bool) {
	m := ReportLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[ReportLinePattern.SubexpIndex("key")], m[ReportLinePattern.SubexpIndex("value")], true
}

// writeFileAtomic writes to a temporary file in dir and renames it over name,
// so readers never observe a partial report.
func writeFileAtomic(dir, name string, data []byte) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	tmpName = ""
	return nil
}
