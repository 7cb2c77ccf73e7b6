package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/summonerscompass/compass-go/internal/infrastructure/config"
)

// Level ordering for the threshold filter
var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// StructuredLogger writes leveled, structured records to a single output
// in json or text format. It implements application/common.Logger.
type StructuredLogger struct {
	out       io.Writer
	format    string
	threshold int
}

// New creates a logger from configuration
func New(cfg *config.LoggingConfig) (*StructuredLogger, error) {
	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("logging.file_path is required when output is file")
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
	default:
		return nil, fmt.Errorf("unsupported logging output: %s", cfg.Output)
	}

	threshold, ok := levelRank[cfg.Level]
	if !ok {
		return nil, fmt.Errorf("unsupported logging level: %s", cfg.Level)
	}

	return &StructuredLogger{
		out:       out,
		format:    cfg.Format,
		threshold: threshold,
	}, nil
}

// Log writes one record if it passes the level threshold
func (l *StructuredLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank["info"]
	}
	if rank < l.threshold {
		return
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if l.format == "json" {
		record := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			record[k] = v
		}
		record["ts"] = timestamp
		record["level"] = level
		record["msg"] = message
		if data, err := json.Marshal(record); err == nil {
			fmt.Fprintln(l.out, string(data))
		}
		return
	}

	var fields strings.Builder
	for k, v := range metadata {
		fmt.Fprintf(&fields, " %s=%v", k, v)
	}
	fmt.Fprintf(l.out, "%s [%s] %s%s\n", timestamp, strings.ToUpper(level), message, fields.String())
}
