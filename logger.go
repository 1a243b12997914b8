package buyingagent

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// AnalysisLogger is the interface for per-stage analysis logging.
type AnalysisLogger interface {
	LogStep(step StepLog) error
}

// NewAnalysisLogFilePath returns a file path based on a cleaned up model name or id to make it easier to identify specific logs produced with various models.
func NewAnalysisLogFilePath(model string) string {
	return fmt.Sprintf(
		"./logs/%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(model), "/", "_"), ":", "_"),
	)
}

// StepLog represents a single stage in the analysis pipeline
type StepLog struct {
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input,omitempty"`
	Output    any       `json:"output"`
	Error     string    `json:"error,omitempty"`
}

// FileAnalysisLogger logs to a file, accumulating steps and flushing at the end
type FileAnalysisLogger struct {
	steps  []StepLog
	writer io.Writer
}

// NewFileAnalysisLogger creates a new file-based analysis logger
func NewFileAnalysisLogger(writer io.Writer) *FileAnalysisLogger {
	return &FileAnalysisLogger{
		steps:  make([]StepLog, 0),
		writer: writer,
	}
}

// LogStep logs a stage to the buffer (does not flush immediately)
func (fal *FileAnalysisLogger) LogStep(step StepLog) error {
	fal.steps = append(fal.steps, step)
	return nil
}

// Flush flushes all accumulated steps to the writer
func (fal *FileAnalysisLogger) Flush() error {
	if fal.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"analysis_session": map[string]any{
			"timestamp": time.Now(),
			"steps":     fal.steps,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis log: %w", err)
	}

	if _, err := fal.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write analysis log: %w", err)
	}

	// Clear the buffer after successful write
	fal.steps = fal.steps[:0]
	return nil
}

// NoOpAnalysisLogger is a logger that discards all log entries
type NoOpAnalysisLogger struct{}

// NewNoOpAnalysisLogger creates a new no-op analysis logger
func NewNoOpAnalysisLogger() *NoOpAnalysisLogger {
	return &NoOpAnalysisLogger{}
}

// LogStep discards the step log (no-op)
func (nop *NoOpAnalysisLogger) LogStep(step StepLog) error {
	return nil
}

// StdoutAnalysisLogger logs each stage as a JSON line to stdout (for Lambda/CloudWatch)
type StdoutAnalysisLogger struct{}

// NewStdoutAnalysisLogger creates a new stdout-based analysis logger
func NewStdoutAnalysisLogger() *StdoutAnalysisLogger {
	return &StdoutAnalysisLogger{}
}

// LogStep writes the step as a JSON line to os.Stdout
func (l *StdoutAnalysisLogger) LogStep(step StepLog) error {
	data, err := json.Marshal(step)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
