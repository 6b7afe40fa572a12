package parse

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"stormlightlabs.org/sabermetrics/internal/echo"
)

// Sink is the ingestion driver's logging collaborator: a formatted progress
// line, a no-newline formatted fragment (for the dotted "Processing
// games..." progress style the teacher's ETL commands already use), and a
// flush of any buffered fragment. This is the Go shape of the source
// parser's m_output collaborator (log/raw/flush).
type Sink interface {
	Logf(format string, args ...any)
	Raw(format string, args ...any)
	Flush()

	// Diagnostic records a structured, file/line-tagged warning — an
	// unmatched event, a malformed line — without aborting ingestion.
	Diagnostic(file string, line int, kind string, args ...any)
}

// LogSink is the default Sink: styled banner/summary lines via
// internal/echo, structured per-line diagnostics via charmbracelet/log, and
// a mutex so concurrent callers (tests spawning parsers in parallel, or a
// future concurrent reader) can share one sink safely.
type LogSink struct {
	mu     sync.Mutex
	logger *log.Logger
	raw    string
}

// NewLogSink returns a LogSink writing diagnostics through logger. A nil
// logger falls back to the package default.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

// Logf prints a styled info line, per the teacher's echo.Infof convention.
func (s *LogSink) Logf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	echo.Infof(format, args...)
}

// Raw buffers a no-newline fragment (e.g. the "." per file in "Processing
// games...."), flushed explicitly by Flush.
func (s *LogSink) Raw(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw += fmt.Sprintf(format, args...)
}

// Flush prints and clears any buffered Raw fragments.
func (s *LogSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == "" {
		return
	}
	fmt.Println(s.raw)
	s.raw = ""
}

// Diagnostic logs a structured warning carrying the offending file and
// 1-based line number as fields.
func (s *LogSink) Diagnostic(file string, line int, kind string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.With("file", file, "line", line).Warnf(kind, args...)
}
