// Package logger provides structured logging for the text analysis
// platform, with leveled output in text or JSON format and field chaining.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// DebugLevel logs debug messages
	DebugLevel LogLevel = iota
	// InfoLevel logs info messages
	InfoLevel
	// WarnLevel logs warning messages
	WarnLevel
	// ErrorLevel logs error messages
	ErrorLevel
	// FatalLevel logs fatal messages and exits
	FatalLevel
)

// String returns string representation of log level
func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a log level from string
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

// LogFormat represents the output format
type LogFormat int

const (
	// TextFormat outputs logs in human-readable text format
	TextFormat LogFormat = iota
	// JSONFormat outputs logs in JSON format
	JSONFormat
)

// ParseLogFormat parses a log format from string
func ParseLogFormat(format string) LogFormat {
	if strings.EqualFold(format, "json") {
		return JSONFormat
	}
	return TextFormat
}

// Config represents logger configuration
type Config struct {
	Level   LogLevel  `yaml:"level"`
	Format  LogFormat `yaml:"format"`
	Output  io.Writer `yaml:"-"`
	Service string    `yaml:"service"`
}

// Logger is a structured leveled logger. WithField/WithFields/WithContext
// return derived loggers; a Logger is never mutated after creation, so it is
// safe to share across goroutines.
type Logger struct {
	level   LogLevel
	format  LogFormat
	output  io.Writer
	service string
	fields  map[string]interface{}
}

// logEntry is the serialized form of one log line
type logEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Service   string                 `json:"service,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// NewLogger creates a new structured logger
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = &Config{Level: InfoLevel, Format: JSONFormat}
	}
	output := config.Output
	if output == nil {
		output = os.Stdout
	}
	return &Logger{
		level:   config.Level,
		format:  config.Format,
		output:  output,
		service: config.Service,
		fields:  make(map[string]interface{}),
	}
}

// NewDefaultLogger creates a JSON logger at info level for the named service
func NewDefaultLogger(service string) *Logger {
	return NewLogger(&Config{Level: InfoLevel, Format: JSONFormat, Service: service})
}

func (l *Logger) clone(extra map[string]interface{}) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+len(extra))
	for k, v := range l.fields {
		fields[k] = v
	}
	for k, v := range extra {
		fields[k] = v
	}
	out := *l
	out.fields = fields
	return &out
}

// WithField returns a derived logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.clone(map[string]interface{}{key: value})
}

// WithFields returns a derived logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return l.clone(fields)
}

type contextKey string

// RequestIDKey is the context key carrying the transport request id
const RequestIDKey contextKey = "request_id"

// WithContext returns a derived logger carrying the request id from ctx,
// when present
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return l.clone(map[string]interface{}{"request_id": id})
	}
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(message string, args ...interface{}) {
	l.log(DebugLevel, message, args...)
}

// Info logs an info message
func (l *Logger) Info(message string, args ...interface{}) {
	l.log(InfoLevel, message, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, args ...interface{}) {
	l.log(WarnLevel, message, args...)
}

// Error logs an error message
func (l *Logger) Error(message string, args ...interface{}) {
	l.log(ErrorLevel, message, args...)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string, args ...interface{}) {
	l.log(FatalLevel, message, args...)
	os.Exit(1)
}

func (l *Logger) log(level LogLevel, message string, args ...interface{}) {
	if level < l.level {
		return
	}
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   message,
		Service:   l.service,
	}
	if len(l.fields) > 0 {
		fields := make(map[string]interface{}, len(l.fields))
		for k, v := range l.fields {
			if k == "request_id" {
				if s, ok := v.(string); ok {
					entry.RequestID = s
					continue
				}
			}
			fields[k] = v
		}
		if len(fields) > 0 {
			entry.Fields = fields
		}
	}

	switch l.format {
	case JSONFormat:
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.output, "logger: failed to marshal entry: %v\n", err)
			return
		}
		fmt.Fprintln(l.output, string(data))
	default:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s [%s]", entry.Timestamp, entry.Level)
		if entry.Service != "" {
			fmt.Fprintf(&sb, " %s", entry.Service)
		}
		fmt.Fprintf(&sb, " %s", entry.Message)
		if entry.RequestID != "" {
			fmt.Fprintf(&sb, " request_id=%s", entry.RequestID)
		}
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, entry.Fields[k])
		}
		fmt.Fprintln(l.output, sb.String())
	}
}
