// Package logging provides topic-scoped debug loggers on top of log/slog.
// Topics are enabled via the DEBUG_TOPICS env var, e.g.
// DEBUG_TOPICS=engine,signal or DEBUG_TOPICS=all.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

var enabled map[string]bool

func init() {
	enabled = parseTopics(os.Getenv("DEBUG_TOPICS"))
	if len(enabled) > 0 {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

func parseTopics(raw string) map[string]bool {
	topics := make(map[string]bool)
	if raw == "" {
		return topics
	}
	if raw == "all" {
		topics["*"] = true
		return topics
	}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics[t] = true
		}
	}
	return topics
}

// Logger emits debug logs for a single topic. The disabled path is a single
// bool check so loggers can live on hot paths.
type Logger struct {
	topic string
	on    bool
}

// New returns a logger for the given topic.
func New(topic string) *Logger {
	return &Logger{topic: topic, on: enabled["*"] || enabled[topic]}
}

// Enabled reports whether this topic logs, for guarding expensive arguments.
func (l *Logger) Enabled() bool { return l.on }

// Debug logs at debug level when the topic is enabled.
func (l *Logger) Debug(msg string, args ...any) {
	if !l.on {
		return
	}
	slog.Debug(msg, append([]any{"topic", l.topic}, args...)...)
}

// Info logs at info level when the topic is enabled.
func (l *Logger) Info(msg string, args ...any) {
	if !l.on {
		return
	}
	slog.Info(msg, append([]any{"topic", l.topic}, args...)...)
}
