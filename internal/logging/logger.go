package logging

import (
	"os"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// NewLogger creates a logger writing to stderr at level, and also to file when set.
func NewLogger(level, file string) arbor.ILogger {
	if level == "" {
		level = "info"
	}
	l := arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		Writer:     os.Stderr,
		TimeFormat: timeFormat,
	})
	if file != "" {
		l = l.WithFileWriter(models.WriterConfiguration{
			Type:       models.LogWriterTypeFile,
			FileName:   file,
			MaxSize:    5 * 1024 * 1024,
			MaxBackups: 5,
			TimeFormat: timeFormat,
		})
	}
	return l.WithLevelFromString(level)
}

// discardWriter keeps a silent logger from falling through to globally registered writers.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// NewSilentLogger discards everything.
func NewSilentLogger() arbor.ILogger {
	return arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})
}
