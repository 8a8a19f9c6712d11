package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger уровневый логгер с printf-style методами поверх logrus
type Logger struct {
	entry *logrus.Entry
	file  *os.File
}

// New создает логгер, пишущий в stdout и (если указан) в файл
// level: debug, info, warn, error
func New(file string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetLevel(lvl)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	l := &Logger{}

	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", file, err)
		}
		l.file = f
		out = io.MultiWriter(os.Stdout, f)
	}
	base.SetOutput(out)

	l.entry = logrus.NewEntry(base)
	return l, nil
}

// NewWithWriter создает логгер поверх произвольного writer (удобно для тестов)
func NewWithWriter(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	base := logrus.New()
	base.SetLevel(lvl)
	base.SetOutput(w)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// With возвращает логгер с дополнительным полем
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Close закрывает файл лога, если он был открыт
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}
