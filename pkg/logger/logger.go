package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	return [...]string{"DEBUG", "INFO", "WARN", "ERROR"}[l]
}

var (
	mu       sync.Mutex
	minLevel = LevelInfo
	out      = color.Output
	errOut   = color.Error

	tags = map[Level]*color.Color{
		LevelDebug: color.New(color.FgMagenta),
		LevelInfo:  color.New(color.FgCyan),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed, color.Bold),
	}
)

// * SetLevel sets the lowest level that will be written
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// * SetOutput redirects every level to w. Used by tests and the CLI.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	errOut = w
}

func Debug(format string, args ...any) { write(LevelDebug, format, args...) }

func Info(format string, args ...any) { write(LevelInfo, format, args...) }

func Warn(format string, args ...any) { write(LevelWarn, format, args...) }

func Error(format string, args ...any) { write(LevelError, format, args...) }

func write(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel {
		return
	}

	w := out
	if level >= LevelWarn {
		w = errOut
	}

	fmt.Fprintf(w, "%s %s %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		tags[level].Sprintf("[%s]", level),
		fmt.Sprintf(format, args...),
	)
}

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}
