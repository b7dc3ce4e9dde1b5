package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. maxLines <= 0
// returns every line. A missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded line of the JSON log.
type Entry struct {
	Time    string
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  map[string]any

	// Raw holds the original line when it is not a JSON object.
	Raw string
}

// Reserved keys written by the logging package's encoder.
const (
	keyTime   = "ts"
	keyLevel  = "level"
	keyLogger = "logger"
	keyMsg    = "msg"
	keyCaller = "caller"
)

// Parse decodes a zap JSON line. Lines that are not JSON objects come back
// with only Raw set and an info level.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Level: zapcore.InfoLevel, Raw: line}
	}

	e := Entry{Level: zapcore.InfoLevel, Fields: map[string]any{}}
	for k, v := range raw {
		switch k {
		case keyTime:
			e.Time = fmt.Sprint(v)
		case keyLevel:
			if s, ok := v.(string); ok {
				if lvl, err := zapcore.ParseLevel(s); err == nil {
					e.Level = lvl
				}
			}
		case keyLogger:
			e.Logger = fmt.Sprint(v)
		case keyMsg:
			e.Message = fmt.Sprint(v)
		case keyCaller:
		default:
			e.Fields[k] = v
		}
	}
	return e
}

// Tail returns the last maxLines entries at or above minLevel.
func Tail(path string, maxLines int, minLevel zapcore.Level) ([]Entry, error) {
	lines, err := Read(path, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := Parse(line)
		if e.Level >= minLevel {
			entries = append(entries, e)
		}
	}
	if maxLines > 0 && len(entries) > maxLines {
		entries = entries[len(entries)-maxLines:]
	}
	return entries, nil
}

var levelStyles = map[zapcore.Level]lipgloss.Style{
	zapcore.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
	zapcore.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
	zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	zapcore.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
}

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	loggerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	fieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// String formats the entry as "time LEVEL logger message key=value ...", with
// fields sorted by key.
func (e Entry) String() string {
	if e.Raw != "" {
		return e.Raw
	}
	return strings.Join(e.parts(false), " ")
}

// Render is String with terminal colors.
func (e Entry) Render() string {
	if e.Raw != "" {
		return e.Raw
	}
	return strings.Join(e.parts(true), " ")
}

func (e Entry) parts(color bool) []string {
	paint := func(s string, style lipgloss.Style) string {
		if !color || s == "" {
			return s
		}
		return style.Render(s)
	}

	level := strings.ToUpper(e.Level.String())
	levelStyle, ok := levelStyles[e.Level]
	if !ok {
		levelStyle = levelStyles[zapcore.ErrorLevel]
	}

	parts := make([]string, 0, 4+len(e.Fields))
	if e.Time != "" {
		parts = append(parts, paint(e.Time, timeStyle))
	}
	parts = append(parts, paint(level, levelStyle))
	if e.Logger != "" {
		parts = append(parts, paint("["+e.Logger+"]", loggerStyle))
	}
	parts = append(parts, e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, paint(fmt.Sprintf("%s=%v", k, e.Fields[k]), fieldStyle))
	}
	return parts
}
