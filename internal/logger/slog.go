package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName Имя файла лога внутри каталога логов.
const LogFileName = "all.log"

// максимальный размер файла лога в мегабайтах, ротация фактически отключена
const maxLogFileSizeMB = 1 << 20

// SlogAdapter Адаптер для логгера slog.
type SlogAdapter struct {
	slog   *slog.Logger
	output io.Closer
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) {
	s.slog.Debug(msg, convertFields(fields)...)
}

func (s *SlogAdapter) Info(msg string, fields ...Field) {
	s.slog.Info(msg, convertFields(fields)...)
}

func (s *SlogAdapter) Error(msg string, fields ...Field) {
	s.slog.Error(msg, convertFields(fields)...)
}

func (s *SlogAdapter) Warn(msg string, fields ...Field) {
	s.slog.Warn(msg, convertFields(fields)...)
}

// Close Закрывает файл лога, если логирование идёт в файл.
func (s *SlogAdapter) Close() error {
	if s.output == nil {
		return nil
	}

	return s.output.Close()
}

func String(key string, val string) Field {
	return Field{
		Key:   key,
		Value: val,
	}
}

func Int(key string, val int) Field {
	return Field{
		Key:   key,
		Value: strconv.Itoa(val),
	}
}

func Int64(key string, val int64) Field {
	return Field{
		Key:   key,
		Value: strconv.FormatInt(val, 10),
	}
}

// Err Поле с текстом ошибки.
func Err(err error) Field {
	if err == nil {
		return String("err", "")
	}

	return String("err", err.Error())
}

// Конвертация Fields в any[].
func convertFields(fields []Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}

// ParseLevel Переводит строковый уровень логирования в slog.Level.
// Регистр не важен, неизвестный уровень трактуется как Debug.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// New Создаёт логгер с заданным уровнем.
// output: "stdout", "stderr" или путь к каталогу, в котором будет вестись файл all.log.
// Каталог и файл создаются сразу, существующий файл дописывается.
func New(level string, output string) (*SlogAdapter, error) {
	var (
		w      io.Writer
		closer io.Closer
	)

	switch strings.ToLower(output) {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		filename := filepath.Join(output, LogFileName)
		if err := createLogFile(filename); err != nil {
			return nil, err
		}

		file := &lumberjack.Logger{
			Filename: filename,
			MaxSize:  maxLogFileSizeMB,
		}
		w = file
		closer = file
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})

	return &SlogAdapter{
		slog:   slog.New(handler).With("logger", "main"),
		output: closer,
	}, nil
}

// createLogFile Создаёт каталог и пустой файл лога, если их ещё нет.
func createLogFile(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог логов: %w", err)
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл лога: %w", err)
	}

	return f.Close()
}

// NewNop Логгер, который ничего не пишет. Используется в тестах.
func NewNop() *SlogAdapter {
	return &SlogAdapter{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
