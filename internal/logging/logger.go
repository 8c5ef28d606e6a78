package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/annel0/voxel-engine/internal/config"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из конфигурации. Неизвестные значения дают INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TRACE
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// zapLevel отображает уровень на zap. У zap нет TRACE, он пишется как debug.
func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger логгер компонента поверх zap
type Logger struct {
	component string
	zl        *zap.Logger
	level     zap.AtomicLevel
	minLevel  LogLevel
}

var (
	globalMu     sync.RWMutex
	globalLogger = newNopLogger()
	baseLevel    = INFO
)

func newNopLogger() *Logger {
	return &Logger{zl: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.InfoLevel), minLevel: INFO}
}

// NewNop возвращает логгер, который ничего не пишет. Удобен в тестах.
func NewNop() *Logger {
	return newNopLogger()
}

func buildZap(cfg config.LoggingConfig, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = level
	if cfg.File != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.File)
	}

	return zapCfg.Build()
}

// InitLogger инициализирует систему логирования
func InitLogger(cfg config.LoggingConfig) error {
	minLevel := ParseLevel(cfg.Level)
	level := zap.NewAtomicLevelAt(minLevel.zapLevel())

	zl, err := buildZap(cfg, level)
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}

	globalMu.Lock()
	globalLogger = &Logger{zl: zl, level: level, minLevel: minLevel}
	baseLevel = minLevel
	globalMu.Unlock()

	// Логгеры компонентов, созданные до инициализации, пересоздаются от нового ядра.
	return GetLoggerManager().Reset()
}

// CloseLogger сбрасывает буферы глобального логгера
func CloseLogger() {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	_ = l.Sync()
}

func current() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewLogger создаёт логгер компонента, наследующий вывод глобального.
func NewLogger(component string) (*Logger, error) {
	if component == "" {
		return nil, fmt.Errorf("пустое имя компонента")
	}

	globalMu.RLock()
	base, minLevel := globalLogger, baseLevel
	globalMu.RUnlock()

	level := zap.NewAtomicLevelAt(minLevel.zapLevel())
	zl := base.zl.Named(component).WithOptions(zap.IncreaseLevel(level))
	return &Logger{component: component, zl: zl, level: level, minLevel: minLevel}, nil
}

func (l *Logger) enabled(level LogLevel) bool {
	return level >= l.minLevel && l.zl.Core().Enabled(level.zapLevel())
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch level {
	case TRACE:
		l.zl.Debug(msg, zap.Bool("trace", true))
	case DEBUG:
		l.zl.Debug(msg)
	case INFO:
		l.zl.Info(msg)
	case WARN:
		l.zl.Warn(msg)
	default:
		l.zl.Error(msg)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) { l.log(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// With возвращает логгер с постоянными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{component: l.component, zl: l.zl.With(fields...), level: l.level, minLevel: l.minLevel}
}

// Zap отдаёт нижележащий zap.Logger для структурированных записей.
func (l *Logger) Zap() *zap.Logger { return l.zl }

func (l *Logger) Component() string { return l.component }

// SetLevel меняет минимальный уровень компонента. Уровень ниже глобального
// не действует: записи отфильтрует общее ядро.
func (l *Logger) SetLevel(level LogLevel) {
	l.minLevel = level
	l.level.SetLevel(level.zapLevel())
}

func (l *Logger) Level() LogLevel { return l.minLevel }

// Sync сбрасывает буферы.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// Close для совместимости с LoggerManager.
func (l *Logger) Close() error {
	_ = l.Sync()
	return nil
}

// LogTrace логирует сообщение уровня TRACE
func LogTrace(format string, args ...interface{}) {
	current().log(TRACE, format, args...)
}

// LogDebug логирует сообщение уровня DEBUG
func LogDebug(format string, args ...interface{}) {
	current().log(DEBUG, format, args...)
}

// LogInfo логирует сообщение уровня INFO
func LogInfo(format string, args ...interface{}) {
	current().log(INFO, format, args...)
}

// LogWarn логирует сообщение уровня WARN
func LogWarn(format string, args ...interface{}) {
	current().log(WARN, format, args...)
}

// LogError логирует сообщение уровня ERROR
func LogError(format string, args ...interface{}) {
	current().log(ERROR, format, args...)
}
