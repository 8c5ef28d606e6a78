package logging

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Имена компонентов. Каждый получает дочерний zap-логгер с этим именем
// (поле "logger" в JSON).
const (
	ComponentWorld    = "world"
	ComponentWorldGen = "worldgen"
	ComponentLoader   = "loader"
	ComponentDebugAPI = "debugapi"
	ComponentMain     = "main"
)

// LoggerManager кэширует логгеры компонентов. Все они построены от
// общего zap-ядра, созданного InitLogger, и держат собственный AtomicLevel.
type LoggerManager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{loggers: make(map[string]*Logger)}
	})
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его от текущего ядра.
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	logger, ok := lm.loggers[component]
	lm.mu.RUnlock()
	if ok {
		return logger, nil
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()
	if logger, ok := lm.loggers[component]; ok {
		return logger, nil
	}

	logger, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("logger %q: %w", component, err)
	}
	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger не возвращает ошибку: если дочерний логгер создать нельзя,
// пишет через глобальный с полем component.
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		return current().With(zap.String("component", component))
	}
	return logger
}

// Reset сбрасывает буферы всех логгеров и забывает их. Следующий запрос
// создаст логгер заново от актуального ядра.
func (lm *LoggerManager) Reset() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sync logger %q: %w", component, err))
		}
	}
	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

// ListComponents возвращает отсортированные имена созданных логгеров
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel меняет AtomicLevel компонента на лету. Уровень ниже заданного
// в InitLogger ничего не добавит: такие записи отсекает общее ядро.
func (lm *LoggerManager) SetLogLevel(component string, level LogLevel) error {
	lm.mu.RLock()
	logger, ok := lm.loggers[component]
	lm.mu.RUnlock()

	if !ok {
		return fmt.Errorf("logger %q not found", component)
	}
	logger.SetLevel(level)
	return nil
}

func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetWorldLogger() *Logger    { return GetComponentLogger(ComponentWorld) }
func GetWorldGenLogger() *Logger { return GetComponentLogger(ComponentWorldGen) }
func GetLoaderLogger() *Logger   { return GetComponentLogger(ComponentLoader) }
func GetDebugAPILogger() *Logger { return GetComponentLogger(ComponentDebugAPI) }
func GetMainLogger() *Logger     { return GetComponentLogger(ComponentMain) }
