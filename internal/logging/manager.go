package logging

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// LoggerManager хранит логгеры по компонентам и переопределения их уровней.
// Переопределение можно задать до создания логгера: оно применится при создании.
type LoggerManager struct {
	mu        sync.RWMutex
	loggers   map[string]*Logger
	overrides map[string]LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

func newLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers:   make(map[string]*Logger),
		overrides: make(map[string]LogLevel),
	}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() { globalManager = newLoggerManager() })
	return globalManager
}

// GetLogger возвращает логгер компонента, создавая его при первом обращении
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
		return nil, fmt.Errorf("логгер %s: %w", component, err)
	}
	if level, ok := lm.overrides[component]; ok {
		logger.setLevels(level, logger.fileLevel())
	}
	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер, а при ошибке - консольный логгер без файла
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err == nil {
		return logger
	}
	fallback := &Logger{
		component:       component,
		consoleLogger:   defaultLogger.consoleLogger,
		minConsoleLevel: INFO,
		minFileLevel:    ERROR,
	}
	fallback.Warn("Файловый вывод недоступен: %v", err)
	return fallback
}

// SetLogLevel задаёт консольный уровень компонента. Уже созданный логгер
// переключается сразу, ещё не созданный получит уровень при создании.
func (lm *LoggerManager) SetLogLevel(component string, level LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.overrides[component] = level
	if logger, ok := lm.loggers[component]; ok {
		logger.setLevels(level, logger.fileLevel())
	}
}

// ApplyLevels разбирает уровни вида {"render": "debug"} и применяет их.
// Компоненты с ошибочным уровнем пропускаются, ошибки возвращаются разом.
func (lm *LoggerManager) ApplyLevels(levels map[string]string) error {
	var errs []error
	for component, name := range levels {
		level, err := ParseLevel(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", component, err))
			continue
		}
		lm.SetLogLevel(component, level)
	}
	return errors.Join(errs...)
}

// ListComponents возвращает имена созданных логгеров по алфавиту
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

// CloseAll закрывает файлы всех логгеров и забывает их
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("закрытие логгера %s: %w", component, err))
		}
	}
	lm.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

// GetComponentLogger возвращает логгер компонента из глобального менеджера
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

// GetWorldGenLogger возвращает логгер конвейера генерации мира
func GetWorldGenLogger() *Logger {
	return GetComponentLogger("worldgen")
}

// GetRenderLogger возвращает логгер выбора чанков для рендера
func GetRenderLogger() *Logger {
	return GetComponentLogger("render")
}
