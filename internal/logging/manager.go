package logging

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// Component подсистема генератора со своим файлом лога
type Component string

const (
	ComponentDungeon Component = "dungeon" // генерация уровней
	ComponentWorld   Component = "world"   // миры, переходы, хранилище
	ComponentAPI     Component = "api"     // REST предпросмотра
)

// Components все подсистемы
var Components = []Component{ComponentDungeon, ComponentWorld, ComponentAPI}

// componentSet открытые логгеры подсистем. Логгер открывается при первом обращении.
type componentSet struct {
	mu      sync.Mutex
	loggers map[Component]*Logger
	console LogLevel
	file    LogLevel
}

func newComponentSet() *componentSet {
	return &componentSet{
		loggers: make(map[Component]*Logger),
		console: INFO,
		file:    DEBUG,
	}
}

var components = newComponentSet()

func (cs *componentSet) get(c Component) *Logger {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if l, ok := cs.loggers[c]; ok {
		return l
	}

	l, err := NewLogger(string(c))
	if err != nil {
		// Каталог логов недоступен: пишем только в консоль
		l = &Logger{component: string(c), consoleLogger: log.New(consoleOut, "", log.LstdFlags)}
		l.consoleLogger.Printf("[WARN] [%s] file log disabled: %v", c, err)
	}
	l.SetLevels(cs.console, cs.file)
	cs.loggers[c] = l
	return l
}

func (cs *componentSet) setLevels(console, file LogLevel) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.console, cs.file = console, file
	for _, l := range cs.loggers {
		l.SetLevels(console, file)
	}
}

func (cs *componentSet) close() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	var errs []error
	for c, l := range cs.loggers {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s log: %w", c, err))
		}
	}
	cs.loggers = make(map[Component]*Logger)
	return errors.Join(errs...)
}

// For логгер подсистемы
func For(c Component) *Logger {
	return components.get(c)
}

// SetComponentLevels задаёт уровни всем подсистемам, в том числе ещё не открытым
func SetComponentLevels(console, file LogLevel) {
	components.setLevels(console, file)
}

// CloseComponents закрывает файлы подсистем. Следующий For откроет новый файл.
func CloseComponents() error {
	return components.close()
}

func GetDungeonLogger() *Logger { return For(ComponentDungeon) }
func GetWorldLogger() *Logger   { return For(ComponentWorld) }
func GetAPILogger() *Logger     { return For(ComponentAPI) }
