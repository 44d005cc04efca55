package common

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// LogLevel 日志级别
type LogLevel string

// 支持的日志级别
const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// 运行环境
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

func (p LogLevel) zapLevel() (zapcore.Level, bool) {
	switch LogLevel(strings.ToLower(string(p))) {
	case Debug:
		return zapcore.DebugLevel, true
	case Info:
		return zapcore.InfoLevel, true
	case Warn:
		return zapcore.WarnLevel, true
	case Error:
		return zapcore.ErrorLevel, true
	}
	return zapcore.InfoLevel, false
}

// Logger 日志接口
type Logger interface {
	Debugf(format string, params ...interface{})
	Infof(format string, params ...interface{})
	Warnf(format string, params ...interface{})
	Errorf(format string, params ...interface{})

	DebugEnabled() bool
	InfoEnabled() bool
	WarnEnabled() bool
	ErrorEnabled() bool

	SetLevel(level LogLevel)
	Sync()
}

var (
	loggerLock sync.RWMutex
	logger     Logger = NewZapLogger(&LogConfig{})
)

func currentLogger() Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}

// SetLogger 替换全局的Logger,旧的Logger会先Sync
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	loggerLock.Lock()
	defer loggerLock.Unlock()
	if logger != nil {
		logger.Sync()
	}
	logger = l
}

func initLogger(conf *LogConfig) error {
	if conf == nil {
		return nil
	}
	SetLogger(NewZapLogger(conf))
	return nil
}

// Debugf debug
func Debugf(format string, params ...interface{}) {
	currentLogger().Debugf(format, params...)
}

// Infof info
func Infof(format string, params ...interface{}) {
	currentLogger().Infof(format, params...)
}

// Warnf warn
func Warnf(format string, params ...interface{}) {
	currentLogger().Warnf(format, params...)
}

// Errorf error
func Errorf(format string, params ...interface{}) {
	currentLogger().Errorf(format, params...)
}

// Logf 按照level记录日志,未知的level按Info处理
func Logf(level LogLevel, format string, params ...interface{}) {
	l := currentLogger()
	switch level {
	case Debug:
		l.Debugf(format, params...)
	case Warn:
		l.Warnf(format, params...)
	case Error:
		l.Errorf(format, params...)
	default:
		l.Infof(format, params...)
	}
}

// SetLogLevel 设置全局Logger的日志级别,无效的level会被忽略
func SetLogLevel(level LogLevel) {
	currentLogger().SetLevel(level)
}

// DebugEnabled is debug enabled
func DebugEnabled() bool {
	return currentLogger().DebugEnabled()
}

// InfoEnabled is info enabled
func InfoEnabled() bool {
	return currentLogger().InfoEnabled()
}

// WarnEnabled is warn enabled
func WarnEnabled() bool {
	return currentLogger().WarnEnabled()
}

// ErrorEnabled is error enabled
func ErrorEnabled() bool {
	return currentLogger().ErrorEnabled()
}

// SyncLogger flush日志
func SyncLogger() {
	currentLogger().Sync()
}
