package common

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志输出格式
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// 全局函数 -> ZapLogger -> SugaredLogger
const zapCallerSkip = 2

// ZapLogger 使用zap封装的logger,级别可以在运行时修改
type ZapLogger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger 根据日志配置创建zap logger
func NewZapLogger(conf *LogConfig) *ZapLogger {
	level := zapAtomicLevel(conf)
	core := zapcore.NewCore(zapEncoder(conf), zapWriter(conf), level)

	var opts []zap.Option
	if !conf.NoCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(zapCallerSkip))
	}
	return &ZapLogger{level: level, sugar: zap.New(core, opts...).Sugar()}
}

// production环境默认info级别,其他环境默认debug级别;Level有效时优先
func zapAtomicLevel(conf *LogConfig) zap.AtomicLevel {
	l := zapcore.DebugLevel
	if conf.Env == EnvProduction {
		l = zapcore.InfoLevel
	}
	if zapl, ok := LogLevel(conf.Level).zapLevel(); ok {
		l = zapl
	}
	return zap.NewAtomicLevelAt(l)
}

func zapEncoder(conf *LogConfig) zapcore.Encoder {
	var encoderConf zapcore.EncoderConfig
	if conf.Env == EnvProduction {
		encoderConf = zap.NewProductionEncoderConfig()
		encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encoderConf = zap.NewDevelopmentEncoderConfig()
	}
	if conf.Format == FormatJSON {
		return zapcore.NewJSONEncoder(encoderConf)
	}
	return zapcore.NewConsoleEncoder(encoderConf)
}

// FileName为空时输出到stderr,否则由lumberjack按大小滚动
func zapWriter(conf *LogConfig) zapcore.WriteSyncer {
	if conf.FileName == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.FileName,
		MaxSize:    conf.MaxSize,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAge,
		LocalTime:  true,
	})
}

func (l *ZapLogger) Debugf(format string, params ...interface{}) { l.sugar.Debugf(format, params...) }
func (l *ZapLogger) Infof(format string, params ...interface{})  { l.sugar.Infof(format, params...) }
func (l *ZapLogger) Warnf(format string, params ...interface{})  { l.sugar.Warnf(format, params...) }
func (l *ZapLogger) Errorf(format string, params ...interface{}) { l.sugar.Errorf(format, params...) }

func (l *ZapLogger) DebugEnabled() bool { return l.level.Enabled(zapcore.DebugLevel) }
func (l *ZapLogger) InfoEnabled() bool  { return l.level.Enabled(zapcore.InfoLevel) }
func (l *ZapLogger) WarnEnabled() bool  { return l.level.Enabled(zapcore.WarnLevel) }
func (l *ZapLogger) ErrorEnabled() bool { return l.level.Enabled(zapcore.ErrorLevel) }

// SetLevel 修改日志级别,无效的level被忽略
func (l *ZapLogger) SetLevel(level LogLevel) {
	if zapl, ok := level.zapLevel(); ok {
		l.level.SetLevel(zapl)
	}
}

// Sync flush缓冲的日志
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}
