package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOption 日志初始化参数
type LogOption struct {
	Format   string // console / json，默认 console
	LogDir   string // 为空时只输出到 stderr
	Level    string // debug / info / warn / error，默认 info
	Compress bool   // 是否压缩滚动后的旧文件
}

const (
	logFileName   = "decoder.log"
	maxSizeMB     = 100
	maxBackups    = 10
	maxAgeDays    = 7
	callerSkip    = 1
	defaultFormat = "console"
)

var (
	mu     sync.RWMutex
	sugar  = zap.NewNop().Sugar()
	closer func() error
)

// InitLogger 按配置初始化全局日志。可重复调用，后一次覆盖前一次。
func InitLogger(opt LogOption) error {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
	if err != nil || opt.Level == "" {
		level = zapcore.InfoLevel
	}

	encoder := newEncoder(opt.Format)
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	var roller *lumberjack.Logger
	if opt.LogDir != "" {
		if err := os.MkdirAll(opt.LogDir, 0o755); err != nil {
			return err
		}
		roller = &lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, logFileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   opt.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(roller), level))
	}

	l := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	mu.Lock()
	old := closer
	sugar = l.Sugar()
	closer = func() error {
		_ = l.Sync()
		if roller != nil {
			return roller.Close()
		}
		return nil
	}
	mu.Unlock()

	if old != nil {
		_ = old()
	}
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	if format == "" {
		format = defaultFormat
	}
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debugf(template string, args ...interface{}) {
	current().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	current().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	current().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	current().Errorf(template, args...)
}

// Infow 结构化字段日志，keysAndValues 成对出现
func Infow(msg string, keysAndValues ...interface{}) {
	current().Infow(msg, keysAndValues...)
}

// Sync 刷新缓冲并关闭日志文件，进程退出前调用
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	sugar = zap.NewNop().Sugar()
	return err
}
