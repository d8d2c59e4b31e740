package logutil

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// LogLevel 日志级别，实现了 pflag.Value，可以直接给 cobra 的 VarP 使用
type LogLevel int

// 定义日志级别
const (
	DEBUG LogLevel = iota // 0
	INFO                  // 1
	WARN                  // 2
	ERROR                 // 3
)

// 定义日志级别映射字符串
var LOG_LEVELS = map[string]LogLevel{
	"DEBUG": DEBUG,
	"INFO":  INFO,
	"WARN":  WARN,
	"ERROR": ERROR,
}

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l *LogLevel) String() string {
	if *l < DEBUG || *l > ERROR {
		return fmt.Sprintf("LogLevel(%d)", int(*l))
	}
	return levelNames[*l]
}

func (l *LogLevel) Set(val string) error {
	level, err := ParseLogLevel(val)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l *LogLevel) Type() string {
	return "loglevel"
}

// ParseLogLevel 大小写不敏感
func ParseLogLevel(s string) (LogLevel, error) {
	level, ok := LOG_LEVELS[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return WARN, fmt.Errorf("无效的日志级别: %q (DEBUG/INFO/WARN/ERROR)", s)
	}
	return level, nil
}

var (
	logger       *log.Logger
	logFile      *os.File
	mu           sync.Mutex
	currentLevel = WARN // 默认日志级别，报告本身占用标准输出
)

// InitLogger 初始化日志，允许指定输出目标（stdout、stderr 或 文件）
// 重复调用会关闭之前打开的日志文件
func InitLogger(output string, level LogLevel) error {
	mu.Lock()
	defer mu.Unlock()

	var (
		f   *os.File
		err error
	)
	switch output {
	case "", "stderr":
		f = os.Stderr
	case "stdout":
		f = os.Stdout
	default:
		// 以追加模式打开日志文件，不会覆盖已有内容
		f, err = os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("无法创建日志文件 %s: %w", output, err)
		}
	}

	closeLocked()
	logFile = f
	logger = log.New(logFile, "", log.LstdFlags)
	currentLevel = level
	return nil
}

// logMessage 记录日志，**仅输出符合当前级别的日志**
func logMessage(level LogLevel, msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		logFile = os.Stderr
		logger = log.New(logFile, "", log.LstdFlags)
	}
	if level < currentLevel { // 值越小打印得越多
		return
	}

	_, file, line, _ := runtime.Caller(2) // 获取真正调用的文件+行号
	logger.Printf("[%s:%d] %s", filepath.Base(file), line, fmt.Sprintf(msg, args...))
}

// Enabled 判断某个级别当前是否会输出，避免构造昂贵的调试内容
func Enabled(level LogLevel) bool {
	mu.Lock()
	defer mu.Unlock()
	return level >= currentLevel
}

// Info 记录 INFO 日志
func Info(msg string, args ...any) {
	logMessage(INFO, "[INFO] "+msg, args...)
}

// Warn 记录 WARN 日志
func Warn(msg string, args ...any) {
	logMessage(WARN, "[WARN] "+msg, args...)
}

// Error 记录 ERROR 日志
func Error(msg string, args ...any) {
	logMessage(ERROR, "[ERR] "+msg, args...)
}

// Debug 记录 DEBUG 日志
func Debug(msg string, args ...any) {
	// 确保参数被展开在传入进去
	logMessage(DEBUG, "[DBG] "+msg, args...)
}

// 关闭日志文件（如果有的话）
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	if logFile == nil || logFile == os.Stdout || logFile == os.Stderr {
		return nil
	}
	err := logFile.Close()
	logFile = os.Stderr
	logger = log.New(logFile, "", log.LstdFlags)
	return err
}
