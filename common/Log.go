package common

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const ServiceName = "flyerboard"

type LogConfig struct {
	Level  string
	Format string
	File   string
}

// InitLogging configures the standard logrus logger. When File is set,
// output also goes to a size-rotated file.
func InitLogging(config LogConfig) error {
	logger := logrus.StandardLogger()

	level := logrus.InfoLevel
	if config.Level != "" {
		parsed, err := logrus.ParseLevel(config.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	logger.SetLevel(level)

	if strings.EqualFold(config.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	var out io.Writer = os.Stdout
	if config.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	logger.ReplaceHooks(logrus.LevelHooks{})
	logger.AddHook(&DefaultFieldsHook{})
	return nil
}

type DefaultFieldsHook struct {
}

func (hook *DefaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *DefaultFieldsHook) Fire(e *logrus.Entry) error {
	e.Data["serviceName"] = ServiceName
	e.Data["serviceInstance"] = GetServiceInstance()
	return nil
}

// GetServiceInstance identifies this process: the hostname, or "unknown".
func GetServiceInstance() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "unknown"
	}
	return hostname
}
