package log

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a new logger with the specified
// configuration
func New(config *Config) Logger {
	props := LogrusLoggerProperties{
		Level: logrus.WarnLevel,
	}

	switch config.Level {
	case "debug":
		props.Level = logrus.DebugLevel
	case "info":
		props.Level = logrus.InfoLevel
	case "warn":
		props.Level = logrus.WarnLevel
	case "error":
		props.Level = logrus.ErrorLevel
	}

	props.Output = output(config.Output)

	if config.Format == "text" {
		props.Formatter = &logrus.TextFormatter{DisableColors: true}
	}

	return NewLogrus(props)
}

// Discard returns a logger that drops every entry
func Discard() Logger {
	return NewLogrus(LogrusLoggerProperties{
		Level:  logrus.ErrorLevel,
		Output: ioutil.Discard,
	})
}

func output(name string) io.Writer {
	switch name {
	case "stdout":
		return os.Stdout
	case "discard":
		return ioutil.Discard
	default:
		return os.Stderr
	}
}
