package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/2beens/blueprintfitness/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxSizeMB = 50

var sentryHookLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

type LoggerSetupParams struct {
	LogFileName      string
	LogToStdout      bool
	LogLevel         string
	LogFormatJSON    bool
	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	// rotation, zero keeps rotated files forever
	MaxSizeMB  int
	MaxBackups int
}

// Setup configures the global logrus logger. The returned func closes the log
// file, if there is one.
func Setup(params LoggerSetupParams) func() {
	logrus.SetFormatter(newFormatter(params.LogFormatJSON))
	logrus.SetLevel(GetLevel(params.LogLevel))

	out, file := newOutput(params)
	logrus.SetOutput(out)

	if params.SentryEnabled {
		if err := setupSentry(params); err != nil {
			logrus.Errorf("sentry setup: %s", err)
		} else {
			logrus.Infoln("sentry hook installed")
		}
	}

	if file == nil {
		logrus.Debugln("writing logs only to STDOUT")
		return func() {}
	}
	logrus.Debugf("writing logs to [%s], stdout copy: %t", file.Filename, params.LogToStdout)
	return func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %s\n", err)
		}
	}
}

func newFormatter(json bool) logrus.Formatter {
	if json {
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func setupSentry(params LoggerSetupParams) error {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	logrus.AddHook(NewSentryHook(sentryHookLevels))
	return nil
}

// newOutput returns the writer for log entries and the rotating file behind
// it, nil when logging only to stdout.
func newOutput(params LoggerSetupParams) (io.Writer, *lumberjack.Logger) {
	if params.LogFileName == "" {
		return os.Stdout, nil
	}

	maxSize := params.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	file := &lumberjack.Logger{
		Filename:   logFileName(params.LogFileName),
		MaxSize:    maxSize,
		MaxBackups: params.MaxBackups,
		LocalTime:  false, // UTC
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, file), file
	}
	return file, file
}

func logFileName(name string) string {
	if strings.HasSuffix(name, ".log") {
		return name
	}
	return name + ".log"
}

// GetLevel parses the level name case-insensitively. Unknown names log
// everything.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.TraceLevel
	}
	return parsed
}
