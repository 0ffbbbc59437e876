package logging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2beens/blueprintfitness/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	for level, want := range map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"ERROR":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"Info":    logrus.InfoLevel,
		"trace":   logrus.TraceLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"panic":   logrus.PanicLevel,
		"":        logrus.TraceLevel,
		"loud":    logrus.TraceLevel,
	} {
		assert.Equal(t, want, GetLevel(level), level)
	}
}

func TestSetup_FileAndStdout(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	logPath := filepath.Join(t.TempDir(), "service")
	closeLogs := Setup(LoggerSetupParams{
		LogFileName: logPath,
		LogToStdout: true,
		LogLevel:    "debug",
	})

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.Info("hello from the test")

	closeLogs()

	content, err := os.ReadFile(logPath + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the test")
}

func TestNewOutput(t *testing.T) {
	out, file := newOutput(LoggerSetupParams{})
	assert.Equal(t, os.Stdout, out)
	assert.Nil(t, file)

	dir := t.TempDir()
	out, file = newOutput(LoggerSetupParams{LogFileName: filepath.Join(dir, "api.log"), MaxBackups: 3})
	require.NotNil(t, file)
	assert.Same(t, file, out)
	assert.Equal(t, filepath.Join(dir, "api.log"), file.Filename)
	assert.Equal(t, defaultMaxSizeMB, file.MaxSize)
	assert.Equal(t, 3, file.MaxBackups)

	out, file = newOutput(LoggerSetupParams{LogFileName: filepath.Join(dir, "api"), LogToStdout: true, MaxSizeMB: 5})
	require.NotNil(t, file)
	assert.Equal(t, filepath.Join(dir, "api.log"), file.Filename)
	assert.Equal(t, 5, file.MaxSize)
	combined, ok := out.(*pkg.CombinedWriter)
	require.True(t, ok)
	assert.Len(t, combined.Writers, 2)
}

func TestNewFormatter(t *testing.T) {
	_, isJSON := newFormatter(true).(*logrus.JSONFormatter)
	assert.True(t, isJSON)
	_, isText := newFormatter(false).(*logrus.TextFormatter)
	assert.True(t, isText)
}

type transportMock struct {
	events []*sentry.Event
}

func (t *transportMock) Flush(_ time.Duration) bool { return true }
func (t *transportMock) FlushWithContext(_ context.Context) bool { return true }
func (t *transportMock) Configure(_ sentry.ClientOptions) {}
func (t *transportMock) SendEvent(event *sentry.Event) { t.events = append(t.events, event) }
func (t *transportMock) Close() {}

func TestSentryHook_Fire(t *testing.T) {
	transport := &transportMock{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel}).WithHub(hub)
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.AddHook(hook)

	cause := errors.New("state mismatch")
	logger.WithError(fmt.Errorf("progress: %w", cause)).
		WithField("scheme", "pyramidal").
		Error("progress failed")
	logger.Warn("not forwarded")

	require.Len(t, transport.events, 1)
	event := transport.events[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "progress failed", event.Message)
	assert.Equal(t, "pyramidal", event.Extra["scheme"])
	require.Len(t, event.Exception, 1)
	assert.Equal(t, "*errors.errorString", event.Exception[0].Type)
	assert.Equal(t, "progress: state mismatch", event.Exception[0].Value)
}

func TestSentryHook_NoClient(t *testing.T) {
	hook := NewSentryHook(logrus.AllLevels).WithHub(sentry.NewHub(nil, sentry.NewScope()))
	assert.NoError(t, hook.Fire(logrus.NewEntry(logrus.New())))
}
