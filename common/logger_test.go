package common

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	SetLogLevel(Debug)
	Debugf("this is a test")
	assert.True(t, DebugEnabled())
	assert.True(t, InfoEnabled())
	SetLogLevel(Info)
	assert.False(t, DebugEnabled())
	assert.True(t, InfoEnabled())
	Debugf("this is a test, no debug")
	Infof("this is a test, info")
	SetLogLevel("")
	assert.False(t, DebugEnabled())
	assert.True(t, InfoEnabled())
	Infof("this is a test, no level")
	Logf(Warn, "The is a test, warn")
	SetLogLevel(Error)
	assert.False(t, DebugEnabled())
	assert.False(t, InfoEnabled())
	assert.False(t, WarnEnabled())
	assert.True(t, ErrorEnabled())
	Infof("this is a test, no error")
	Errorf("this is a test, error")
	SetLogLevel(Debug)
}

func TestLogLevelParse(t *testing.T) {
	_, ok := LogLevel("WARN").zapLevel()
	assert.True(t, ok)
	_, ok = LogLevel("verbose").zapLevel()
	assert.False(t, ok)
}

func TestZapLoggerFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(&LogConfig{Env: EnvProduction, FileName: fileName, MaxSize: 1})
	assert.False(t, l.DebugEnabled())
	l.Infof("hello %s", "file")
	l.Sync()

	content, err := os.ReadFile(fileName)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "hello file")
}

func TestZapLoggerJSON(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "app.json")
	l := NewZapLogger(&LogConfig{Env: EnvProduction, Format: FormatJSON, FileName: fileName, Level: "warn", NoCaller: true})
	l.Infof("dropped")
	l.Warnf("store %s down", "redis")
	l.SetLevel("verbose")
	assert.True(t, l.WarnEnabled())
	assert.False(t, l.InfoEnabled())
	l.Sync()

	content, err := os.ReadFile(fileName)
	assert.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(content), []byte("\n"))
	assert.Len(t, lines, 1)

	var entry map[string]interface{}
	assert.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "store redis down", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.NotContains(t, entry, "caller")
}
