package log

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kmorozov/bibliotek/config"
)

func init() {
	config.GetDefaultOptions()
}

// The log file should be rotated when it reaches the maximum size.
func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "bibliotek.log")

	rotationLog := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     1, // days
	}
	defer rotationLog.Close()
	logger := newZap(rotationLog)
	defer logger.Sync()

	oneMegabyte := 1024 * 1024
	// Writing a full megabyte forces a rotation before the next entry.
	rotationLog.Write(make([]byte, oneMegabyte))
	logger.Info("this entry should land in a fresh file")

	fileInfo, err := os.Stat(filename)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Size() > int64(oneMegabyte) {
		t.Fatalf("file size %d is greater than expected %d", fileInfo.Size(), oneMegabyte)
	}
}
