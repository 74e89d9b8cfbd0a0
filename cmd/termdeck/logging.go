package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/termdeck/config"
)

// setupLogging points the std logger at a size-rotated file, or discards
// output when disabled. Terminal output is never used since the screen owns it
func setupLogging(lc config.LogConfig) *os.File {
	if !lc.Enabled {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(lc.Dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(lc.Dir, lc.File)
	maxSize := int64(lc.MaxSizeMB) << 20

	if info, err := os.Stat(logPath); err == nil && info.Size() > maxSize {
		ext := filepath.Ext(lc.File)
		base := lc.File[:len(lc.File)-len(ext)]
		rotated := filepath.Join(lc.Dir, fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405"), ext))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("termdeck started, pid %d", os.Getpid())
	return f
}
