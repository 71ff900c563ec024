package testutil

import (
	"sync"
)

// Line levels recorded by BufferIO
const (
	LevelWrite   = "write"
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Line is one recorded diagnostic line
type Line struct {
	Level string
	Msg   string
}

// BufferIO records diagnostic output
type BufferIO struct {
	mu    sync.Mutex
	Lines []Line
}

// NewBufferIO creates an empty recorder
func NewBufferIO() *BufferIO {
	return &BufferIO{}
}

func (b *BufferIO) record(level, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Lines = append(b.Lines, Line{Level: level, Msg: msg})
}

func (b *BufferIO) Write(msg string)   { b.record(LevelWrite, msg) }
func (b *BufferIO) Info(msg string)    { b.record(LevelInfo, msg) }
func (b *BufferIO) Warning(msg string) { b.record(LevelWarning, msg) }

// Warnings returns the recorded warning messages
func (b *BufferIO) Warnings() []string {
	return b.messages(LevelWarning)
}

// Infos returns the recorded info messages
func (b *BufferIO) Infos() []string {
	return b.messages(LevelInfo)
}

func (b *BufferIO) messages(level string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, line := range b.Lines {
		if line.Level == level {
			out = append(out, line.Msg)
		}
	}
	return out
}
