package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// FlushingWriter serializes writes and flushes buffered writers after each one
// so progress lines appear while a long sfdx step is still running.
// It satisfies zapcore.WriteSyncer.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

// NewFlushingWriter wraps writer. Already wrapped writers are returned unchanged.
func NewFlushingWriter(writer io.Writer) *FlushingWriter {
	if existingWriter, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return existingWriter
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return len(data), nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if flushableWriter, canFlush := flushingWriter.writer.(flusher); canFlush {
		return bytesWritten, flushableWriter.Flush()
	}
	return bytesWritten, nil
}

// Sync flushes and syncs the underlying writer when it supports either operation.
func (flushingWriter *FlushingWriter) Sync() error {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	if flushableWriter, canFlush := flushingWriter.writer.(flusher); canFlush {
		if flushError := flushableWriter.Flush(); flushError != nil {
			return flushError
		}
	}
	if syncableWriter, canSync := flushingWriter.writer.(syncer); canSync {
		return syncableWriter.Sync()
	}
	return nil
}
