// Package shm maps files into memory so that several processes can view the
// same bytes through arrays.
//
// A Segment is managed independently of any array built on it: it can be
// opened, handed to memory.Adopt as borrowed storage, and closed once no view
// needs it. Alternatively Owned transfers the mapping to a reference-counted
// block that unmaps it when the last view is released.
//
// The bytes are raw; no header or format is imposed on the file.
package shm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/born-ml/dope/internal/memory"
)

// Common errors.
var (
	ErrClosed      = errors.New("segment is closed")
	ErrInvalidSize = errors.New("invalid segment size")
	ErrTransferred = errors.New("segment ownership transferred to a block")
)

// Segment is a memory-mapped file.
type Segment struct {
	mu          sync.Mutex
	file        *os.File
	data        []byte // mmap'd region
	writable    bool
	closed      bool
	transferred bool
}

// Create creates (or truncates) the file at path to size bytes and maps it read-write.
func Create(path string, size int) (*Segment, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	//nolint:gosec // G304: caller-supplied path
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if err := file.Truncate(int64(size)); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to size file: %w", err)
	}
	return mapFile(file, int64(size), true)
}

// Open maps an existing file. Read-only segments must only be viewed through
// read-only arrays; writing to them faults.
func Open(path string, writable bool) (*Segment, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}

	//nolint:gosec // G304: caller-supplied path
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() <= 0 {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidSize, path)
	}
	return mapFile(file, stat.Size(), writable)
}

func mapFile(file *os.File, size int64, writable bool) (*Segment, error) {
	// Memory map the file (platform-specific implementation)
	data, err := mmapFile(file, size, writable)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	return &Segment{file: file, data: data, writable: writable}, nil
}

// Size returns the mapped size in bytes.
func (s *Segment) Size() int {
	return len(s.data)
}

// Writable reports whether the mapping accepts writes.
func (s *Segment) Writable() bool {
	return s.writable
}

// Block returns a borrowed block over the mapping. The segment must stay open
// while any view built on the block is in use.
func (s *Segment) Block() (*memory.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return memory.Adopt(s.data), nil
}

// Owned hands the mapping over to an owned block: the segment is closed when
// the block's last handle is released. After Owned, Close is a no-op.
func (s *Segment) Owned() (*memory.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.transferred {
		return nil, ErrTransferred
	}
	s.transferred = true
	return memory.Own(s.data, func() {
		if err := s.close(); err != nil {
			memory.Logger().Warn("failed to close segment", zap.String("file", s.file.Name()), zap.Error(err))
		}
	}), nil
}

// Close unmaps the segment and closes the file.
func (s *Segment) Close() error {
	s.mu.Lock()
	transferred := s.transferred
	s.mu.Unlock()
	if transferred {
		return nil
	}
	return s.close()
}

func (s *Segment) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.data != nil {
		err = munmapFile(s.data)
		s.data = nil
	}

	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
