//go:build !unix && !windows

package shm

import (
	"errors"
	"os"
)

var errUnsupported = errors.New("memory mapping is not supported on this platform")

func mmapFile(_ *os.File, _ int64, _ bool) ([]byte, error) {
	return nil, errUnsupported
}

func munmapFile(_ []byte) error {
	return errUnsupported
}
