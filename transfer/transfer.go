// Package transfer moves byte streams between sockets and files in
// fixed-size chunks.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Flusher is implemented by sinks that buffer, such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Copy reads src in chunks of at most size bytes and writes every byte read
// to dst until src reports io.EOF, then flushes dst once if it is a Flusher.
// Short reads are forwarded as they are. It returns the number of bytes
// written to dst.
func Copy(dst io.Writer, src io.Reader, size int) (int64, error) {
	if size < 1 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			m, werr := dst.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, fmt.Errorf("write chunk: %w", werr)
			}
			if m != n {
				return written, fmt.Errorf("write chunk: %w", io.ErrShortWrite)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return written, fmt.Errorf("read chunk: %w", rerr)
		}
	}

	if f, ok := dst.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return written, fmt.Errorf("flush: %w", err)
		}
	}
	return written, nil
}

// IsPeerGone reports whether the other end went away.
func IsPeerGone(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED)
}
