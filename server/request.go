package server

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// MaxRequestLine bounds the request line, terminator included.
const MaxRequestLine = 8 << 10

var (
	ErrEmptyRequest     = errors.New("connection closed before a request line")
	ErrLineTooLong      = errors.New("request line too long")
	ErrMalformedRequest = errors.New("malformed request line")
	ErrUnknownMethod    = errors.New("unknown method")
)

type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodUpload
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodUpload:
		return "UPLOAD"
	default:
		return "UNKNOWN"
	}
}

type Request struct {
	Method Method
	Target string // resource path for GET, file name for UPLOAD; not validated
	Raw    string // the line as received, without its terminator
}

// ParseRequest classifies one request line. On ErrMalformedRequest the
// returned Method still says which command was attempted.
func ParseRequest(line string) (Request, error) {
	req := Request{Raw: line}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return req, ErrMalformedRequest
	}

	switch fields[0] {
	case "GET":
		req.Method = MethodGet
		if len(fields) < 2 {
			return req, ErrMalformedRequest
		}
	case "UPLOAD":
		req.Method = MethodUpload
		if len(fields) != 2 {
			return req, ErrMalformedRequest
		}
	default:
		return req, ErrUnknownMethod
	}
	req.Target = fields[1]
	return req, nil
}

// readRequestLine reads up to and including the first '\n'. A final line
// without a terminator is accepted when the peer closes after sending it.
func readRequestLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		return "", ErrLineTooLong
	case errors.Is(err, io.EOF):
		if len(line) == 0 {
			return "", ErrEmptyRequest
		}
	case err != nil:
		return "", err
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}
