// Package server implements the per-connection side of the file exchange:
// one request line, one GET or UPLOAD exchange, then close.
package server

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/Amanch200309/Distributed_systems/fileexchange/config"
	"github.com/Amanch200309/Distributed_systems/fileexchange/listing"
	"github.com/Amanch200309/Distributed_systems/fileexchange/response"
	"github.com/Amanch200309/Distributed_systems/fileexchange/transcript"
	"github.com/Amanch200309/Distributed_systems/fileexchange/transfer"
)

type Server struct {
	cfg    config.Config
	sink   transcript.Sink
	logger *log.Logger
	now    func() time.Time

	// swapped in tests to simulate filesystem failures
	renderDir func(dir, urlPath string) ([]byte, error)
	openFile  func(name string) (*os.File, error)
}

// New returns a Server for cfg. A nil sink discards the transcript and a nil
// logger means log.Default().
func New(cfg config.Config, sink transcript.Sink, logger *log.Logger) *Server {
	if sink == nil {
		sink = transcript.Discard
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:       cfg,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
		renderDir: listing.Render,
		openFile:  os.Open,
	}
}

// Serve handles exactly one request on conn and closes it on every path.
// Errors are logged here and never returned to the acceptor.
func (s *Server) Serve(conn net.Conn) {
	defer conn.Close()

	r := bufio.NewReaderSize(conn, MaxRequestLine)
	w := bufio.NewWriterSize(conn, s.cfg.ChunkSize)

	err := s.route(r, w)
	switch {
	case err == nil:
	case transfer.IsPeerGone(err):
		s.logger.Printf("%s: client disconnected: %v", conn.RemoteAddr(), err)
	default:
		s.logger.Printf("%s: %v", conn.RemoteAddr(), err)
	}
}

func (s *Server) route(r *bufio.Reader, w *bufio.Writer) error {
	line, err := readRequestLine(r)
	switch {
	case errors.Is(err, ErrEmptyRequest), errors.Is(err, ErrLineTooLong):
		return s.sendError(w, http.StatusBadRequest, "Bad Request")
	case err != nil:
		return fmt.Errorf("read request: %w", err)
	}
	s.sink.Request(line)

	req, err := ParseRequest(line)
	switch {
	case errors.Is(err, ErrMalformedRequest) && req.Method == MethodUpload:
		// UPLOAD is not an HTTP method, so it is refused at protocol level
		return s.reply(w, response.ProtocolError("Invalid upload command"))
	case err != nil:
		return s.sendError(w, http.StatusBadRequest, "Bad Request")
	}

	switch req.Method {
	case MethodGet:
		return s.handleGet(w, req)
	case MethodUpload:
		return s.handleUpload(r, w, req)
	}
	return s.sendError(w, http.StatusBadRequest, "Bad Request")
}

func (s *Server) sendError(w *bufio.Writer, code int, message string) error {
	body := response.ErrorPage(code, message)
	head := response.Head(code, response.HTMLType, int64(len(body)), s.now())
	s.sink.Response(head)

	w.WriteString(head)
	w.WriteString(body)
	return w.Flush()
}

func (s *Server) sendPage(w *bufio.Writer, contentType string, body []byte) error {
	head := response.Head(http.StatusOK, contentType, int64(len(body)), s.now())
	s.sink.Response(head)

	w.WriteString(head)
	w.Write(body)
	return w.Flush()
}

func (s *Server) reply(w *bufio.Writer, line string) error {
	s.sink.Response(line)
	w.WriteString(line)
	return w.Flush()
}
