package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/Amanch200309/Distributed_systems/fileexchange/response"
	"github.com/Amanch200309/Distributed_systems/fileexchange/transfer"
)

var errShortBody = errors.New("file shrank while being sent")

func (s *Server) handleGet(w *bufio.Writer, req Request) error {
	target, err := url.PathUnescape(req.Target)
	if err != nil {
		return s.sendError(w, http.StatusBadRequest, "Bad Request")
	}

	// cleaning against "/" keeps ".." from climbing out of the root
	urlPath := path.Clean("/" + target)
	local := filepath.Join(s.cfg.FileRoot, filepath.FromSlash(urlPath))

	info, err := os.Stat(local)
	switch {
	case err != nil:
		return s.sendError(w, http.StatusNotFound, "Not Found")
	case info.IsDir():
		return s.sendListing(w, local, urlPath)
	case info.Mode().IsRegular():
		return s.sendFile(w, local, info)
	default:
		return s.sendError(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) sendListing(w *bufio.Writer, dir, urlPath string) error {
	page, err := s.renderDir(dir, urlPath)
	if err != nil {
		s.logger.Printf("listing %s: %v", dir, err)
		return s.sendError(w, http.StatusNotFound, "Directory Not Found")
	}
	return s.sendPage(w, response.HTMLType, page)
}

// sendFile streams the file in chunks after a head declaring its size.
// Inline and attachment files differ only in Content-Type.
func (s *Server) sendFile(w *bufio.Writer, name string, info fs.FileInfo) error {
	f, err := s.openFile(name)
	if err != nil {
		s.logger.Printf("open %s: %v", name, err)
		return s.sendError(w, http.StatusInternalServerError, "Internal Server Error")
	}
	defer f.Close()

	size := info.Size()
	head := response.Head(http.StatusOK, servedType(name), size, s.now())
	s.sink.Response(head)
	if _, err := w.WriteString(head); err != nil {
		return err
	}

	n, err := transfer.Copy(w, io.LimitReader(f, size), s.cfg.ChunkSize)
	if err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	if n != size {
		// the declared length can no longer be honoured; closing is the only
		// way left to tell the client
		return fmt.Errorf("send %s: %d of %d bytes: %w", name, n, size, errShortBody)
	}
	return nil
}
