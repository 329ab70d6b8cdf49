package server

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Amanch200309/Distributed_systems/fileexchange/response"
	"github.com/Amanch200309/Distributed_systems/fileexchange/transfer"
)

// handleUpload acknowledges an allowed file name and then stores everything
// the client sends until it ends its side of the stream. A disallowed name is
// refused before any body byte is read.
func (s *Server) handleUpload(r *bufio.Reader, w *bufio.Writer, req Request) error {
	// clients send their local path; only the base name is kept
	name := filepath.Base(req.Target)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return s.reply(w, response.ProtocolError("Invalid upload command"))
	}
	if !s.allowedName(name) {
		return s.reply(w, response.ProtocolError("Invalid file format"))
	}

	if err := os.MkdirAll(s.cfg.UploadRoot, 0755); err != nil {
		return errors.Join(fmt.Errorf("create upload dir: %w", err), s.reply(w, response.ProtocolError("Could not store file")))
	}
	// the body lands in a temp file first; an earlier upload of the same
	// name survives until this one is complete
	f, err := os.CreateTemp(s.cfg.UploadRoot, "."+name+".*")
	if err != nil {
		return errors.Join(fmt.Errorf("create temp for %s: %w", name, err), s.reply(w, response.ProtocolError("Could not store file")))
	}
	tmp := f.Name()

	if err := s.reply(w, response.Ack); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("acknowledge upload: %w", err)
	}

	// r may already hold body bytes that arrived with the command line
	n, err := transfer.Copy(bufio.NewWriterSize(f, s.cfg.ChunkSize), r, s.cfg.ChunkSize)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("receive %s after %d bytes: %w", name, n, err)
	}
	dest := filepath.Join(s.cfg.UploadRoot, name)
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return errors.Join(fmt.Errorf("store %s: %w", dest, err), s.reply(w, response.ProtocolError("Could not store file")))
	}
	s.logger.Printf("stored %s (%d bytes)", dest, n)

	return s.reply(w, response.Completed(name))
}

func (s *Server) allowedName(name string) bool {
	for _, ext := range s.cfg.AllowedExtensions {
		if len(name) > len(ext) && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
