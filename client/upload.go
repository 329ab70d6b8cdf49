package main

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/Amanch200309/Distributed_systems/fileexchange/transfer"
)

var ErrRejected = errors.New("server rejected upload")

type Uploader struct {
	Addr      string
	ChunkSize int
}

// Upload sends the file at path and returns the server's completion line.
// The server stores it under the file's base name.
func (u *Uploader) Upload(path string) (string, error) {
	name := filepath.Base(path)
	if strings.ContainsAny(name, " \t\r\n") {
		return "", fmt.Errorf("%s: file names may not contain whitespace", name)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}
	defer f.Close()

	conn, err := net.Dial("tcp", u.Addr)
	if err != nil {
		return "", fmt.Errorf("connect to %s: %w", u.Addr, err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "UPLOAD %s\n", name); err != nil {
		return "", fmt.Errorf("send command: %w", err)
	}

	r := bufio.NewReader(conn)
	ack, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read acknowledgement: %w", err)
	}
	ack = strings.TrimSpace(ack)
	if strings.HasPrefix(ack, "ERROR") {
		return "", fmt.Errorf("%w: %s", ErrRejected, ack)
	}
	if ack != "OK" {
		return "", fmt.Errorf("unexpected acknowledgement %q", ack)
	}

	n, err := transfer.Copy(bufio.NewWriterSize(conn, u.ChunkSize), f, u.ChunkSize)
	if err != nil {
		return "", fmt.Errorf("upload %s after %d bytes: %w", name, n, err)
	}

	// ending our side is what tells the server the file is complete
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			return "", fmt.Errorf("close write: %w", err)
		}
	}

	done, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read completion: %w", err)
	}
	return strings.TrimSpace(done), nil
}
