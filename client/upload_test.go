package main

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Amanch200309/Distributed_systems/fileexchange/base"
	"github.com/Amanch200309/Distributed_systems/fileexchange/config"
	"github.com/Amanch200309/Distributed_systems/fileexchange/server"
)

// startServer runs a real server on a loopback port and returns its address
// and upload directory.
func startServer(t *testing.T) (addr, uploads string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.FileRoot = dir
	cfg.UploadRoot = filepath.Join(dir, "uploaded")

	logger := log.New(io.Discard, "", 0)
	srv := server.New(cfg, nil, logger)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })

	b := &base.BaseServer{Maxconn: 4, Logger: logger}
	go b.Serve(l, srv.Serve)
	return l.Addr().String(), cfg.UploadRoot
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestUpload(t *testing.T) {
	addr, uploads := startServer(t)
	src := t.TempDir()

	data := bytes.Repeat([]byte("0123456789"), 1000)
	p := writeFile(t, src, "report.txt", data)

	u := &Uploader{Addr: addr, ChunkSize: 333}
	done, err := u.Upload(p)
	if err != nil {
		t.Fatal(err)
	}
	if done != "File upload completed: report.txt" {
		t.Fatalf("unexpected completion %q", done)
	}

	got, err := os.ReadFile(filepath.Join(uploads, "report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("stored %d bytes, sent %d", len(got), len(data))
	}
}

func TestUploadRejected(t *testing.T) {
	addr, uploads := startServer(t)
	p := writeFile(t, t.TempDir(), "tool.exe", []byte("MZ"))

	u := &Uploader{Addr: addr, ChunkSize: 1024}
	_, err := u.Upload(p)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid file format") {
		t.Fatalf("expected server message in error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(uploads, "tool.exe")); !os.IsNotExist(err) {
		t.Fatal("rejected file was stored")
	}
}

func TestUploadMissingFile(t *testing.T) {
	u := &Uploader{Addr: "127.0.0.1:1", ChunkSize: 1024}
	if _, err := u.Upload(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCommandLoop(t *testing.T) {
	addr, uploads := startServer(t)
	src := t.TempDir()
	writeFile(t, src, "a.txt", []byte("alpha"))
	writeFile(t, src, "b.png", []byte("\x89PNG"))
	writeFile(t, src, "c.exe", []byte("MZ"))

	in := strings.NewReader("a.txt\n\nb.png\nc.exe\nEXIT\nignored.txt\n")
	var out bytes.Buffer
	CommandLoop(in, &out, src, &Uploader{Addr: addr, ChunkSize: 2})

	for name, want := range map[string]string{"a.txt": "alpha", "b.png": "\x89PNG"} {
		got, err := os.ReadFile(filepath.Join(uploads, name))
		if err != nil || string(got) != want {
			t.Errorf("%s: got %q %v", name, got, err)
		}
	}
	text := out.String()
	for _, want := range []string{
		"Starting upload for file: a.txt",
		"File upload completed: a.txt",
		"File upload completed: b.png",
		"Invalid file format",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "ignored.txt") {
		t.Error("input after exit was processed")
	}
}
