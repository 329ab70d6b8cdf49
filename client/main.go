package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

func main() {
	addr := flag.String("addr", "localhost:5067", "server address")
	chunk := flag.Int("chunk", 1024, "upload chunk size in bytes")
	dir := flag.String("dir", ".", "directory file names are resolved against")
	flag.Parse()

	if *chunk < 1 {
		fmt.Println("Error: -chunk must be positive.")
		os.Exit(2)
	}

	u := &Uploader{Addr: *addr, ChunkSize: *chunk}
	CommandLoop(os.Stdin, os.Stdout, *dir, u)
}

// lockedWriter lets concurrent uploads report without interleaving lines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
}

// CommandLoop reads file names from in until "exit" or end of input and
// uploads each one in the background. It returns once every upload started
// has finished.
func CommandLoop(in io.Reader, out io.Writer, dir string, u *Uploader) {
	w := &lockedWriter{w: out}
	scanner := bufio.NewScanner(in)
	var wg sync.WaitGroup

	for {
		w.printf("Enter file name to upload (or type 'exit' to quit): ")
		if !scanner.Scan() {
			break
		}
		name := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(name, "exit") {
			break
		}
		if name == "" {
			continue
		}

		w.printf("Starting upload for file: %s\n", name)
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			done, err := u.Upload(path)
			if err != nil {
				w.printf("Error uploading file %s: %v\n", path, err)
				return
			}
			w.printf("%s\n", done)
		}(filepath.Join(dir, name))
	}
	wg.Wait()
}
