// Package config holds the settings shared by the acceptor and the
// connection workers.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port              int      // listening port
	FileRoot          string   // served-files root, read only
	UploadRoot        string   // uploaded-files directory, created on demand
	LogPath           string   // append-only transcript file
	ChunkSize         int      // bytes moved per read/write in a transfer
	AllowedExtensions []string // upload suffixes, e.g. ".txt"
	Maxconn           int      // connections served at once
}

func Default() Config {
	return Config{
		Port:              5067,
		FileRoot:          "root",
		UploadRoot:        "uploaded",
		LogPath:           "logFile.txt",
		ChunkSize:         1024,
		AllowedExtensions: []string{".txt", ".jpg", ".png", ".mp4"},
		Maxconn:           10,
	}
}

// Addr is the listen address for Port on all interfaces.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// RegisterFlags binds c's fields to fs. Values already in c are the defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Port, "port", c.Port, "port to listen on")
	fs.StringVar(&c.FileRoot, "root", c.FileRoot, "directory served to GET requests")
	fs.StringVar(&c.UploadRoot, "uploads", c.UploadRoot, "directory receiving UPLOAD files")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "request/response transcript file")
	fs.IntVar(&c.ChunkSize, "chunk", c.ChunkSize, "transfer chunk size in bytes")
	fs.IntVar(&c.Maxconn, "maxconn", c.Maxconn, "maximum connections served at once")
	fs.Func("ext", "comma separated upload extensions (default "+strings.Join(c.AllowedExtensions, ",")+")", func(s string) error {
		c.AllowedExtensions = ParseExtensions(s)
		return nil
	})
}

// ParseExtensions splits a comma separated list, dropping blanks.
func ParseExtensions(s string) []string {
	var exts []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}

func (c Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Port)
	case c.FileRoot == "":
		return fmt.Errorf("%w: empty file root", ErrInvalid)
	case c.UploadRoot == "":
		return fmt.Errorf("%w: empty upload root", ErrInvalid)
	case c.LogPath == "":
		return fmt.Errorf("%w: empty log path", ErrInvalid)
	case c.ChunkSize < 1:
		return fmt.Errorf("%w: chunk size %d", ErrInvalid, c.ChunkSize)
	case c.Maxconn < 1:
		return fmt.Errorf("%w: maxconn %d", ErrInvalid, c.Maxconn)
	}
	for _, e := range c.AllowedExtensions {
		if !strings.HasPrefix(e, ".") || len(e) < 2 {
			return fmt.Errorf("%w: extension %q must look like .ext", ErrInvalid, e)
		}
	}
	return nil
}
