// Package response renders the status line and header block that precede
// every GET reply, and the plain protocol lines used by UPLOAD.
package response

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	Version     = "HTTP/1.0"
	ServerName  = "Go File Exchange 1.0"
	OctetStream = "application/octet-stream"
	HTMLType    = "text/html"
)

// Reason maps a status code to its reason phrase.
func Reason(code int) string {
	switch code {
	case http.StatusOK:
		return "OK"
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown Status"
	}
}

// Head renders the status line and headers, including the blank line that
// ends them. contentLength must equal the number of body bytes that follow.
func Head(code int, contentType string, contentLength int64, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %s\r\n", Version, code, Reason(code))
	fmt.Fprintf(&b, "Date: %s\r\n", now.UTC().Format(http.TimeFormat))
	fmt.Fprintf(&b, "Server: %s\r\n", ServerName)
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&b, "Content-Length: %d\r\n", contentLength)
	b.WriteString("Connection: close\r\n\r\n")
	return b.String()
}

// ErrorPage is the HTML body sent with an error status.
func ErrorPage(code int, message string) string {
	return fmt.Sprintf("<html><body><h1>Error %d: %s</h1></body></html>", code, message)
}

// ProtocolError is the line sent back on a rejected UPLOAD.
func ProtocolError(message string) string {
	return "ERROR: " + message + "\n"
}

const Ack = "OK\n"

func Completed(name string) string {
	return "File upload completed: " + name + "\n"
}
