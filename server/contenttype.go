package server

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/Amanch200309/Distributed_systems/fileexchange/response"
)

// contentType is a best-effort lookup by extension; ok is false when the
// type is unknown.
func contentType(name string) (ctype string, ok bool) {
	ctype = mime.TypeByExtension(filepath.Ext(name))
	return ctype, ctype != ""
}

func inline(ctype string) bool {
	return strings.HasPrefix(ctype, "text/") || strings.HasPrefix(ctype, "image/")
}

// non-inline types are sent as attachments
func servedType(name string) string {
	if ctype, ok := contentType(name); ok && inline(ctype) {
		return ctype
	}
	return response.OctetStream
}
