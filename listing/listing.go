// Package listing renders a directory's immediate children as an HTML page
// of links.
package listing

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render lists dir. urlPath is the request path the listing is served at;
// child links are formed under it. Directories are shown bold and italic and
// their links end in "/".
func Render(dir, urlPath string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	list := element(atom.Ul)
	for _, e := range entries {
		list.AppendChild(item(e.Name(), isDir(dir, e), urlPath))
	}

	body := element(atom.Body)
	h1 := element(atom.H1)
	h1.AppendChild(text("Directory Listing"))
	body.AppendChild(h1)
	body.AppendChild(list)

	doc := element(atom.Html)
	doc.AppendChild(body)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render listing: %w", err)
	}
	return buf.Bytes(), nil
}

// symlinks count as directories when their target is one; dangling links
// are listed as files
func isDir(dir string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.IsDir()
}

func item(name string, dir bool, urlPath string) *html.Node {
	href := path.Join("/", urlPath, name)
	if dir {
		href += "/"
	}

	a := element(atom.A)
	a.Attr = []html.Attribute{{Key: "href", Val: (&url.URL{Path: href}).EscapedPath()}}
	a.AppendChild(text(name))

	li := element(atom.Li)
	if dir {
		b, i := element(atom.B), element(atom.I)
		i.AppendChild(a)
		b.AppendChild(i)
		li.AppendChild(b)
	} else {
		li.AppendChild(a)
	}
	return li
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
