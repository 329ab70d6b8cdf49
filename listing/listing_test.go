package listing

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type link struct {
	href, name string
	dir        bool
}

// links collects every <a> in doc, noting whether it sits inside <b><i>.
func links(t *testing.T, page []byte) (items int, out []link) {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li {
			items++
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			l := link{name: n.FirstChild.Data}
			for _, a := range n.Attr {
				if a.Key == "href" {
					l.href = a.Val
				}
			}
			p := n.Parent
			l.dir = p.DataAtom == atom.I && p.Parent.DataAtom == atom.B
			out = append(out, l)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return items, out
}

func TestRenderRoot(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644)
	os.Mkdir(filepath.Join(dir, "sub"), 0755)

	page, err := Render(dir, "/")
	if err != nil {
		t.Fatal(err)
	}

	items, got := links(t, page)
	if items != 2 {
		t.Fatalf("expected 2 list items, got %d:\n%s", items, page)
	}
	want := []link{
		{href: "/a.txt", name: "a.txt"},
		{href: "/sub/", name: "sub", dir: true},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderExactMarkup(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0644)
	os.Mkdir(filepath.Join(dir, "sub"), 0755)

	page, err := Render(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	want := `<html><body><h1>Directory Listing</h1><ul>` +
		`<li><a href="/a.txt">a.txt</a></li>` +
		`<li><b><i><a href="/sub/">sub</a></i></b></li>` +
		`</ul></body></html>`
	if string(page) != want {
		t.Fatalf("got\n%s\nwant\n%s", page, want)
	}
}

func TestRenderNestedPath(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "deep.txt"), nil, 0644)

	for _, urlPath := range []string{"/sub", "/sub/", "sub"} {
		page, err := Render(dir, urlPath)
		if err != nil {
			t.Fatal(err)
		}
		_, got := links(t, page)
		if len(got) != 1 || got[0].href != "/sub/deep.txt" {
			t.Errorf("%q: unexpected links %+v", urlPath, got)
		}
	}
}

func TestRenderEscapes(t *testing.T) {
	dir := t.TempDir()
	name := `a <b>&"c.txt`
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
		t.Skip("filesystem rejects name:", err)
	}

	page, err := Render(dir, "/")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(page), "<b>&") {
		t.Fatalf("name not escaped:\n%s", page)
	}
	_, got := links(t, page)
	if len(got) != 1 || got[0].name != name {
		t.Fatalf("expected link text %q, got %+v", name, got)
	}
	if got[0].href != "/a%20%3Cb%3E&%22c.txt" {
		t.Fatalf("unexpected href %q", got[0].href)
	}
}

func TestRenderSymlinkedDirectory(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "real"), 0755)
	if err := os.Symlink("real", filepath.Join(dir, "link")); err != nil {
		t.Skip("symlinks unsupported:", err)
	}
	os.Symlink("gone", filepath.Join(dir, "dangling"))

	page, err := Render(dir, "/")
	if err != nil {
		t.Fatal(err)
	}
	_, got := links(t, page)
	want := []link{
		{href: "/dangling", name: "dangling"},
		{href: "/link/", name: "link", dir: true},
		{href: "/real/", name: "real", dir: true},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("link %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderMissingDir(t *testing.T) {
	if _, err := Render(filepath.Join(t.TempDir(), "nope"), "/"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
