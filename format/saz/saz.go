// Package saz reads captured HTTP sessions stored as a zip archive with an
// HTML index page, and locates media responses listed in that index.
package saz

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IndexPage is the archive entry holding the session table.
const IndexPage = "_index.htm"

var (
	ErrNoTable       = errors.New("saz: index has no table")
	ErrMediaNotFound = errors.New("saz: media not found in index")
	ErrNoLink        = errors.New("saz: index row has no response link")
	ErrUnknownKind   = errors.New("saz: unknown media kind")
)

type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// ContentTypes lists the content types that count as media of kind k.
func (k Kind) ContentTypes() []string {
	switch k {
	case KindVideo:
		return []string{"video/webm", "video/mp4"}
	case KindAudio:
		return []string{"audio/mp4"}
	}
	return nil
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k.ContentTypes() == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

type Archive struct {
	zr *zip.Reader
	c  io.Closer
}

// Open opens the archive file at path.
func Open(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("saz: open %s: %w", path, err)
	}
	return &Archive{zr: &rc.Reader, c: rc}, nil
}

func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("saz: %w", err)
	}
	return &Archive{zr: zr}, nil
}

func (a *Archive) Close() error {
	if a.c == nil {
		return nil
	}
	return a.c.Close()
}

// ReadFile returns the content of the named entry.
// Backslash separators, as written in index links, are accepted.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	name = strings.ReplaceAll(name, `\`, "/")

	f, err := a.zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("saz: %s: %w", name, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, f); err != nil {
		return nil, fmt.Errorf("saz: read %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type Media struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
}

// FindMedia scans the first table of the index page for cells holding one of
// kind's content types and returns the response link of the row with the
// n-th (0-based) such cell. The link is the second anchor in that row.
func FindMedia(index []byte, kind Kind, n int) (Media, error) {
	types := kind.ContentTypes()
	if types == nil {
		return Media{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}

	doc, err := html.Parse(bytes.NewReader(index))
	if err != nil {
		return Media{}, fmt.Errorf("saz: parse index: %w", err)
	}

	table := find(doc, atom.Table)
	if table == nil {
		return Media{}, ErrNoTable
	}

	remaining := n + 1
	var hit *html.Node
	var contentType string
	walk(table, atom.Tr, func(tr *html.Node) bool {
		walk(tr, atom.Td, func(td *html.Node) bool {
			text := strings.TrimSpace(textOf(td))
			for _, t := range types {
				if text == t {
					remaining--
					break
				}
			}
			if remaining == 0 {
				hit, contentType = tr, text
				return false
			}
			return true
		})
		return hit == nil
	})
	if hit == nil {
		return Media{}, fmt.Errorf("%w: %s #%d", ErrMediaNotFound, kind, n)
	}

	var links []string
	walk(hit, atom.A, func(a *html.Node) bool {
		links = append(links, attr(a, "href"))
		return true
	})
	if len(links) < 2 {
		return Media{}, ErrNoLink
	}

	return Media{Path: strings.ReplaceAll(links[1], `\`, "/"), ContentType: contentType}, nil
}

func find(n *html.Node, a atom.Atom) (found *html.Node) {
	walk(n, a, func(m *html.Node) bool {
		found = m
		return false
	})
	return
}

// walk calls fn on every descendant of n with atom a, in document order,
// until fn returns false. It does not descend into matched nodes.
func walk(n *html.Node, a atom.Atom, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			if !fn(c) {
				return false
			}
			continue
		}
		if !walk(c, a, fn) {
			return false
		}
	}
	return true
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
