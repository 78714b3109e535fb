package model

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Page is a fetched wiki page.
// The crawler only needs the markup; the hash lets the crawl history
// detect whether a page changed between runs.
type Page struct {
	// ID is the canonical title the page was fetched by.
	ID PageID `json:"id"`

	// Markup is the raw HTML returned by the fetcher.
	Markup string `json:"-"`

	// Hash is the hex encoded SHA3-256 digest of Markup.
	Hash string `json:"hash"`
}

// NewPage creates a Page and computes its content hash.
func NewPage(id PageID, markup string) *Page {
	p := &Page{ID: id, Markup: markup}
	p.ComputeHash()
	return p
}

// ComputeHash calculates and sets the SHA3-256 hash of the page markup.
// An empty page gets an empty hash.
func (p *Page) ComputeHash() {
	if len(p.Markup) == 0 {
		p.Hash = ""
		return
	}

	sum := sha3.Sum256([]byte(p.Markup))
	p.Hash = hex.EncodeToString(sum[:])
}

// Size returns the markup length in bytes.
func (p *Page) Size() int {
	return len(p.Markup)
}
