package model

import "testing"

// TestPageComputeHash tests the ComputeHash method.
func TestPageComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("computes SHA3-256 hash of markup", func(t *testing.T) {
		t.Parallel()

		page := &Page{Markup: "abc"}
		page.ComputeHash()

		// SHA3-256("abc") from FIPS 202 test vectors
		expected := "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
		if page.Hash != expected {
			t.Errorf("got %q, expected %q", page.Hash, expected)
		}
	})

	t.Run("empty content produces empty hash", func(t *testing.T) {
		t.Parallel()

		page := &Page{Markup: ""}
		page.ComputeHash()

		if page.Hash != "" {
			t.Errorf("expected empty hash, got %q", page.Hash)
		}
	})

	t.Run("same markup produces same hash", func(t *testing.T) {
		t.Parallel()

		a := NewPage("A", "<p>walnut</p>")
		b := NewPage("B", "<p>walnut</p>")
		if a.Hash != b.Hash {
			t.Errorf("expected equal hashes, got %q and %q", a.Hash, b.Hash)
		}
	})
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	page := NewPage(NewPageID("Golden_Walnut"), "<html></html>")
	if page.ID != "Golden Walnut" {
		t.Errorf("unexpected ID %q", page.ID)
	}
	if page.Size() != len("<html></html>") {
		t.Errorf("unexpected size %d", page.Size())
	}
	if page.Hash == "" {
		t.Error("expected hash to be computed")
	}
}
