package directory

import "testing"

func TestNewPage(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		perPage    int
		total      int64
		wantPages  int
		wantOffset int
	}{
		{"exact fit", 1, 5, 10, 2, 0},
		{"remainder adds a page", 3, 12, 25, 3, 24},
		{"beyond last page", 4, 12, 25, 3, 36},
		{"no rows", 1, 10, 0, 0, 0},
		{"single row", 1, 10, 1, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage(tc.page, tc.perPage, tc.total)
			if p.TotalPages != tc.wantPages {
				t.Fatalf("totalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.CurrentPage != tc.page || p.PerPage != tc.perPage {
				t.Fatalf("metadata echo mismatch: %+v", p)
			}
			if got := Offset(tc.page, tc.perPage); got != tc.wantOffset {
				t.Fatalf("offset = %d, want %d", got, tc.wantOffset)
			}
		})
	}
}
