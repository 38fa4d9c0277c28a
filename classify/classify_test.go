package classify

import "testing"

func TestPage(t *testing.T) {
	tests := []struct {
		name string
		in   PageStats
		th   Thresholds
		want PageClass
	}{
		{"plain text", PageStats{TextChars: 1200}, Thresholds{}, ClassText},
		{"short text without images is still text", PageStats{TextChars: 10}, Thresholds{}, ClassText},
		{"scan", PageStats{TextChars: 3, HasImages: true}, Thresholds{}, ClassImageOnly},
		{"text page with decorative image", PageStats{TextChars: 900, HasImages: true}, Thresholds{}, ClassText},
		{"table page", PageStats{TextChars: 400, Tables: 1}, Thresholds{}, ClassTableHeavy},
		{"scan wins over table", PageStats{TextChars: 0, Tables: 1, HasImages: true}, Thresholds{}, ClassImageOnly},
		{"custom text cutoff", PageStats{TextChars: 80, HasImages: true}, Thresholds{MinTextChars: 100}, ClassImageOnly},
		{"custom table cutoff", PageStats{TextChars: 400, Tables: 1}, Thresholds{MinTables: 2}, ClassText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Page(tt.in, tt.th); got != tt.want {
				t.Fatalf("Page(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name  string
		pages []PageClass
		want  DocClass
	}{
		{"empty", nil, DocText},
		{"all text", []PageClass{ClassText, ClassText}, DocText},
		{"table majority", []PageClass{ClassTableHeavy, ClassTableHeavy, ClassText}, DocTableHeavy},
		{"scan majority", []PageClass{ClassImageOnly, ClassImageOnly, ClassText}, DocScanned},
		{"text tie wins", []PageClass{ClassTableHeavy, ClassText}, DocText},
		{"single scan does not flip document", []PageClass{ClassText, ClassText, ClassImageOnly}, DocText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Document(tt.pages); got != tt.want {
				t.Fatalf("Document(%v) = %v, want %v", tt.pages, got, tt.want)
			}
		})
	}
}
