package models

import (
	"testing"
)

func TestSearchOptions_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    SearchOptions
		expected SearchOptions
	}{
		{
			name:  "applies all defaults",
			input: SearchOptions{Query: "report"},
			expected: SearchOptions{
				Query:          "report",
				Limit:          30,
				Offset:         0,
				IncludeFolders: true,
				IncludeFiles:   true,
			},
		},
		{
			name: "preserves custom values",
			input: SearchOptions{
				Query:          "report",
				Limit:          50,
				Offset:         10,
				IncludeFolders: true,
			},
			expected: SearchOptions{
				Query:          "report",
				Limit:          50,
				Offset:         10,
				IncludeFolders: true,
				IncludeFiles:   false,
			},
		},
		{
			name:  "clamps limit above maximum",
			input: SearchOptions{Query: "report", Limit: 500},
			expected: SearchOptions{
				Query:          "report",
				Limit:          100,
				IncludeFolders: true,
				IncludeFiles:   true,
			},
		},
		{
			name:  "corrects negative offset",
			input: SearchOptions{Query: "report", Offset: -5},
			expected: SearchOptions{
				Query:          "report",
				Limit:          30,
				Offset:         0,
				IncludeFolders: true,
				IncludeFiles:   true,
			},
		},
		{
			name:  "clamps offset above maximum",
			input: SearchOptions{Query: "report", Offset: 2_000_000},
			expected: SearchOptions{
				Query:          "report",
				Limit:          30,
				Offset:         1_000_000,
				IncludeFolders: true,
				IncludeFiles:   true,
			},
		},
		{
			name:  "single kind selection survives",
			input: SearchOptions{Query: "report", IncludeFiles: true},
			expected: SearchOptions{
				Query:          "report",
				Limit:          30,
				IncludeFolders: false,
				IncludeFiles:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.ApplyDefaults()

			if tt.input != tt.expected {
				t.Errorf("ApplyDefaults() = %+v, want %+v", tt.input, tt.expected)
			}
		})
	}
}

func TestSearchOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{name: "two characters is valid", query: "ab", wantErr: false},
		{name: "long query is valid", query: "report-0042", wantErr: false},
		{name: "one character is rejected", query: "a", wantErr: true},
		{name: "empty query is rejected", query: "", wantErr: true},
		{name: "multibyte runes count as runes", query: "日本", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := SearchOptions{Query: tt.query, Limit: 30, IncludeFolders: true, IncludeFiles: true}

			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchResult_Kinds(t *testing.T) {
	var folder SearchResult = FolderResult{Kind: KindFolder, ID: "1", Name: "Invoices"}
	var file SearchResult = FileResult{Kind: KindFile, ID: "1", Name: "invoice.pdf", FolderID: "7"}

	if folder.ResultKind() != KindFolder {
		t.Errorf("folder ResultKind() = %v, want %v", folder.ResultKind(), KindFolder)
	}
	if file.ResultKind() != KindFile {
		t.Errorf("file ResultKind() = %v, want %v", file.ResultKind(), KindFile)
	}
}
