// Package bibtex reads BibTeX files into a types.Database.
//
// The parser understands the subset of the format found in real reference
// files: regular entries delimited by braces or parentheses, @string macro
// definitions, '#' concatenation, and @comment/@preamble blocks, which are
// skipped. Entry types and field names are lower-cased; values lose one
// level of delimiters, have whitespace runs collapsed and are NFC
// normalised. Field order within an entry is preserved.
package bibtex
