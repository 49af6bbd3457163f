// Package bleve provides a full-text search engine adapter backed by
// the Bleve library. The index stores document title and content and
// returns scored document IDs.
package bleve
