// Package storage archives generated cams on disk. Every run gets its own
// directory holding metadata.json and samples.csv.
package storage
