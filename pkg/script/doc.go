// Package script loads recording scripts and lays out projects on disk.
//
// A script is a UTF-8 text file with one prompt per line:
//
//	0001 The quick brown fox jumps over the lazy dog.
//	0002 She sells sea shells by the sea shore.
//
// The project takes its name from the script file (chapter01.txt becomes
// chapter01) and keeps its recordings and progress under <base>/<name>/.
// Prompt ids double as artifact file names, so duplicate ids overwrite each
// other's recordings; Duplicates reports them.
package script
