// Package retry repeats filesystem operations that can fail transiently.
//
// Replacing a file by rename fails on some platforms while another process
// (an indexer, a virus scanner, an editor) holds it open. FileConfig gives a
// short exponential backoff for that case:
//
//	err := retry.Do(func() error {
//		return os.Rename(tmp, path)
//	}, retry.FileConfig())
//
// Missing files and cancelled contexts are never retried.
package retry
