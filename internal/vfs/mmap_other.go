//go:build !unix

package vfs

import "os"

func readMapped(name string) ([]byte, error) {
	return os.ReadFile(name)
}
