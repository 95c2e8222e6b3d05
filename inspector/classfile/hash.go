package classfile

import (
	"github.com/minio/highwayhash"
)

var key = []byte("classdep-fingerprint-key-0123456")

// Fingerprint returns HighwayHash-64 of class bytes. The analyzer keys its edge cache by it, so
// identical classes found in several locations are parsed once, and exports it as the class node hash.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
