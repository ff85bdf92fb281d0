package storage

import (
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore is the default durable Persistence, backed by one file per
// key under a base directory.
type DiskvStore struct {
	d *diskv.Diskv
}

// NewDiskvStore opens (creating if needed) a diskv store rooted at basePath.
func NewDiskvStore(basePath string) (*DiskvStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &DiskvStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (s *DiskvStore) Get(key string) (string, error) {
	value, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return string(value), nil
}

func (s *DiskvStore) Set(key, value string) error {
	return s.d.Write(key, []byte(value))
}
