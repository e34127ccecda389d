package folderhash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/multiformats/go-multihash"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// HashAlgorithm represents a hash algorithm configuration
type HashAlgorithm struct {
	Name          string
	Size          int    // Digest size in bytes
	MultihashCode uint64 // 0 when the algorithm has no multihash code
	NewFunc       func() hash.Hash
}

var hashAlgorithms = map[string]*HashAlgorithm{
	AlgoMD5: {
		Name:          AlgoMD5,
		Size:          md5.Size,
		MultihashCode: multihash.MD5,
		NewFunc:       md5.New,
	},
	AlgoSHA1: {
		Name:          AlgoSHA1,
		Size:          sha1.Size,
		MultihashCode: multihash.SHA1,
		NewFunc:       sha1.New,
	},
	AlgoSHA224: {
		Name:    AlgoSHA224,
		Size:    sha256.Size224,
		NewFunc: sha256.New224,
	},
	AlgoSHA256: {
		Name:          AlgoSHA256,
		Size:          sha256.Size,
		MultihashCode: multihash.SHA2_256,
		NewFunc:       sha256.New,
	},
	AlgoSHA384: {
		Name:    AlgoSHA384,
		Size:    sha512.Size384,
		NewFunc: sha512.New384,
	},
	AlgoSHA512: {
		Name:          AlgoSHA512,
		Size:          sha512.Size,
		MultihashCode: multihash.SHA2_512,
		NewFunc:       sha512.New,
	},
	AlgoSHA3_256: {
		Name:          AlgoSHA3_256,
		Size:          32,
		MultihashCode: multihash.SHA3_256,
		NewFunc:       sha3.New256,
	},
	AlgoSHA3_512: {
		Name:          AlgoSHA3_512,
		Size:          64,
		MultihashCode: multihash.SHA3_512,
		NewFunc:       sha3.New512,
	},
	AlgoBLAKE3: {
		Name:          AlgoBLAKE3,
		Size:          32,
		MultihashCode: multihash.BLAKE3,
		NewFunc:       func() hash.Hash { return blake3.New(32, nil) },
	},
	AlgoXXH3: {
		Name:    AlgoXXH3,
		Size:    8,
		NewFunc: func() hash.Hash { return xxh3.New() },
	},
	AlgoXXHash64: {
		Name:    AlgoXXHash64,
		Size:    8,
		NewFunc: func() hash.Hash { return xxhash.New() },
	},
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	algorithm, ok := hashAlgorithms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, newHashError(KindUnsupportedAlgorithm, name,
			fmt.Errorf("supported: %s", strings.Join(SupportedAlgorithms(), ", ")))
	}
	return algorithm, nil
}

// SupportedAlgorithms returns the registered algorithm names in sorted order
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(hashAlgorithms))
	for name := range hashAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
