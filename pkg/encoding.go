package folderhash

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"
)

// DigestEncoding turns raw digest bytes into their text form
type DigestEncoding struct {
	Name   string
	Encode func(algorithm *HashAlgorithm, digest []byte) (string, error)
}

var digestEncodings = map[string]*DigestEncoding{
	EncodingHex: {
		Name: EncodingHex,
		Encode: func(_ *HashAlgorithm, digest []byte) (string, error) {
			return hex.EncodeToString(digest), nil
		},
	},
	EncodingBase64: {
		Name: EncodingBase64,
		Encode: func(_ *HashAlgorithm, digest []byte) (string, error) {
			return base64.StdEncoding.EncodeToString(digest), nil
		},
	},
	EncodingBase64URL: {
		Name: EncodingBase64URL,
		Encode: func(_ *HashAlgorithm, digest []byte) (string, error) {
			return base64.RawURLEncoding.EncodeToString(digest), nil
		},
	},
	EncodingBase32: {
		Name: EncodingBase32,
		Encode: func(_ *HashAlgorithm, digest []byte) (string, error) {
			return base32.StdEncoding.EncodeToString(digest), nil
		},
	},
	EncodingBase58: {
		Name: EncodingBase58,
		Encode: func(_ *HashAlgorithm, digest []byte) (string, error) {
			return base58.Encode(digest), nil
		},
	},
	EncodingMultihash: {
		Name:   EncodingMultihash,
		Encode: encodeMultihash,
	},
}

func encodeMultihash(algorithm *HashAlgorithm, digest []byte) (string, error) {
	if algorithm.MultihashCode == 0 {
		return "", newHashError(KindUnsupportedEncoding, EncodingMultihash,
			fmt.Errorf("no multihash code for %s", algorithm.Name))
	}
	mh, err := multihash.Encode(digest, algorithm.MultihashCode)
	if err != nil {
		return "", newHashError(KindUnsupportedEncoding, EncodingMultihash, err)
	}
	return multihash.Multihash(mh).B58String(), nil
}

// GetDigestEncoding returns the encoding registered under name
func GetDigestEncoding(name string) (*DigestEncoding, error) {
	encoding, ok := digestEncodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, newHashError(KindUnsupportedEncoding, name,
			fmt.Errorf("supported: %s", strings.Join(SupportedEncodings(), ", ")))
	}
	return encoding, nil
}

// SupportedEncodings returns the registered encoding names in sorted order
func SupportedEncodings() []string {
	names := make([]string, 0, len(digestEncodings))
	for name := range digestEncodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkCompatible fails early for algorithm/encoding pairs that can never encode
func (e *DigestEncoding) checkCompatible(algorithm *HashAlgorithm) error {
	if e.Name == EncodingMultihash && algorithm.MultihashCode == 0 {
		return newHashError(KindUnsupportedEncoding, EncodingMultihash,
			fmt.Errorf("no multihash code for %s", algorithm.Name))
	}
	return nil
}
