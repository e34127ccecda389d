package folderhash

import (
	"errors"
	"testing"
)

func TestDigestEncodings(t *testing.T) {
	sha1Algo, err := GetHashAlgorithm(AlgoSHA1)
	if err != nil {
		t.Fatal(err)
	}
	digest := sha1Of("hello")

	testCases := []struct {
		encoding string
		want     string
	}{
		{EncodingHex, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{EncodingBase64, "qvTGHdzF6KLavt4PO0gs2a6pQ00="},
		{EncodingBase64URL, "qvTGHdzF6KLavt4PO0gs2a6pQ00"},
		{EncodingBase32, "VL2MMHO4YXUKFWV63YHTWSBM3GXKSQ2N"},
		{EncodingBase58, "3P94WsJRYnt8CVQY5PdvZ2ycqqRn"},
		{EncodingMultihash, "5dtAYsVQU6SojhprzGZSsEvMGpE1VW"},
	}

	for _, tc := range testCases {
		t.Run(tc.encoding, func(t *testing.T) {
			encoding, err := GetDigestEncoding(tc.encoding)
			if err != nil {
				t.Fatalf("GetDigestEncoding failed: %v", err)
			}
			got, err := encoding.Encode(sha1Algo, digest)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Encode = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMultihashCompatibility(t *testing.T) {
	encoding, err := GetDigestEncoding(EncodingMultihash)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{AlgoXXH3, AlgoXXHash64, AlgoSHA224} {
		algorithm, _ := GetHashAlgorithm(name)
		if err := encoding.checkCompatible(algorithm); !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("%s with multihash: expected ErrUnsupportedEncoding, got %v", name, err)
		}
	}

	algorithm, _ := GetHashAlgorithm(AlgoBLAKE3)
	if err := encoding.checkCompatible(algorithm); err != nil {
		t.Errorf("blake3 with multihash should be accepted: %v", err)
	}
}

func TestGetDigestEncodingUnknown(t *testing.T) {
	if _, err := GetDigestEncoding("rot13"); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Expected ErrUnsupportedEncoding, got %v", err)
	}
	if _, err := GetDigestEncoding("HEX"); err != nil {
		t.Errorf("Encoding names should be case-insensitive: %v", err)
	}
}
