package folderhash

// Hash algorithm names
const (
	AlgoMD5      = "md5"
	AlgoSHA1     = "sha1"
	AlgoSHA224   = "sha224"
	AlgoSHA256   = "sha256"
	AlgoSHA384   = "sha384"
	AlgoSHA512   = "sha512"
	AlgoSHA3_256 = "sha3-256"
	AlgoSHA3_512 = "sha3-512"
	AlgoBLAKE3   = "blake3"
	AlgoXXH3     = "xxh3"
	AlgoXXHash64 = "xxhash64"
)

// Digest text encodings
const (
	EncodingHex       = "hex"
	EncodingBase64    = "base64"
	EncodingBase64URL = "base64url"
	EncodingBase32    = "base32"
	EncodingBase58    = "base58"
	EncodingMultihash = "multihash"
)

// Defaults applied by DefaultOptions
const (
	DefaultAlgo       = AlgoSHA1
	DefaultEncoding   = EncodingHex
	DefaultBufferSize = 2 * 1024 * 1024
)

// File constants
const (
	ConfigFileName  = ".folderhash"
	ExcludeFileName = ".folderhashignore"
)

// nameTerminator follows every basename fed into a combination step so that
// a name can never run into the digest that follows it.
const nameTerminator byte = 0x00

// Debug flag names understood by SetDebugFlags
const (
	DebugClassify = "classify"
	DebugTree     = "tree"
	DebugConfig   = "config"
)
