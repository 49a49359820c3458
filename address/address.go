package address

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

const (
	// RawSize is the size of a decoded address
	RawSize = 24
	// EncodedSize is the size of a base32 encoded address
	EncodedSize = 39
	// PublicKeySize is the size of an account public key
	PublicKeySize = 32

	checksumSize = 3
	aliasFlag    = 0x01
	aliasBit     = uint64(1) << 63
)

// NetworkType is the network byte prefixed to every address
type NetworkType uint8

const (
	MainNet NetworkType = 0x68
	TestNet NetworkType = 0x98
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// FromPublicKey derives the address of an account from its public key
func FromPublicKey(publicKey string, network NetworkType) (string, error) {
	key, err := hex.DecodeString(publicKey)
	if err != nil || len(key) != PublicKeySize {
		return "", fmt.Errorf("%w: %q", ErrInvalidPublicKey, publicKey)
	}

	keyHash := sha3.Sum256(key)
	ripe := ripemd160.New()
	ripe.Write(keyHash[:])

	raw := make([]byte, 0, RawSize)
	raw = append(raw, byte(network))
	raw = ripe.Sum(raw)
	checksum := sha3.Sum256(raw)
	raw = append(raw, checksum[:checksumSize]...)

	return encoding.EncodeToString(raw), nil
}

// FromRaw converts a hex encoded address, as the node returns it, to its base32 form
func FromRaw(rawHex string) (string, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil || len(raw) != RawSize {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, rawHex)
	}
	if raw[0]&aliasFlag != 0 {
		return "", fmt.Errorf("%w: %q is a namespace alias", ErrInvalidAddress, rawHex)
	}
	if !validChecksum(raw) {
		return "", fmt.Errorf("%w: %q has a bad checksum", ErrInvalidAddress, rawHex)
	}
	return encoding.EncodeToString(raw), nil
}

// ToRaw converts a base32 address to the upper case hex form the node expects
func ToRaw(addr string) (string, error) {
	raw, err := decode(addr)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

// Network returns the network an address belongs to
func Network(addr string) (NetworkType, error) {
	raw, err := decode(addr)
	if err != nil {
		return 0, err
	}
	return NetworkType(raw[0]), nil
}

// IsValid reports whether addr is a well formed base32 address
func IsValid(addr string) bool {
	_, err := decode(addr)
	return err == nil
}

func decode(addr string) ([]byte, error) {
	addr = strings.ToUpper(strings.ReplaceAll(addr, "-", ""))
	if len(addr) != EncodedSize {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	raw, err := encoding.DecodeString(addr)
	if err != nil || len(raw) != RawSize {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	if !validChecksum(raw) {
		return nil, fmt.Errorf("%w: %q has a bad checksum", ErrInvalidAddress, addr)
	}
	return raw, nil
}

func validChecksum(raw []byte) bool {
	body := raw[:RawSize-checksumSize]
	sum := sha3.Sum256(body)
	return bytes.Equal(sum[:checksumSize], raw[RawSize-checksumSize:])
}

// IsAliasAddress reports whether a hex encoded unresolved address carries a namespace id
func IsAliasAddress(rawHex string) bool {
	if len(rawHex) < 2 {
		return false
	}
	b, err := hex.DecodeString(rawHex[:2])
	if err != nil {
		return false
	}
	return b[0]&aliasFlag != 0
}

// NamespaceIDFromAlias extracts the namespace id from an alias encoded unresolved address
func NamespaceIDFromAlias(rawHex string) (string, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil || len(raw) != RawSize || raw[0]&aliasFlag == 0 {
		return "", fmt.Errorf("%w: %q is not an alias", ErrInvalidAddress, rawHex)
	}
	return FormatID(binary.LittleEndian.Uint64(raw[1:9])), nil
}

// AliasToRaw encodes a namespace id as an unresolved address for the given network
func AliasToRaw(namespaceID string, network NetworkType) (string, error) {
	id, err := ParseID(namespaceID)
	if err != nil {
		return "", err
	}

	raw := make([]byte, RawSize)
	raw[0] = byte(network) | aliasFlag
	binary.LittleEndian.PutUint64(raw[1:9], id)
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}

// IsAliasMosaicID reports whether a hex mosaic id is a namespace id in disguise
func IsAliasMosaicID(idHex string) bool {
	id, err := ParseID(idHex)
	if err != nil {
		return false
	}
	return id&aliasBit != 0
}

// ParseID parses a 64-bit hex identifier (mosaic or namespace id)
func ParseID(idHex string) (uint64, error) {
	if idHex == "" || len(idHex) > 16 {
		return 0, fmt.Errorf("invalid identifier %q", idHex)
	}
	id, err := strconv.ParseUint(idHex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", idHex, err)
	}
	return id, nil
}

// FormatID formats a 64-bit identifier as 16 upper case hex characters
func FormatID(id uint64) string {
	return fmt.Sprintf("%016X", id)
}

// NormalizeID returns the canonical upper case, zero padded form of a hex identifier
func NormalizeID(idHex string) (string, error) {
	id, err := ParseID(idHex)
	if err != nil {
		return "", err
	}
	return FormatID(id), nil
}
