package signer

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rcastle4778/coinbase1/pkg/hex"
)

// Algorithm selects the signature scheme of a key.
type Algorithm string

const (
	// secp256k1 over a keccak256 digest, recoverable signature
	K256Keccak Algorithm = "k256-keccak"
	// ed25519 over the raw payload
	Ed255 Algorithm = "ed255"
)

// Signer signs an arbitrary payload. The staking orchestration consumes this
// capability at sign time and never retains the key.
type Signer interface {
	Sign(payload []byte) ([]byte, error)
	PublicKey() ([]byte, error)
}

const EnvPrivateKey = "STAKER_PRIVATE_KEY"

func ReadPrivateKeyEnv() string {
	return os.Getenv(EnvPrivateKey)
}

// LocalSigner is a reference implementation holding the key in memory -
// not meant to be used for production key management.
type LocalSigner struct {
	algorithm  Algorithm
	privateKey []byte
}

var _ Signer = &LocalSigner{}

func New(algorithm Algorithm, secret string) (*LocalSigner, error) {
	secretBz, err := hex.Decode(strings.TrimSpace(secret))
	if err != nil {
		return nil, fmt.Errorf("expected private key to be a hex string")
	}

	switch algorithm {
	case Ed255:
		if len(secretBz) == ed25519.SeedSize {
			key := ed25519.NewKeyFromSeed(secretBz)
			return &LocalSigner{algorithm, key}, nil
		}
		if len(secretBz) == ed25519.PrivateKeySize {
			return &LocalSigner{algorithm, secretBz}, nil
		}
		return nil, errors.New("expected ed25519 key to be 64 or 32 bytes")
	case K256Keccak:
		if len(secretBz) != btcec.PrivKeyBytesLen {
			return nil, fmt.Errorf("expected secp256k1 key to be %d bytes", btcec.PrivKeyBytesLen)
		}
		if _, err := crypto.ToECDSA(secretBz); err != nil {
			return nil, err
		}
		return &LocalSigner{algorithm, secretBz}, nil
	default:
		return nil, fmt.Errorf("unsupported signing alg: %v", algorithm)
	}
}

func (s *LocalSigner) Sign(payload []byte) ([]byte, error) {
	switch s.algorithm {
	case Ed255:
		return ed25519.Sign(ed25519.PrivateKey(s.privateKey), payload), nil
	case K256Keccak:
		ecdsaKey, err := crypto.ToECDSA(s.privateKey)
		if err != nil {
			return nil, err
		}
		digest := crypto.Keccak256(payload)
		return crypto.Sign(digest, ecdsaKey)
	default:
		return nil, fmt.Errorf("unsupported signing alg: %v", s.algorithm)
	}
}

func (s *LocalSigner) PublicKey() ([]byte, error) {
	switch s.algorithm {
	case Ed255:
		key := ed25519.PrivateKey(s.privateKey)
		return key.Public().(ed25519.PublicKey), nil
	case K256Keccak:
		privKey, _ := btcec.PrivKeyFromBytes(s.privateKey)
		return privKey.PubKey().SerializeCompressed(), nil
	default:
		return nil, fmt.Errorf("unsupported signing alg: %v", s.algorithm)
	}
}
