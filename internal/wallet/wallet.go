package wallet

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	crypto "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/go-sdk/script"
)

// Key holds a secp256k1 private key and its derived P2PKH address.
type Key struct {
	PrivateKey *ec.PrivateKey
	PublicKey  []byte // 33-byte compressed public key
	Address    string // Base58Check P2PKH address (mainnet)
	WIF        string
}

// Load creates a key from a WIF-encoded private key.
func Load(wif string) (*Key, error) {
	if wif == "" {
		return nil, fmt.Errorf("no wallet key provided")
	}

	privKey, err := ec.PrivateKeyFromWif(wif)
	if err != nil {
		return nil, fmt.Errorf("decode WIF: %w", err)
	}
	return fromPrivateKey(privKey, wif)
}

// Generate creates a new random key.
func Generate() (*Key, error) {
	privKey, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return fromPrivateKey(privKey, privKey.Wif())
}

func fromPrivateKey(privKey *ec.PrivateKey, wif string) (*Key, error) {
	addr, err := script.NewAddressFromPublicKey(privKey.PubKey(), true)
	if err != nil {
		return nil, fmt.Errorf("derive address: %w", err)
	}
	return &Key{
		PrivateKey: privKey,
		PublicKey:  privKey.PubKey().Compressed(),
		Address:    addr.AddressString,
		WIF:        wif,
	}, nil
}

// Sign produces a DER-encoded ECDSA signature of the double-SHA256 hash of data.
func (k *Key) Sign(data []byte) ([]byte, error) {
	hash := crypto.Sha256d(data)
	sig, err := k.PrivateKey.Sign(hash)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig.Serialize(), nil
}

// Prove signs the double-SHA256 of challenge and checks the signature
// against the key's own public key.
func (k *Key) Prove(challenge []byte) error {
	hash := crypto.Sha256d(challenge)
	sig, err := k.PrivateKey.Sign(hash)
	if err != nil {
		return fmt.Errorf("sign challenge: %w", err)
	}
	if !sig.Verify(hash, k.PrivateKey.PubKey()) {
		return fmt.Errorf("challenge signature did not verify")
	}
	return nil
}

// KeyConnector proves control of a local key by signing a fresh challenge
// and yields the key's address. It has no artificial delay.
type KeyConnector struct {
	key *Key
}

// NewKeyConnector loads the WIF once; a bad key fails here, not per connect.
func NewKeyConnector(wif string) (*KeyConnector, error) {
	k, err := Load(wif)
	if err != nil {
		return nil, err
	}
	log.Printf("[wallet] Key connector ready, address: %s", k.Address)
	return &KeyConnector{key: k}, nil
}

// Address returns the address every successful connect resolves to.
func (c *KeyConnector) Address() string { return c.key.Address }

func (c *KeyConnector) Connect(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		if err := ctx.Err(); err != nil {
			out <- Result{Err: err}
			return
		}
		challenge := make([]byte, 32)
		if _, err := rand.Read(challenge); err != nil {
			out <- Result{Err: fmt.Errorf("challenge: %w", err)}
			return
		}
		if err := c.key.Prove(challenge); err != nil {
			out <- Result{Err: err}
			return
		}
		out <- Result{Address: c.key.Address}
	}()
	return out
}
