package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"
)

// KeySet holds Ed25519 verification keys by kid. Safe for concurrent use.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]ed25519.PublicKey)}
}

// AddSigner registers the public half of s.
func (k *KeySet) AddSigner(s Signer) error {
	return k.Add(s.KID(), s.PublicKey())
}

// Add registers pub under kid, replacing any previous key.
func (k *KeySet) Add(kid string, pub ed25519.PublicKey) error {
	if len(pub) != ed25519.PublicKeySize {
		return errors.New("jwtx: invalid Ed25519 public key size")
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[kid] = pub
	return nil
}

// Get returns the key for kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.keys[kid]; ok {
		return pk, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
