package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/clinicadmin/pkg/cryptox"
	"github.com/aussiebroadwan/clinicadmin/pkg/jwtx"
)

// Keys is the signing material of one process.
type Keys struct {
	KeySet   *jwtx.KeySet
	Signer   *jwtx.EdDSASigner
	Verifier jwtx.Verifier
}

// InitKeys loads the Ed25519 signing key from cfg.Auth.SigningKeyFile,
// creating it on first start, or generates a throwaway key when no file is
// configured.
//
// The kid is derived from the key material so tokens issued before a restart
// keep verifying when the key is persisted.
func InitKeys(cfg Config, logger *slog.Logger) (*Keys, error) {
	var pemKey []byte
	var err error

	if cfg.Auth.SigningKeyFile == "" {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		logger.Warn("using an ephemeral signing key, tokens will not survive a restart")
	} else {
		var created bool
		pemKey, created, err = cryptox.LoadOrGenerateEd25519Key(cfg.Auth.SigningKeyFile)
		if err != nil {
			return nil, err
		}
		if created {
			logger.Info("generated signing key", "path", cfg.Auth.SigningKeyFile)
		}
	}

	sum := sha256.Sum256(pemKey)
	kid := hex.EncodeToString(sum[:8])

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, err
	}

	logger.Info("signing key ready", "kid", kid, "issuer", cfg.Auth.Issuer)
	return &Keys{
		KeySet:   keys,
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, cfg.Auth.Issuer, []string{cfg.Auth.Audience}),
	}, nil
}
