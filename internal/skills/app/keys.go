package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/myskills/pkg/cryptox"
	"github.com/aussiebroadwan/myskills/pkg/jwtx"
)

// SessionKeys bundles the signing key for session cookies with the key set
// and verifier that check them.
type SessionKeys struct {
	Signer   jwtx.Signer
	KeySet   *jwtx.KeySet
	Verifier jwtx.Verifier
}

// InitSessionKeys loads the Ed25519 signing key.
//
// When cfg.SigningKeyFile is set the key is read from that PEM file, or
// generated and written there on first start, so sessions survive restarts.
// Without it the key lives only in memory and every restart signs everyone
// out.
func InitSessionKeys(cfg Config, issuer string, logger *slog.Logger) (*SessionKeys, error) {
	var (
		pemKey []byte
		err    error
	)
	if cfg.SigningKeyFile != "" {
		pemKey, err = cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
	} else {
		pemKey, err = cryptox.GenerateEd25519Key()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key id: %w", err)
	}

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("failed to register signer: %w", err)
	}

	if cfg.SigningKeyFile != "" {
		logger.Info("session signing key loaded", "kid", kid, "path", cfg.SigningKeyFile)
	} else {
		logger.Warn("ephemeral session signing key generated; sessions end on restart", "kid", kid)
	}

	return &SessionKeys{
		Signer:   signer,
		KeySet:   keys,
		Verifier: jwtx.NewVerifierEdDSA(keys, issuer),
	}, nil
}
