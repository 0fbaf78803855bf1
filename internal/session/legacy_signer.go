package session

import (
	"crypto"
	"crypto/rsa"
	"io"

	"golang.org/x/crypto/ssh"
)

// legacyRSASigner wraps an ssh.Signer to force the ssh-rsa signature format
// for RSA keys. Devices old enough to need the legacy or ultra-legacy
// transport profile are also the ones whose SSH servers reject the newer
// rsa-sha2-256/512 signature formats outright.
type legacyRSASigner struct {
	signer ssh.Signer
}

func (s *legacyRSASigner) PublicKey() ssh.PublicKey {
	return s.signer.PublicKey()
}

func (s *legacyRSASigner) Sign(rand io.Reader, data []byte) (*ssh.Signature, error) {
	if algSigner, ok := s.signer.(ssh.AlgorithmSigner); ok {
		return algSigner.SignWithAlgorithm(rand, data, ssh.KeyAlgoRSA)
	}

	if cs, ok := s.signer.(interface{ CryptoSigner() crypto.Signer }); ok {
		if rsaKey, ok := cs.CryptoSigner().(*rsa.PrivateKey); ok {
			h := crypto.SHA1.New()
			h.Write(data)
			digest := h.Sum(nil)

			sig, err := rsa.SignPKCS1v15(rand, rsaKey, crypto.SHA1, digest)
			if err != nil {
				return nil, err
			}
			return &ssh.Signature{Format: ssh.KeyAlgoRSA, Blob: sig}, nil
		}
	}

	return s.signer.Sign(rand, data)
}

func (s *legacyRSASigner) SignWithAlgorithm(rand io.Reader, data []byte, algorithm string) (*ssh.Signature, error) {
	if algSigner, ok := s.signer.(ssh.AlgorithmSigner); ok {
		return algSigner.SignWithAlgorithm(rand, data, ssh.KeyAlgoRSA)
	}
	return s.Sign(rand, data)
}

// wrapLegacyRSA wraps an RSA signer so it always negotiates ssh-rsa; other
// key types (ed25519, ecdsa) pass through unchanged.
func wrapLegacyRSA(signer ssh.Signer) ssh.Signer {
	if signer == nil {
		return nil
	}
	pubKey := signer.PublicKey()
	if pubKey == nil {
		return signer
	}
	if pubKey.Type() == ssh.KeyAlgoRSA {
		return &legacyRSASigner{signer: signer}
	}
	return signer
}

var (
	_ ssh.Signer          = (*legacyRSASigner)(nil)
	_ ssh.AlgorithmSigner = (*legacyRSASigner)(nil)
)
