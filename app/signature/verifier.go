package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks Razorpay payment callbacks. The gateway signs
// "<externalOrderID>|<paymentRef>" with the shared key secret and sends the
// lowercase hex HMAC-SHA256 digest alongside the callback.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Sign(externalOrderID, paymentRef string) string {
	mac := hmac.New(sha256.New, v.secret)
	_, _ = mac.Write([]byte(externalOrderID + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time so response timing leaks nothing about
// the expected digest.
func (v *Verifier) Verify(externalOrderID, paymentRef, suppliedSignature string) bool {
	supplied, err := hex.DecodeString(suppliedSignature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	_, _ = mac.Write([]byte(externalOrderID + "|" + paymentRef))
	expected := mac.Sum(nil)

	return hmac.Equal(supplied, expected)
}
