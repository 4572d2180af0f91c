package providers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signCallback(secret, linkID, referenceID, status, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(linkID + "|" + referenceID + "|" + status + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateRazorpayGateway_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		keyID  string
		secret string
	}{
		{"no key id", "", "secret"},
		{"no secret", "rzp_test_key", ""},
		{"neither", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CreateRazorpayGateway(tt.keyID, tt.secret); err == nil {
				t.Error("CreateRazorpayGateway() = nil error, want credentials error")
			}
		})
	}
}

func TestVerifyCallbackSignature(t *testing.T) {
	gateway, err := CreateRazorpayGateway("rzp_test_key", "test_secret")
	if err != nil {
		t.Fatal(err)
	}

	valid := signCallback("test_secret", "plink_123", "INV-1758000000000-ABCDEF123", "paid", "pay_987")

	if err := gateway.VerifyCallbackSignature("plink_123", "INV-1758000000000-ABCDEF123", "paid", "pay_987", valid); err != nil {
		t.Errorf("VerifyCallbackSignature() rejected a valid signature: %v", err)
	}

	tests := []struct {
		name      string
		status    string
		signature string
	}{
		{"forged signature", "paid", "deadbeef"},
		{"signed with wrong secret", "paid", signCallback("other_secret", "plink_123", "INV-1758000000000-ABCDEF123", "paid", "pay_987")},
		{"status tampered after signing", "failed", valid},
		{"empty signature", "paid", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := gateway.VerifyCallbackSignature("plink_123", "INV-1758000000000-ABCDEF123", tt.status, "pay_987", tt.signature); err == nil {
				t.Error("VerifyCallbackSignature() accepted a bad signature")
			}
		})
	}
}
