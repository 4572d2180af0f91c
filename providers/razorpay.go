package providers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentLinkRequest is the gateway-facing shape for minting a hosted payment
// link. Amount is in minor currency units (paise).
type PaymentLinkRequest struct {
	Amount        int64
	Currency      string
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         map[string]interface{}
	CallbackURL   string
	ExpireBy      int64
}

type PaymentLink struct {
	ID       string
	ShortURL string
	Status   string
	Currency string
}

type RazorpayGateway struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

// CreateRazorpayGateway is the single construction path for the gateway.
// Missing credentials are an error, never a silently disabled client.
func CreateRazorpayGateway(keyID, keySecret string) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay credentials are not configured")
	}
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		client:    razorpay.NewClient(keyID, keySecret),
	}, nil
}

func (g *RazorpayGateway) CreatePaymentLink(ctx context.Context, req *PaymentLinkRequest) (*PaymentLink, error) {
	linkData := map[string]interface{}{
		"amount":         req.Amount,
		"currency":       req.Currency,
		"accept_partial": false,
		"description":    req.Description,
		"customer": map[string]interface{}{
			"name":    req.CustomerName,
			"email":   req.CustomerEmail,
			"contact": req.CustomerPhone,
		},
		"notify": map[string]interface{}{
			"sms":   req.CustomerPhone != "",
			"email": req.CustomerEmail != "",
		},
		"reminder_enable": true,
		"callback_method": "get",
	}

	if req.Notes != nil {
		linkData["notes"] = req.Notes
	}
	if req.CallbackURL != "" {
		linkData["callback_url"] = req.CallbackURL
	}
	if req.ExpireBy > 0 {
		linkData["expire_by"] = req.ExpireBy
	}

	link, err := g.client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment link creation failed: %w", err)
	}

	return &PaymentLink{
		ID:       g.getStringValue(link, "id"),
		ShortURL: g.getStringValue(link, "short_url"),
		Status:   g.getStringValue(link, "status"),
		Currency: g.getStringValue(link, "currency"),
	}, nil
}

// VerifyCallbackSignature checks the HMAC Razorpay attaches to payment-link
// redirects: SHA-256 over the pipe-joined callback fields, keyed by the key
// secret, hex encoded.
func (g *RazorpayGateway) VerifyCallbackSignature(linkID, referenceID, status, paymentID, signature string) error {
	payload := strings.Join([]string{linkID, referenceID, status, paymentID}, "|")

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return fmt.Errorf("callback signature verification failed")
	}
	return nil
}

func (g *RazorpayGateway) getStringValue(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
