// Package billing integrates the Sipay card-present checkout: 3-D Secure
// initiation, webhook HMAC verification and the plan-entitlement
// reconciliation that follows a successful payment.
package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutRequest carries the card-present fields for a paySmart3D call.
type CheckoutRequest struct {
	InvoiceID    string
	Total        string // formatted amount, e.g. "199.00"
	Installments int
	Currency     string // "TRY"

	HolderName  string
	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string

	CustomerName  string
	CustomerEmail string
}

// Client talks to the Sipay API. There is no official Go SDK; the surface is
// two form-encoded endpoints and an HMAC convention.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Sipay client. A nil httpClient gets a sane timeout;
// the gateway occasionally stalls and a checkout must not hang a handler.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// CheckoutHash computes the request signature: HMAC-SHA256 over the
// pipe-delimited total|installments|currency|merchantKey|invoiceID, keyed by
// the app secret, hex-encoded.
func (c *Client) CheckoutHash(total string, installments int, currency, invoiceID string) string {
	payload := strings.Join([]string{
		total,
		strconv.Itoa(installments),
		currency,
		c.cfg.MerchantKey,
		invoiceID,
	}, "|")
	return c.sign(payload)
}

// VerifyWebhookHash recomputes the callback signature over
// invoiceID|status|netAmount and compares it in constant time. A mismatch is
// ErrHashMismatch and the caller must apply no state change.
func (c *Client) VerifyWebhookHash(invoiceID, status, netAmount, gotHash string) error {
	expected := c.sign(strings.Join([]string{invoiceID, status, netAmount}, "|"))
	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return ErrHashMismatch
	}
	return nil
}

// PaySmart3D submits the checkout and returns the provider's response body
// verbatim: it is the 3-D Secure HTML the caller renders in an iframe.
func (c *Client) PaySmart3D(ctx context.Context, req CheckoutRequest) ([]byte, error) {
	form := url.Values{
		"merchant_key":        {c.cfg.MerchantKey},
		"app_id":              {c.cfg.AppID},
		"invoice_id":          {req.InvoiceID},
		"total":               {req.Total},
		"installments_number": {strconv.Itoa(req.Installments)},
		"currency_code":       {req.Currency},
		"cc_holder_name":      {req.HolderName},
		"cc_no":               {req.CardNumber},
		"expiry_month":        {req.ExpiryMonth},
		"expiry_year":         {req.ExpiryYear},
		"cvv":                 {req.CVV},
		"name":                {req.CustomerName},
		"bill_email":          {req.CustomerEmail},
		"hash_key":            {c.CheckoutHash(req.Total, req.Installments, req.Currency, req.InvoiceID)},
		"return_url":          {c.cfg.AppBaseURL + "/payment/success"},
		"cancel_url":          {c.cfg.AppBaseURL + "/payment/failed"},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/api/paySmart3D",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrGateway, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, truncate(body, 256))
	}

	return body, nil
}

func (c *Client) sign(payload string) string {
	h := hmac.New(sha256.New, []byte(c.cfg.AppSecret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
