package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"campuspay/models"
)

// PaymentsAPI submits normalized payments to the remote backend.
type PaymentsAPI interface {
	// SubmitPayment returns the server-assigned receipt number.
	SubmitPayment(ctx context.Context, sub models.PaymentSubmission) (string, error)
}

type httpPaymentsClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPPaymentsClient returns a PaymentsAPI for the backend at baseURL.
func NewHTTPPaymentsClient(baseURL, token string) PaymentsAPI {
	return &httpPaymentsClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *httpPaymentsClient) SubmitPayment(ctx context.Context, sub models.PaymentSubmission) (string, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The rejection body (string or structured field errors) is kept
		// verbatim for user-facing display.
		return "", RemoteRejectedError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var created struct {
		ReceiptNumber string `json:"receipt_number"`
	}
	if err := json.Unmarshal(raw, &created); err != nil || created.ReceiptNumber == "" {
		// Some backends return an empty body on create; the client-side
		// placeholder receipt remains authoritative then.
		return sub.ReceiptNumber, nil
	}
	return created.ReceiptNumber, nil
}
