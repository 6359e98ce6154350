package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campuspay/models"

	"github.com/stretchr/testify/require"
)

func TestSubmitPaymentSuccess(t *testing.T) {
	var got models.PaymentSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payments/", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"receipt_number": "RCT-2026-001"})
	}))
	defer srv.Close()

	client := NewHTTPPaymentsClient(srv.URL, "token-1")
	receipt, err := client.SubmitPayment(context.Background(), models.PaymentSubmission{
		Student: 7, Amount: 50, PaymentMethod: models.MethodCash,
		FeeType: models.FeeTuition, ReceiptNumber: "7-1", Status: "pending",
	})
	require.NoError(t, err)
	require.Equal(t, "RCT-2026-001", receipt, "server-assigned receipt wins")
	require.Equal(t, 7, got.Student)
	require.Equal(t, "pending", got.Status)
}

func TestSubmitPaymentEmptyBodyKeepsPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewHTTPPaymentsClient(srv.URL, "")
	receipt, err := client.SubmitPayment(context.Background(), models.PaymentSubmission{ReceiptNumber: "7-99"})
	require.NoError(t, err)
	require.Equal(t, "7-99", receipt)
}

func TestSubmitPaymentRejectionRetainsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"student":["does not exist"]}`))
	}))
	defer srv.Close()

	client := NewHTTPPaymentsClient(srv.URL, "")
	_, err := client.SubmitPayment(context.Background(), models.PaymentSubmission{})
	var rejected RemoteRejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, http.StatusBadRequest, rejected.StatusCode)
	require.Contains(t, rejected.Body, "does not exist", "structured field errors are kept verbatim")
}

func TestSubmitPaymentNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewHTTPPaymentsClient(srv.URL, "")
	_, err := client.SubmitPayment(context.Background(), models.PaymentSubmission{})
	var netErr NetworkError
	require.ErrorAs(t, err, &netErr)
}
