package cashfree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRoundAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1200, 1200},
		{99.999, 100},
		{10.004, 10},
		{10.005, 10.01},
		{0.1 + 0.2, 0.3},
	}
	for _, c := range cases {
		if got := RoundAmount(c.in); got != c.want {
			t.Errorf("RoundAmount(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCreateTicketLink(t *testing.T) {
	var gotHeaders http.Header
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{
			"link_id": "rcb_ticket_123",
			"link_url": "https://pay.example/abc",
			"link_qrcode": "data:image/png;base64,Zm9v"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "2023-08-01", "app-id", "secret")

	link, err := client.CreateTicketLink(context.Background(), "rcb_ticket_123", 1234.567)
	if err != nil {
		t.Fatalf("CreateTicketLink: %v", err)
	}

	if gotHeaders.Get("x-client-id") != "app-id" {
		t.Errorf("x-client-id = %q", gotHeaders.Get("x-client-id"))
	}
	if gotHeaders.Get("x-client-secret") != "secret" {
		t.Errorf("x-client-secret = %q", gotHeaders.Get("x-client-secret"))
	}
	if gotHeaders.Get("x-api-version") != "2023-08-01" {
		t.Errorf("x-api-version = %q", gotHeaders.Get("x-api-version"))
	}

	if gotBody["link_amount"] != 1234.57 {
		t.Errorf("link_amount = %v, want 1234.57", gotBody["link_amount"])
	}
	if gotBody["link_currency"] != "INR" {
		t.Errorf("link_currency = %v", gotBody["link_currency"])
	}
	if gotBody["link_id"] != "rcb_ticket_123" {
		t.Errorf("link_id = %v", gotBody["link_id"])
	}
	customer, _ := gotBody["customer_details"].(map[string]interface{})
	if customer["customer_phone"] != "9999999999" {
		t.Errorf("customer_details = %v", customer)
	}

	if link.LinkID != "rcb_ticket_123" {
		t.Errorf("LinkID = %q", link.LinkID)
	}
	if link.LinkURL != "https://pay.example/abc" {
		t.Errorf("LinkURL = %q", link.LinkURL)
	}
	if string(link.QRCode) != `"data:image/png;base64,Zm9v"` {
		t.Errorf("QRCode = %s", link.QRCode)
	}
}

func TestCreateTicketLinkProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"authentication failed","code":"request_failed"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "2023-08-01", "bad", "creds")

	_, err := client.CreateTicketLink(context.Background(), "rcb_ticket_1", 100)
	if err == nil {
		t.Fatal("want error")
	}

	pe, ok := AsProviderError(err)
	if !ok {
		t.Fatalf("want ProviderError, got %T: %v", err, err)
	}
	if pe.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", pe.StatusCode)
	}
	var body map[string]string
	if err := json.Unmarshal(pe.Body, &body); err != nil || body["message"] != "authentication failed" {
		t.Errorf("Body = %s", pe.Body)
	}
}

func TestCreateTicketLinkNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "2023-08-01", "a", "b")

	_, err := client.CreateTicketLink(context.Background(), "rcb_ticket_1", 100)
	if err == nil {
		t.Fatal("want error")
	}
	if _, ok := AsProviderError(err); ok {
		t.Errorf("network failure should not be a ProviderError: %v", err)
	}
}
