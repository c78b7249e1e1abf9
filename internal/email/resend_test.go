package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendClientSend(t *testing.T) {
	var got Message
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" {
			t.Errorf("path = %q, want /emails", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "email-123"})
	}))
	defer srv.Close()

	c := NewResendClient("test-key", srv.URL)

	receipt, err := c.Send(context.Background(), Message{
		From:    "Aphonix Studios <onboarding@resend.dev>",
		To:      []string{"aphonixstudios@gmail.com"},
		Subject: "🛒 New Order: Logo Design",
		HTML:    "<p>hi</p>",
	})
	if err != nil {
		t.Fatal(err)
	}

	if receipt.ID != "email-123" {
		t.Errorf("receipt id = %q", receipt.ID)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if got.From != "Aphonix Studios <onboarding@resend.dev>" {
		t.Errorf("from = %q", got.From)
	}
	if len(got.To) != 1 || got.To[0] != "aphonixstudios@gmail.com" {
		t.Errorf("to = %v", got.To)
	}
	if got.HTML == "" {
		t.Error("html body missing")
	}
}

func TestResendClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid recipient"})
	}))
	defer srv.Close()

	c := NewResendClient("test-key", srv.URL)

	_, err := c.Send(context.Background(), Message{To: []string{"nope"}})
	if err == nil {
		t.Fatal("expected an error")
	}
	if want := "email provider error: invalid recipient"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestResendClientUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed on purpose

	c := NewResendClient("test-key", srv.URL)

	if _, err := c.Send(context.Background(), Message{}); err == nil {
		t.Fatal("expected a connection error")
	}
}
