package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewGateway(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GatewayConfig
		wantErr error
	}{
		{name: "MissingBaseURL", cfg: GatewayConfig{APIKey: "key"}, wantErr: ErrGatewayBaseURLRequired},
		{name: "MissingAPIKey", cfg: GatewayConfig{BaseURL: "http://localhost"}, wantErr: ErrGatewayAPIKeyRequired},
		{name: "Valid", cfg: GatewayConfig{BaseURL: "http://localhost", APIKey: "key"}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGateway(tt.cfg)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g == nil {
				t.Fatal("expected gateway, got nil")
			}
		})
	}
}

func TestGatewaySend(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotRecipient, gotText string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			gotRecipient = r.PostFormValue("recipient")
			gotText = r.PostFormValue("text")
			w.Write([]byte(`{"code":0,"data":{"messageId":"m-1"}}`))
		}))
		defer srv.Close()

		g, err := NewGateway(GatewayConfig{BaseURL: srv.URL, APIKey: "key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = g.Send(context.Background(), Message{To: "010-1234-5678", Text: "code 123456"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotRecipient != "010-1234-5678" {
			t.Errorf("expected recipient to be forwarded, got %q", gotRecipient)
		}
		if gotText != "code 123456" {
			t.Errorf("expected text to be forwarded, got %q", gotText)
		}
	})

	t.Run("ProviderErrorCode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":7}`))
		}))
		defer srv.Close()

		g, err := NewGateway(GatewayConfig{BaseURL: srv.URL, APIKey: "key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = g.Send(context.Background(), Message{To: "010-1234-5678", Text: "x"})

		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("RetriesServerError", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"code":0}`))
		}))
		defer srv.Close()

		g, err := NewGateway(GatewayConfig{
			BaseURL:    srv.URL,
			APIKey:     "key",
			MaxRetries: 2,
			Backoff:    time.Millisecond,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = g.Send(context.Background(), Message{To: "010-1234-5678", Text: "x"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 attempts, got %d", calls)
		}
	})

	t.Run("ClientErrorNotRetried", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		g, err := NewGateway(GatewayConfig{
			BaseURL:    srv.URL,
			APIKey:     "key",
			MaxRetries: 3,
			Backoff:    time.Millisecond,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = g.Send(context.Background(), Message{To: "010-1234-5678", Text: "x"})

		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if calls != 1 {
			t.Errorf("expected 1 attempt, got %d", calls)
		}
	})
}
