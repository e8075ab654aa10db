package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postmarkConfig() Config {
	return Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@staka-livres.fr",
		SupportEmail:         "contact@staka-livres.fr",
	}
}

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty server token", func(c *Config) { c.PostmarkServerToken = "" }, "PostmarkServerToken is required"},
		{"empty account token", func(c *Config) { c.PostmarkAccountToken = "" }, "PostmarkAccountToken is required"},
		{"empty sender", func(c *Config) { c.SenderEmail = "" }, "SenderEmail is required"},
		{"invalid sender", func(c *Config) { c.SenderEmail = "nope" }, "SenderEmail must be a valid email address"},
		{"empty support", func(c *Config) { c.SupportEmail = "" }, "SupportEmail is required"},
		{"invalid support", func(c *Config) { c.SupportEmail = "nope" }, "SupportEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := postmarkConfig()
			tt.mutate(&cfg)
			client, err := NewPostmarkClient(cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.Panics(t, func() { MustNewPostmarkClient(Config{}) })
}

func newPostmarkTestClient(t *testing.T, handler http.HandlerFunc) *postmarkClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sender, err := NewPostmarkClient(postmarkConfig())
	require.NoError(t, err)
	c := sender.(*postmarkClient)
	c.client.BaseURL = srv.URL
	return c
}

func TestPostmarkClient_SendEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var body map[string]any
		c := newPostmarkTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "server-token", r.Header.Get("X-Postmark-Server-Token"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK","MessageID":"abc"}`))
		})

		err := c.SendEmail(ctx, SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "[Admin] Nouveau message client",
			BodyHTML: "<p>hi</p>",
			Tag:      "sendAdminNotifEmail",
		})
		require.NoError(t, err)
		assert.Equal(t, "noreply@staka-livres.fr", body["From"])
		assert.Equal(t, "contact@staka-livres.fr", body["ReplyTo"])
		assert.Equal(t, "user@example.com", body["To"])
		assert.Equal(t, "sendAdminNotifEmail", body["Tag"])
	})

	t.Run("provider error code", func(t *testing.T) {
		t.Parallel()

		c := newPostmarkTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"ErrorCode":406,"Message":"Inactive recipient"}`))
		})

		err := c.SendEmail(ctx, SendEmailParams{SendTo: "user@example.com", Subject: "s", BodyHTML: "b"})
		assert.ErrorIs(t, err, ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "Inactive recipient")
	})

	t.Run("validation happens before the request", func(t *testing.T) {
		t.Parallel()

		c := newPostmarkTestClient(t, func(http.ResponseWriter, *http.Request) {
			t.Error("request must not be sent")
		})
		err := c.SendEmail(ctx, SendEmailParams{SendTo: "bad"})
		assert.ErrorIs(t, err, ErrInvalidParams)
	})
}
