package push

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/power-play/models"
)

func newTestSender(t *testing.T, client webpush.HTTPClient) Sender {
	t.Helper()
	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)
	sender, err := NewWebPushSender(VAPIDConfig{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		Subject:    "mailto:admin@example.com",
	}, client)
	require.NoError(t, err)
	return sender
}

func browserSubscription(t *testing.T, endpoint string) models.PushSubscription {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)
	return models.PushSubscription{
		ID:       1,
		UserID:   1,
		Endpoint: endpoint,
		P256dh:   base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()),
		Auth:     base64.RawURLEncoding.EncodeToString(auth),
	}
}

func TestNewWebPushSender_RequiresKeys(t *testing.T) {
	_, err := NewWebPushSender(VAPIDConfig{PublicKey: "pub"}, nil)
	assert.Error(t, err)
}

func TestSend_StatusHandling(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
		failed  bool
	}{
		{status: http.StatusCreated},
		{status: http.StatusGone, wantErr: ErrSubscriptionGone},
		{status: http.StatusNotFound, wantErr: ErrSubscriptionGone},
		{status: http.StatusTooManyRequests, failed: true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var gotAuth, gotEncoding string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				gotEncoding = r.Header.Get("Content-Encoding")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			sender := newTestSender(t, srv.Client())
			err := sender.Send(context.Background(), browserSubscription(t, srv.URL+"/push/abc"), []byte(`{"title":"hi"}`))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.failed:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrSubscriptionGone)
			default:
				require.NoError(t, err)
			}
			assert.True(t, strings.HasPrefix(gotAuth, "vapid "), "request is signed with VAPID")
			assert.Equal(t, "aes128gcm", gotEncoding)
		})
	}
}

func TestNopSender(t *testing.T) {
	assert.NoError(t, NopSender{}.Send(context.Background(), models.PushSubscription{}, nil))
}
