package http_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/lobalabs/lobabot/internal/adapters/http"
	"github.com/lobalabs/lobabot/pkg/domain"
)

type recordedMessage struct {
	UserID string
	Input  domain.Input
}

type fakeHandler struct {
	messages []recordedMessage
}

func (f *fakeHandler) HandleMessage(ctx context.Context, userID string, input domain.Input) {
	f.messages = append(f.messages, recordedMessage{UserID: userID, Input: input})
}

func TestServer_Verify(t *testing.T) {
	handler := httpAdapter.NewHandler(&fakeHandler{}, "secreto")
	srv := httptest.NewServer(handler)
	defer srv.Close()

	t.Run("valid token echoes challenge", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/webhook?hub.mode=subscribe&hub.challenge=12345&hub.verify_token=secreto")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		body := make([]byte, 16)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, "12345", string(body[:n]))
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/webhook?hub.mode=subscribe&hub.challenge=12345&hub.verify_token=otro")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("missing mode rejected", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/webhook?hub.verify_token=secreto")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 403, resp.StatusCode)
	})
}

func TestServer_Receive(t *testing.T) {
	const textPayload = `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"messages": [{
						"from": "56911112222",
						"id": "wamid.1",
						"type": "text",
						"text": {"body": "hola"}
					}]
				}
			}]
		}]
	}`

	t.Run("text message dispatched", func(t *testing.T) {
		fake := &fakeHandler{}
		srv := httptest.NewServer(httpAdapter.NewHandler(fake, "secreto"))
		defer srv.Close()

		resp, err := srv.Client().Post(srv.URL+"/webhook", "application/json", strings.NewReader(textPayload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		require.Len(t, fake.messages, 1)
		assert.Equal(t, "56911112222", fake.messages[0].UserID)
		assert.Equal(t, domain.Input{Text: "hola", Kind: domain.KindFreeText}, fake.messages[0].Input)
	})

	t.Run("list reply dispatched as menu selection", func(t *testing.T) {
		payload := `{
			"entry": [{
				"changes": [{
					"value": {
						"messages": [{
							"from": "56911112222",
							"type": "interactive",
							"interactive": {"type": "list_reply", "list_reply": {"id": "paseos", "title": "Paseos"}}
						}]
					}
				}]
			}]
		}`

		fake := &fakeHandler{}
		srv := httptest.NewServer(httpAdapter.NewHandler(fake, "secreto"))
		defer srv.Close()

		resp, err := srv.Client().Post(srv.URL+"/webhook", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Len(t, fake.messages, 1)
		assert.Equal(t, domain.Input{Text: "paseos", Kind: domain.KindMenuSelection}, fake.messages[0].Input)
	})

	t.Run("statuses only payload ignored", func(t *testing.T) {
		payload := `{
			"entry": [{
				"changes": [{
					"value": {"statuses": [{"id": "wamid.2", "status": "delivered"}]}
				}]
			}]
		}`

		fake := &fakeHandler{}
		srv := httptest.NewServer(httpAdapter.NewHandler(fake, "secreto"))
		defer srv.Close()

		resp, err := srv.Client().Post(srv.URL+"/webhook", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.Empty(t, fake.messages)
	})

	t.Run("no entry ignored", func(t *testing.T) {
		fake := &fakeHandler{}
		srv := httptest.NewServer(httpAdapter.NewHandler(fake, "secreto"))
		defer srv.Close()

		resp, err := srv.Client().Post(srv.URL+"/webhook", "application/json", strings.NewReader(`{"object":"whatsapp_business_account"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.Empty(t, fake.messages)
	})

	t.Run("malformed body still 200", func(t *testing.T) {
		fake := &fakeHandler{}
		srv := httptest.NewServer(httpAdapter.NewHandler(fake, "secreto"))
		defer srv.Close()

		resp, err := srv.Client().Post(srv.URL+"/webhook", "application/json", strings.NewReader(`{nope`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.Empty(t, fake.messages)
	})
}

func TestServer_Healthz(t *testing.T) {
	srv := httptest.NewServer(httpAdapter.NewHandler(&fakeHandler{}, "secreto"))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	srv := httptest.NewServer(httpAdapter.NewHandler(&fakeHandler{}, "secreto"))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}
