package designer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	designerhttp "github.com/mailforge/designer/modules/designer"
	"github.com/mailforge/designer/pkg/coreemail"
	"github.com/mailforge/designer/pkg/designer"
	"github.com/mailforge/designer/pkg/dispatch"
	"github.com/mailforge/designer/pkg/email"
)

type fakeSender struct {
	provider string
	sent     []email.Message
}

func (f *fakeSender) Send(ctx context.Context, msg email.Message) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) ProviderName() string { return f.provider }

type testEnv struct {
	server *httptest.Server
	sender *fakeSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	templateStore := designer.NewMemoryTemplateStore()
	sender := &fakeSender{provider: email.ProviderPostmark}

	r := designerhttp.Router(designerhttp.RouterOptions{
		Templates:  designer.NewService(templateStore, designer.NewMemoryVersionStore()),
		CoreEmails: coreemail.NewService(coreemail.NewMemorySettingsStore()),
		Dispatcher: dispatch.New(templateStore, sender),
		ServerURL:  "https://app.example.com",
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return &testEnv{server: server, sender: sender}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, payload)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func (e *testEnv) createTemplate(t *testing.T, body map[string]any) designer.Template {
	t.Helper()

	resp, raw := e.do(t, http.MethodPost, "/templates/new", body, map[string]string{"X-Changed-By": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var tpl designer.Template
	require.NoError(t, json.Unmarshal(raw, &tpl))
	return tpl
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Error.Code
}

func TestRouter_TemplateCRUD(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := env.createTemplate(t, map[string]any{
		"name":     "welcome",
		"subject":  "Welcome!",
		"bodyHtml": "<p>hi</p>",
	})
	assert.NotEmpty(t, created.ID)

	resp, raw := env.do(t, http.MethodGet, "/templates", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []designer.Template
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	resp, raw = env.do(t, http.MethodGet, "/templates/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got designer.Template
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "welcome", got.Name)

	resp, _ = env.do(t, http.MethodDelete, "/templates/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/templates/"+created.ID, nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", errorCode(t, raw))
}

func TestRouter_SaveConflict(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.createTemplate(t, map[string]any{"name": "first", "templateReferenceId": 5})

	resp, raw := env.do(t, http.MethodPost, "/templates/new", map[string]any{
		"name": "second", "templateReferenceId": 5,
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "reference_id_taken", errorCode(t, raw))
}

func TestRouter_SaveValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodPost, "/templates/new", map[string]any{
		"name": "bad", "templateReferenceId": 0,
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", errorCode(t, raw))
}

func TestRouter_VersionsFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := env.createTemplate(t, map[string]any{"name": "v1", "subject": "s"})

	resp, raw := env.do(t, http.MethodPost, "/templates/"+created.ID, map[string]any{
		"name": "v2", "subject": "s",
	}, map[string]string{"X-Changed-By": "bob"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = env.do(t, http.MethodGet, "/templates/"+created.ID+"/versions", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []designer.Version
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "bob", history[0].ChangedBy)

	oldest := history[1]
	resp, raw = env.do(t, http.MethodGet, "/templates/"+created.ID+"/versions/"+oldest.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var single designer.Version
	require.NoError(t, json.Unmarshal(raw, &single))
	assert.Equal(t, "v1", single.Name)

	resp, raw = env.do(t, http.MethodPost,
		"/templates/"+created.ID+"/versions/"+oldest.ID+"/restore",
		map[string]any{"reason": "undo rename"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var restored designer.Template
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, "v1", restored.Name)

	resp, _ = env.do(t, http.MethodDelete, "/templates/"+created.ID+"/versions/"+oldest.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/templates/"+created.ID+"/versions/"+oldest.ID, nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", errorCode(t, raw))
}

func TestRouter_VersionOwnershipEnforced(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	a := env.createTemplate(t, map[string]any{"name": "a"})
	b := env.createTemplate(t, map[string]any{"name": "b"})

	resp, raw := env.do(t, http.MethodGet, "/templates/"+a.ID+"/versions", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []designer.Version
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 1)

	// Template B cannot read or restore template A's version.
	resp, _ = env.do(t, http.MethodGet, "/templates/"+b.ID+"/versions/"+history[0].ID, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/templates/"+b.ID+"/versions/"+history[0].ID+"/restore", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Duplicate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := env.createTemplate(t, map[string]any{
		"name": "newsletter", "templateReferenceId": 3,
	})

	resp, raw := env.do(t, http.MethodPost, "/templates/duplicate/"+created.ID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var dup designer.Template
	require.NoError(t, json.Unmarshal(raw, &dup))
	assert.Equal(t, "newsletter copy", dup.Name)
	assert.Nil(t, dup.ReferenceID)
	assert.NotEqual(t, created.ID, dup.ID)
}

func TestRouter_Download(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	created := env.createTemplate(t, map[string]any{
		"name": "dl", "bodyHtml": "<p>body</p>",
	})

	resp, raw := env.do(t, http.MethodGet, "/download/"+created.ID+"?type=json", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=template-"+created.ID+".json",
		resp.Header.Get("Content-Disposition"))
	var tpl designer.Template
	require.NoError(t, json.Unmarshal(raw, &tpl))
	assert.Equal(t, "dl", tpl.Name)

	resp, raw = env.do(t, http.MethodGet, "/download/"+created.ID+"?type=html", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "attachment; filename=template-"+created.ID+".html",
		resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "<p>body</p>", string(raw))

	resp, raw = env.do(t, http.MethodGet, "/download/"+created.ID+"?type=pdf", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", errorCode(t, raw))
}

func TestRouter_CoreEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodGet, "/core/reset-password", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out coreemail.CoreEmail
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Empty(t, out.Subject)

	resp, _ = env.do(t, http.MethodPost, "/core/reset-password", map[string]any{
		"subject": "Reset for {{ USER.username }}",
		"message": "<p>Go to {{ URL }}</p>",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/core/reset-password", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Reset for {{ USER.username }}", out.Subject)
	assert.Equal(t, "<p>Go to {{ URL }}</p>", out.BodyHTML)

	resp, raw = env.do(t, http.MethodGet, "/core/weekly-digest", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", errorCode(t, raw))
}

func TestRouter_EmailStatusAndTest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodGet, "/email/status", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]bool
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.True(t, status["configured"])

	resp, raw = env.do(t, http.MethodPost, "/email/test", map[string]any{
		"to":      "john@example.com",
		"subject": "Test {{ N }}",
		"html":    "<p>test</p>",
		"data":    map[string]any{"N": "1"},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	require.Len(t, env.sender.sent, 1)
	assert.Equal(t, "Test 1", env.sender.sent[0].Subject)

	resp, raw = env.do(t, http.MethodPost, "/email/test", map[string]any{
		"to": "nope", "html": "<p>x</p>",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", errorCode(t, raw))
}

func TestRouter_EmailTest_UnconfiguredProvider(t *testing.T) {
	t.Parallel()

	templateStore := designer.NewMemoryTemplateStore()
	r := designerhttp.Router(designerhttp.RouterOptions{
		Templates:  designer.NewService(templateStore, designer.NewMemoryVersionStore()),
		CoreEmails: coreemail.NewService(coreemail.NewMemorySettingsStore()),
		Dispatcher: dispatch.New(templateStore, email.NewDevSender(t.TempDir())),
		ServerURL:  "https://app.example.com",
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	env := &testEnv{server: server}

	resp, raw := env.do(t, http.MethodGet, "/email/status", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]bool
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.False(t, status["configured"])

	resp, raw = env.do(t, http.MethodPost, "/email/test", map[string]any{
		"to": "john@example.com", "html": "<p>x</p>",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "provider_not_configured", errorCode(t, raw))
}

func TestRouter_SampleData(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodGet, "/email/sample-data/reset-password", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))
	assert.Contains(t, data, "USER")
	assert.Contains(t, data, "TOKEN")
	assert.Contains(t, data["URL"], "https://app.example.com")

	resp, raw = env.do(t, http.MethodGet, "/email/sample-data/bogus", nil, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", errorCode(t, raw))
}

func TestRouter_EditorConfig(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodGet, "/config", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(raw, &cfg))
	assert.Contains(t, cfg, "editor")
	assert.Contains(t, cfg, "mergeTags")

	resp, _ = env.do(t, http.MethodGet, "/config/mergeTags", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = env.do(t, http.MethodGet, "/config/bogus", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", errorCode(t, raw))
}
