package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient(url, 2*time.Second, zerolog.Nop())
	c.retryDelay = time.Millisecond
	return c
}

func TestClient_Found(t *testing.T) {
	body := `[{
		"word": "quiz",
		"meanings": [
			{"partOfSpeech": "noun", "definitions": [{"definition": "A competition in the answering of questions."}]},
			{"partOfSpeech": "verb", "definitions": [{"definition": "To question."}]}
		]
	}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quiz", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	def, err := newTestClient(srv.URL).LookupDefinition(context.Background(), "QUIZ")
	require.NoError(t, err)
	assert.Equal(t, Definition{Found: true, PartOfSpeech: "noun", Text: "A competition in the answering of questions."}, def)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"No Definitions Found"}`))
	}))
	defer srv.Close()

	def, err := newTestClient(srv.URL).LookupDefinition(context.Background(), "zzyzx")
	require.NoError(t, err)
	assert.False(t, def.Found)
}

func TestClient_RetriesOnceOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"word":"cat","meanings":[]}]`))
	}))
	defer srv.Close()

	def, err := newTestClient(srv.URL).LookupDefinition(context.Background(), "cat")
	require.NoError(t, err)
	assert.True(t, def.Found)
	assert.Empty(t, def.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_PersistentFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).LookupDefinition(context.Background(), "cat")
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).LookupDefinition(context.Background(), "cat")
	assert.Error(t, err)
}

func TestValidatorWithClient_FailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewValidator(newTestClient(srv.URL), zerolog.Nop())
	res := v.Validate(context.Background(), "qi")
	assert.True(t, res.Valid)
	assert.Equal(t, SourceLocal, res.Source)
}
