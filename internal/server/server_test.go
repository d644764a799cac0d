package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/backend"
	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/questions"
)

// stubGenerator returns a canned batch and remembers what it was asked.
type stubGenerator struct {
	qs        []questions.Question
	err       error
	got       config.Config
	requestID string
	purpose   string
	calls     int
}

func (g *stubGenerator) Generate(ctx context.Context, cfg config.Config) ([]questions.Question, error) {
	g.calls++
	g.got = cfg
	g.requestID = llm.RequestIDFrom(ctx)
	g.purpose = llm.PurposeFrom(ctx)
	return g.qs, g.err
}

func newTestServer(t *testing.T, gen problemgen.Generator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Config{}, gen, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+GeneratePath, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeDetail(t *testing.T, r io.Reader) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body.Detail
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Math Question Generator API", body["message"])

	missing, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestGenerate_Success(t *testing.T) {
	gen := &stubGenerator{qs: []questions.Question{
		{Text: "What is 2 + 2?", CorrectAnswer: "4", Explanation: "2 + 2 = 4"},
		{Text: "What is 3 + 3?", CorrectAnswer: "6"},
	}}
	srv := newTestServer(t, gen)

	resp := postJSON(t, srv.URL, `{"year_level":4,"difficulty":"hard","question_type":"numerical","topic":"algebra","num_questions":10}`,
		http.Header{"X-Request-Id": {"req-42"}})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))

	var payload questions.Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 2, payload.Count)
	assert.Equal(t, gen.qs, payload.Questions)

	assert.Equal(t, config.Config{
		YearLevel:    4,
		Difficulty:   config.DifficultyHard,
		QuestionType: config.TypeNumerical,
		Topic:        config.TopicAlgebra,
		NumQuestions: 10,
	}, gen.got)
	assert.Equal(t, "req-42", gen.requestID)
	assert.Equal(t, "question-batch", gen.purpose)
}

func TestGenerate_DefaultsNumQuestions(t *testing.T) {
	gen := &stubGenerator{}
	srv := newTestServer(t, gen)

	resp := postJSON(t, srv.URL, `{"year_level":1,"difficulty":"easy","question_type":"comparison","topic":"geometry"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 20, gen.got.NumQuestions)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), "a request id is generated when absent")

	var payload questions.Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 0, payload.Count)
	assert.NotNil(t, payload.Questions)
}

func TestGenerate_InvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"year_level":`},
		{"wrong type", `{"year_level":"three","difficulty":"easy","question_type":"numerical","topic":"algebra"}`},
		{"missing fields", `{}`},
		{"year out of range", `{"year_level":7,"difficulty":"easy","question_type":"numerical","topic":"algebra"}`},
		{"unknown difficulty", `{"year_level":3,"difficulty":"extreme","question_type":"numerical","topic":"algebra"}`},
		{"unknown topic", `{"year_level":3,"difficulty":"easy","question_type":"numerical","topic":"calculus"}`},
		{"unsupported count", `{"year_level":3,"difficulty":"easy","question_type":"numerical","topic":"algebra","num_questions":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{}
			srv := newTestServer(t, gen)

			resp := postJSON(t, srv.URL, tt.body, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.NotEmpty(t, decodeDetail(t, resp.Body))
			assert.Zero(t, gen.calls, "generator must not run for invalid requests")
		})
	}
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream exploded")}
	srv := newTestServer(t, gen)

	resp := postJSON(t, srv.URL, `{"year_level":3,"difficulty":"medium","question_type":"multiple_choice","topic":"arithmetic","num_questions":20}`, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error generating questions: upstream exploded", decodeDetail(t, resp.Body))
}

func TestGenerate_ProviderFailureNamesVendorCall(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.Error{Kind: llm.KindRateLimit, StatusCode: 429}})
	gen := problemgen.New(llm.WithLogging(mock, "deepseek", nil, nil), problemgen.DefaultConfig(), nil)
	srv := newTestServer(t, gen)

	resp := postJSON(t, srv.URL,
		`{"year_level":2,"difficulty":"easy","question_type":"numerical","topic":"arithmetic","num_questions":5}`,
		http.Header{"X-Request-Id": {"req-42"}})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t,
		"Error generating questions: LLM generation failed: deepseek: rate limited (HTTP 429) [request req-42]",
		decodeDetail(t, resp.Body))
}

func TestGenerate_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + GeneratePath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+GeneratePath, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-request-id")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "content-type,x-request-id", resp.Header.Get("Access-Control-Allow-Headers"))

	simple, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	require.NoError(t, err)
	simple.Header.Set("Origin", "https://example.com")
	resp, err = http.DefaultClient.Do(simple)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

// The client and server agree on the wire contract end to end.
func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t, problemgen.NewSampleGenerator())
	client := backend.New(srv.URL)

	cfg := config.Default()
	cfg.NumQuestions = 5
	qs, err := client.Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.NotEmpty(t, q.Text)
		assert.Len(t, q.Options, 4)
	}

	cfg.YearLevel = 0
	_, err = client.Generate(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, backend.KindStatus, backend.KindOf(err))
	assert.Equal(t, http.StatusUnprocessableEntity, backend.StatusCodeOf(err))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Config{ShutdownTimeout: time.Second}, problemgen.NewSampleGenerator(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	http.DefaultClient.CloseIdleConnections()
}
