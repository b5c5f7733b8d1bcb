package suggest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aryannaik/lw-tagger/internal/ollama"
	"github.com/aryannaik/lw-tagger/internal/vocab"
)

const sampleText = "An introduction to writing web services in Python with a dash of AI."

type fakeGenerator struct {
	response string
	err      error
	panicMsg string
	calls    int
	last     ollama.GenerateRequest
	deadline time.Time
}

func (f *fakeGenerator) Generate(ctx context.Context, req ollama.GenerateRequest) (string, error) {
	f.calls++
	f.last = req
	f.deadline, _ = ctx.Deadline()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.response, f.err
}

func newTestSuggester(gen Generator) (*Suggester, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return New(gen, DefaultOptions(), zap.New(core)), logs
}

func TestNormalize(t *testing.T) {
	v := vocab.New([]string{"python", "web", "ai", "go", "rust", "databases", "devops"})

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "rejects unknown and keeps order", raw: "python, ai, blockchain", want: []string{"python", "ai"}},
		{name: "case and whitespace", raw: "  Python ,  WEB\n", want: []string{"python", "web"}},
		{name: "caps at five in response order", raw: "devops, go, rust, ai, web, python, databases", want: []string{"devops", "go", "rust", "ai", "web"}},
		{name: "collapses duplicates", raw: "ai, AI, ai, web", want: []string{"ai", "web"}},
		{name: "nothing valid", raw: "blockchain, crypto", want: nil},
		{name: "empty", raw: "   ", want: nil},
		{name: "trailing commas", raw: "go,,", want: []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, v, 5)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 5)
			for _, tag := range got {
				assert.Contains(t, v.Tags(), tag)
			}
		})
	}
}

func TestNormalize_PreservesVocabularyCasing(t *testing.T) {
	v := vocab.New([]string{"Machine Learning", "Go"})

	got := Normalize("machine learning, go", v, 5)

	assert.Equal(t, []string{"Machine Learning", "Go"}, got)
}

func TestSuggest_ShortTextSkipsModel(t *testing.T) {
	for _, text := range []string{"", "   ", "too short", "  abc def  \n"} {
		gen := &fakeGenerator{response: "ai"}
		s, logs := newTestSuggester(gen)

		got := s.Suggest(context.Background(), text, vocab.New([]string{"ai"}))

		assert.Empty(t, got, "text %q", text)
		assert.Equal(t, 0, gen.calls, "text %q", text)
		assert.Equal(t, 1, logs.FilterMessage("Text too short for tag suggestion").Len())
	}
}

func TestSuggest_Success(t *testing.T) {
	gen := &fakeGenerator{response: "python, ai, blockchain"}
	s, _ := newTestSuggester(gen)

	got := s.Suggest(context.Background(), sampleText, vocab.New([]string{"python", "web", "ai"}))

	assert.Equal(t, []string{"python", "ai"}, got)
	require.Equal(t, 1, gen.calls)
	assert.Equal(t, 0.1, gen.last.Temperature)
	assert.Equal(t, 50, gen.last.NumPredict)
	assert.Contains(t, gen.last.Prompt, "python, web, ai")
	assert.Contains(t, gen.last.Prompt, sampleText)
	assert.False(t, gen.deadline.IsZero(), "generate should run under a deadline")
	assert.WithinDuration(t, time.Now().Add(10*time.Second), gen.deadline, 2*time.Second)
}

func TestSuggest_GeneratorErrorIsSwallowed(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("ollama generate: status 500: boom")}
	s, logs := newTestSuggester(gen)

	got := s.Suggest(context.Background(), sampleText, vocab.New([]string{"ai"}))

	assert.Empty(t, got)
	entries := logs.FilterMessage("Getting tags from model failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestSuggest_PanicIsSwallowed(t *testing.T) {
	gen := &fakeGenerator{panicMsg: "unexpected"}
	s, logs := newTestSuggester(gen)

	var got []string
	require.NotPanics(t, func() {
		got = s.Suggest(context.Background(), sampleText, vocab.New([]string{"ai"}))
	})
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("Unexpected error getting tags").Len())
}

func TestSuggest_EmptyVocabularySuggestsNothing(t *testing.T) {
	gen := &fakeGenerator{response: "ai, web"}
	s, _ := newTestSuggester(gen)

	assert.Empty(t, s.Suggest(context.Background(), sampleText, vocab.New(nil)))
}

func TestSuggest_AgainstOllamaServer(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    []string
	}{
		{
			name: "ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"response":" Python, Web "}`))
			},
			want: []string{"python", "web"},
		},
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{"))
			},
		},
		{
			name: "missing response key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"done":true}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := New(ollama.NewClient(srv.URL, "phi3:mini-4k"), DefaultOptions(), zap.NewNop())
			got := s.Suggest(context.Background(), sampleText, vocab.New([]string{"python", "web", "ai"}))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggest_TimeoutYieldsEmpty(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	opts := DefaultOptions()
	opts.Timeout = 50 * time.Millisecond
	s := New(ollama.NewClient(srv.URL, "m"), opts, zap.NewNop())

	assert.Empty(t, s.Suggest(context.Background(), sampleText, vocab.New([]string{"ai"})))
}

func TestBuildPrompt(t *testing.T) {
	v := vocab.New([]string{"python", "web"})
	long := strings.Repeat("é", 600)

	p := BuildPrompt(long, v, 500, 5)

	assert.Contains(t, p, "approved list: python, web")
	assert.Contains(t, p, "Only suggest tags that are EXACTLY in the approved list")
	assert.Contains(t, p, "Maximum 5 tags")
	assert.Contains(t, p, "(len: 600)")
	assert.Contains(t, p, strings.Repeat("é", 500)+"...")
	assert.NotContains(t, p, strings.Repeat("é", 501))
	assert.True(t, strings.HasSuffix(p, "Suggested Tags:"))
}
