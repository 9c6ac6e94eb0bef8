package gemini_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/lintview"
	"github.com/fwojciec/lintview/gemini"
	"github.com/fwojciec/lintview/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(text string) *gemini.MockGenerativeClient {
	return &gemini.MockGenerativeClient{
		GenerateContentFn: func(context.Context, string, []*gemini.Content, *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
			return &gemini.GenerateContentResponse{Text: text}, nil
		},
	}
}

var request = lintview.Request{
	MainFile: "/w/main.py",
	Source:   "import util\nprint(util.X)\n",
	Imported: map[string]string{"/w/util.py": "X=1\n"},
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("decodes findings", func(t *testing.T) {
		t.Parallel()
		client := respond(`[
			{"path": "/w/util.py", "line": 1, "column": 0, "code": "AI001", "text": "Use spaces around =", "relevance": 2},
			{"path": "elsewhere.py", "line": 2, "column": 0, "code": "AI002", "text": "Name the constant"}
		]`)
		a := gemini.NewAnalyzer(client, "")

		res, err := a.Analyze(context.Background(), request)

		require.NoError(t, err)
		require.Len(t, res.Findings, 2)
		assert.Equal(t, "/w/util.py", res.Findings[0].Path)
		assert.Equal(t, 2, res.Findings[0].Relevance)
		assert.Equal(t, "/w/main.py", res.Findings[1].Path, "unknown paths fall back to the main file")
		for _, f := range res.Findings {
			assert.Equal(t, "gemini", f.EnabledBy)
			assert.Equal(t, "gemini", f.Source)
		}
		assert.Nil(t, res.Config)
	})

	t.Run("sends prompt and schema to model", func(t *testing.T) {
		t.Parallel()
		var gotModel, gotPrompt string
		var gotConfig *gemini.GenerateContentConfig
		client := &gemini.MockGenerativeClient{
			GenerateContentFn: func(_ context.Context, model string, contents []*gemini.Content, config *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
				gotModel = model
				gotPrompt = contents[0].Parts[0].Text
				gotConfig = config
				return &gemini.GenerateContentResponse{Text: "[]"}, nil
			},
		}

		_, err := gemini.NewAnalyzer(client, "custom-model").Analyze(context.Background(), request)

		require.NoError(t, err)
		assert.Equal(t, "custom-model", gotModel)
		assert.Contains(t, gotPrompt, "## /w/main.py")
		assert.Contains(t, gotPrompt, "   2 | print(util.X)")
		assert.Contains(t, gotPrompt, "## /w/util.py")
		require.NotNil(t, gotConfig.ResponseSchema)
		assert.Equal(t, "array", gotConfig.ResponseSchema.Type)
		assert.Equal(t, "application/json", gotConfig.ResponseMIMEType)
	})

	t.Run("malformed response", func(t *testing.T) {
		t.Parallel()
		_, err := gemini.NewAnalyzer(respond("I found no issues!"), "").Analyze(context.Background(), request)
		require.ErrorIs(t, err, lintview.ErrMalformedOutput)
	})

	t.Run("propagates api error", func(t *testing.T) {
		t.Parallel()
		client := &gemini.MockGenerativeClient{
			GenerateContentFn: func(context.Context, string, []*gemini.Content, *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
				return nil, &gemini.APIError{StatusCode: 429, Message: "quota"}
			},
		}
		_, err := gemini.NewAnalyzer(client, "").Analyze(context.Background(), request)

		var apiErr *gemini.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 429, apiErr.StatusCode)
	})

	t.Run("applies timeout", func(t *testing.T) {
		t.Parallel()
		client := &gemini.MockGenerativeClient{
			GenerateContentFn: func(ctx context.Context, _ string, _ []*gemini.Content, _ *gemini.GenerateContentConfig) (*gemini.GenerateContentResponse, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		a := gemini.NewAnalyzer(client, "", gemini.WithTimeout(10*time.Millisecond))

		_, err := a.Analyze(context.Background(), request)

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestAnalyzer_Enabled(t *testing.T) {
	t.Parallel()

	on := &mock.Settings{BoolFn: func(key string) bool { return key == gemini.EnabledKey }}
	assert.False(t, gemini.NewAnalyzer(respond("[]"), "").Enabled(), "off without settings")
	assert.True(t, gemini.NewAnalyzer(respond("[]"), "", gemini.WithSettings(on)).Enabled())
	assert.False(t, gemini.NewAnalyzer(nil, "", gemini.WithSettings(on)).Enabled(), "off without client")
	assert.Equal(t, "gemini", gemini.NewAnalyzer(nil, "").Name())
}
