package ai

import (
	"testing"

	genai "github.com/google/generative-ai-go/genai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("[{"), genai.Text("}]")}}},
		},
	}
	out, err := collectText(resp)
	require.NoError(t, err)
	assert.Equal(t, "[{}]", out, "text parts are concatenated in order")
}

func TestCollectTextNoCandidates(t *testing.T) {
	_, err := collectText(&genai.GenerateContentResponse{})
	assert.Error(t, err, "an empty candidate list must not panic")

	_, err = collectText(nil)
	assert.Error(t, err)
}

func TestCollectTextBlockedCandidate(t *testing.T) {
	// A safety-blocked prompt yields a candidate without content.
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
	_, err := collectText(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestCollectTextNonTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
		},
	}
	_, err := collectText(resp)
	assert.Error(t, err)
}
