package cmd

import (
	"testing"

	"github.com/zane-programs/helldivers-stratagem-pad/apitypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSequenceSteps(t *testing.T) {
	tests := []struct {
		name      string
		steps     []string
		betweenMs int
		expected  []apitypes.SequenceAction
		wantErr   string
	}{
		{
			name:  "stratagem macro of bare keys",
			steps: []string{"up", "down", "right", "left", "up"},
			expected: []apitypes.SequenceAction{
				{Type: "keys", Keys: "up"},
				{Type: "keys", Keys: "down"},
				{Type: "keys", Keys: "right"},
				{Type: "keys", Keys: "left"},
				{Type: "keys", Keys: "up"},
			},
		},
		{
			name:  "combos pass through as keys",
			steps: []string{"ctrl+up", "ctrl+down"},
			expected: []apitypes.SequenceAction{
				{Type: "keys", Keys: "ctrl+up"},
				{Type: "keys", Keys: "ctrl+down"},
			},
		},
		{
			name:  "wait and text and release",
			steps: []string{"text:hello", "wait:250", "release"},
			expected: []apitypes.SequenceAction{
				{Type: "text", Text: "hello"},
				{Type: "delay", DelayMs: 250},
				{Type: "releaseAll"},
			},
		},
		{
			name:      "between delay inserted after every step but the last",
			steps:     []string{"up", "down"},
			betweenMs: 40,
			expected: []apitypes.SequenceAction{
				{Type: "keys", Keys: "up"},
				{Type: "delay", DelayMs: 40},
				{Type: "keys", Keys: "down"},
			},
		},
		{
			name:    "wait without a count",
			steps:   []string{"wait:"},
			wantErr: "step 0: wait wants a positive millisecond count",
		},
		{
			name:    "negative wait",
			steps:   []string{"up", "wait:-5"},
			wantErr: "step 1: wait wants a positive millisecond count",
		},
		{
			name:    "empty text step",
			steps:   []string{"text:"},
			wantErr: "step 0: text step is empty",
		},
		{
			name:    "empty step",
			steps:   []string{"up", ""},
			wantErr: "step 1: empty step",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actions, err := parseSequenceSteps(tc.steps, tc.betweenMs)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actions)
		})
	}
}
