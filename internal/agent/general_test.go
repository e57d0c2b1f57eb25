package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneralAgentPatternResponses(t *testing.T) {
	a := NewGeneralAgent()
	ctx := ExecutionContext{
		ProjectInfo:     map[string]any{"name": "widget-factory"},
		UserPreferences: map[string]string{"author": "Ada", "license": "Apache-2.0"},
	}

	cases := map[string]string{
		"Continue? (y/n)":       "y",
		"Overwrite file? (y/n)": "n",
		"License:":              "MIT",
		"Author:":               "Developer",
		"Package name:":         "widget-factory",
	}
	for prompt, want := range cases {
		assert.Equal(t, want, a.HandlePrompt(prompt, "any", ctx), "prompt=%q", prompt)
	}
}

func TestGeneralAgentSafeDefault(t *testing.T) {
	a := NewGeneralAgent()
	assert.Equal(t, "n", a.HandlePrompt("Delete this file?", "any", ExecutionContext{}))
	assert.Equal(t, "y", a.HandlePrompt("Continue installing?", "any", ExecutionContext{}))
	assert.Equal(t, "1", a.HandlePrompt("Pick an option [1-9]", "any", ExecutionContext{}))
	assert.Equal(t, "", a.HandlePrompt("something unrecognized", "any", ExecutionContext{}))
}
