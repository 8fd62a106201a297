package careers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/questly/internal/careers"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	input := "I love drawing, robots and helping people"

	first, err := careers.BuildPrompt(input)
	require.NoError(t, err)
	second, err := careers.BuildPrompt(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildPrompt_Contents(t *testing.T) {
	input := `I like "quotes" & <tags> in my answers`

	prompt, err := careers.BuildPrompt(input)
	require.NoError(t, err)

	assert.Contains(t, prompt, input, "ввод пользователя вставляется дословно")
	for _, field := range careers.RequiredFields {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "2-3 personalized career paths")
	assert.Contains(t, prompt, "List 3-6 essential skills")
	assert.Contains(t, prompt, "JSON array")
}

func TestBuildPrompt_DifferentInputs(t *testing.T) {
	a, err := careers.BuildPrompt("music production")
	require.NoError(t, err)
	b, err := careers.BuildPrompt("marine biology")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.Contains(b, "marine biology"))
}
