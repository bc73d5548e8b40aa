package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopics(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "numbered list",
			response: "1. Getting Started\n2. Advanced Usage\n3. Deployment",
			want:     []string{"Getting Started", "Advanced Usage", "Deployment"},
		},
		{
			name:     "bullets",
			response: "- First Steps\n* Second Thing\n• Third Item",
			want:     []string{"First Steps", "Second Thing", "Third Item"},
		},
		{
			name:     "label colon value",
			response: "Topic 1: Memory Management\nTopic 2: Garbage Collection",
			want:     []string{"Memory Management", "Garbage Collection"},
		},
		{
			name:     "markdown headings",
			response: "## Introduction to Testing\n**Writing Assertions**",
			want:     []string{"Introduction to Testing", "Writing Assertions"},
		},
		{
			name:     "mixed with noise",
			response: "Here is your outline:\n\n1. Core Ideas\nok\n- Worked Examples\n",
			want:     []string{"Core Ideas", "Worked Examples"},
		},
		{
			name:     "short lines skipped",
			response: "1. A\n- ok\n2. Long Enough Title",
			want:     []string{"Long Enough Title"},
		},
		{
			name:     "garbage yields nothing",
			response: "The document was interesting and covered many subjects in depth",
			want:     nil,
		},
		{
			name:     "empty response",
			response: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTopics(tt.response, 5, 4)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTopics_StopsAtMax(t *testing.T) {
	var lines []string
	for _, title := range []string{"One Topic", "Two Topic", "Three Topic", "Four Topic", "Five Topic", "Six Topic", "Seven Topic"} {
		lines = append(lines, "- "+title)
	}
	got := ParseTopics(strings.Join(lines, "\n"), 5, 4)
	assert.Len(t, got, 5)
	assert.Equal(t, "Five Topic", got[4])
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "lecture-notes", TitleFromFilename("lecture-notes.pdf"))
	assert.Equal(t, "readme", TitleFromFilename("readme.txt"))
	assert.Equal(t, "thesis", TitleFromFilename("thesis.docx"))
	assert.Equal(t, "notes", TitleFromFilename("notes.doc"))
	assert.Equal(t, "no-extension", TitleFromFilename("no-extension"))
}
