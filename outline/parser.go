package outline

import "strings"

// ParseTopics extracts topic titles from a model's free-form response.
// The upstream format is not contractual, so this is a line-oriented
// heuristic: a line is a topic candidate when it carries a numbered-list
// prefix, a bullet, a "label: value" split, or a heading/emphasis marker.
// Titles shorter than minTitleLength runes are discarded; parsing stops
// after maxTopics candidates.
func ParseTopics(response string, maxTopics, minTitleLength int) []string {
	var titles []string
	for _, line := range strings.Split(response, "\n") {
		if len(titles) >= maxTopics {
			break
		}
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}

		var title string
		switch {
		case hasNumberPrefix(line):
			title = strings.TrimSpace(strings.SplitN(line, ".", 2)[1])
		case strings.HasPrefix(line, "##"), strings.HasPrefix(line, "**"):
			title = strings.TrimSpace(strings.NewReplacer("#", "", "*", "").Replace(line))
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"), strings.HasPrefix(line, "•"):
			title = strings.TrimSpace(strings.TrimLeft(line, "-*•"))
		case strings.Contains(line, ":"):
			title = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		}

		if len([]rune(title)) >= minTitleLength {
			titles = append(titles, title)
		}
	}
	return titles
}

func hasNumberPrefix(line string) bool {
	for _, p := range []string{"1.", "2.", "3.", "4.", "5.", "6.", "7."} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
