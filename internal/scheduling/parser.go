package scheduling

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoContentBlocks is returned when a calendar response has no
// recognizable CONTENT block.
var ErrNoContentBlocks = errors.New("no CONTENT blocks found in generated text")

type ContentBlock struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

var (
	listItemSplit   = regexp.MustCompile(`(?:^|\n)(?:\d+\.\s*|-\s*)`)
	contentMarker   = regexp.MustCompile(`(?i)CONTENT:`)
	contentPattern  = regexp.MustCompile(`(?is)CONTENT:\s*(.*?)(?:\s*HASHTAGS:|$)`)
	hashtagsPattern = regexp.MustCompile(`(?is)HASHTAGS:\s*(.*?)\s*$`)
	numberedItem    = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	paragraphBreak  = regexp.MustCompile(`\n\s*\n+`)
	listMarker      = regexp.MustCompile(`^(?:\d+\.|-|\*)`)
)

// ParseContentBlocks extracts "CONTENT: ... HASHTAGS: a, b" blocks in order.
// Numbered or bulleted list markers are tolerated, as is a missing hashtag
// section. Text outside any CONTENT block is ignored.
func ParseContentBlocks(text string) ([]ContentBlock, error) {
	var blocks []ContentBlock
	for _, item := range listItemSplit.Split(text, -1) {
		for _, segment := range splitOnContentMarker(item) {
			block, ok := parseContentBlock(segment)
			if ok {
				blocks = append(blocks, block)
			}
		}
	}
	if len(blocks) == 0 {
		return nil, ErrNoContentBlocks
	}
	return blocks, nil
}

// splitOnContentMarker separates items holding several CONTENT markers,
// which happens when the model skips list numbering.
func splitOnContentMarker(item string) []string {
	locs := contentMarker.FindAllStringIndex(item, -1)
	if len(locs) == 0 {
		return nil
	}
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(item)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, item[loc[0]:end])
	}
	return segments
}

func parseContentBlock(segment string) (ContentBlock, bool) {
	m := contentPattern.FindStringSubmatch(segment)
	if m == nil {
		return ContentBlock{}, false
	}
	content := cleanContent(m[1])
	if content == "" {
		return ContentBlock{}, false
	}

	hashtags := []string{}
	if hm := hashtagsPattern.FindStringSubmatch(segment); hm != nil {
		hashtags = ParseHashtagList(hm[1])
	}
	return ContentBlock{Content: content, Hashtags: hashtags}, true
}

func cleanContent(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// ParseHashtagList splits a comma separated list, dropping brackets and
// leading '#'.
func ParseHashtagList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		tag = strings.Trim(tag, `"*`)
		tag = strings.TrimLeft(tag, "#")
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ParseSuggestions splits a list of post ideas on "N. " markers, falling
// back to blank-line separated paragraphs.
func ParseSuggestions(text string) []string {
	parts := numberedItem.Split(text, -1)
	if len(nonEmpty(parts)) <= 1 {
		parts = paragraphBreak.Split(text, -1)
	}
	return nonEmpty(parts)
}

// ParseImprovements returns at most limit plain suggestion lines. Lines
// that open with a list marker are dropped. It never pads.
func ParseImprovements(text string, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || listMarker.MatchString(line) {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

// ParseHashtagResponse reads a comma separated hashtag answer, keeping
// single-word tags only, at most limit of them.
func ParseHashtagResponse(text string, limit int) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimPrefix(strings.TrimSpace(part), "#")
		if tag == "" || strings.ContainsAny(tag, " \t\n") {
			continue
		}
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}

func nonEmpty(parts []string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
