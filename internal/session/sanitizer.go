package session

import (
	"regexp"
	"strings"
)

var (
	ansiCSIPattern   = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	tripleBlankLines = regexp.MustCompile(`\n{3,}`)

	pagerMarkerPattern = regexp.MustCompile(`(?i)----\s*more\s*----|press\s+enter\s+to\s+continue`)

	// vendor decoration markers stripped unconditionally by the base
	// sanitizer, per §4.4 step 4.
	decorationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(s[12]\)`),                // Arista config stages
		regexp.MustCompile(`\[edit[^\]]*\]`),            // Juniper/Versa edit context
		regexp.MustCompile(`\{(master|backup):\d+\}`),   // Juniper/Versa mastership context
		regexp.MustCompile(`admin@\S+`),                 // Versa/Juniper context prompt
		regexp.MustCompile(`<[A-Za-z0-9_.\-]+>`),        // Huawei <HOST> prompt embedded mid-output
		regexp.MustCompile(`\[[A-Za-z0-9_.\-]+\]`),      // Huawei [HOST] prompt embedded mid-output
	}
)

// sanitize implements the six-step Output Sanitizer contract: normalize
// line endings, strip the command echo, strip the trailing prompt line,
// strip vendor decorations, strip ANSI CSI sequences, trim whitespace.
// extra is an additional vendor-specific pass (e.g. Extreme EXOS's
// incrementing prompt suffix) applied between steps 4 and 5.
func sanitize(raw, command, basePrompt string, extra func(string) string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = tripleBlankLines.ReplaceAllString(text, "\n\n")

	text = removeFirstCommandEcho(text, command)
	text = removeTrailingPromptLine(text, basePrompt)

	for _, p := range decorationPatterns {
		text = p.ReplaceAllString(text, "")
	}
	text = pagerMarkerPattern.ReplaceAllString(text, "")

	if extra != nil {
		text = extra(text)
	}

	text = ansiCSIPattern.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// removeFirstCommandEcho removes the first line that is exactly the
// submitted command text, which is the shell echoing back what was typed.
func removeFirstCommandEcho(text, command string) string {
	if command == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == strings.TrimSpace(command) {
			return strings.Join(append(lines[:i], lines[i+1:]...), "\n")
		}
	}
	return text
}

// removeTrailingPromptLine removes the final line if it looks like the
// device's command prompt: a line starting with basePrompt and ending in a
// prompt terminator, or any line no longer than len(basePrompt)+2 characters
// that ends in a terminator (with basePrompt unknown, a line of at most two
// characters such as "#").
func removeTrailingPromptLine(text, basePrompt string) string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 {
		last := strings.TrimRight(lines[len(lines)-1], " \t")
		trimmed := strings.TrimSpace(last)
		if trimmed == "" {
			lines = lines[:len(lines)-1]
			continue
		}
		isPrompt := false
		if basePrompt != "" && strings.HasPrefix(last, basePrompt) && promptTailPattern.MatchString(last) {
			isPrompt = true
		} else if len(trimmed) <= len(basePrompt)+2 && promptTailPattern.MatchString(trimmed) {
			isPrompt = true
		}
		if isPrompt {
			lines = lines[:len(lines)-1]
		}
		break
	}
	return strings.Join(lines, "\n")
}
