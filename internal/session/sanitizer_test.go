package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsEchoPromptAndDecorations(t *testing.T) {
	raw := "show version\r\ndevice uptime 12 days\r\nArista(s1)#\r\n"
	got := sanitize(raw, "show version", "Arista", nil)
	assert.Equal(t, "device uptime 12 days", got)
}

func TestSanitize_StripsANSIAndPagerMarkers(t *testing.T) {
	raw := "\x1b[1mline one\x1b[0m\n----More----\nline two\nswitch#"
	got := sanitize(raw, "", "switch", nil)
	assert.NotContains(t, got, "\x1b")
	assert.NotContains(t, got, "More")
	assert.Contains(t, got, "line one")
	assert.Contains(t, got, "line two")
}

func TestSanitize_CollapsesTripleBlankLines(t *testing.T) {
	raw := "a\n\n\n\n\nb\nrouter#"
	got := sanitize(raw, "", "router", nil)
	assert.Equal(t, "a\n\nb", got)
}

func TestSanitize_StripsJuniperDecorations(t *testing.T) {
	raw := "show configuration\n[edit interfaces]\nset ge-0/0/0 unit 0\n{master:0}\nsrx1>"
	got := sanitize(raw, "show configuration", "srx1", nil)
	assert.Equal(t, "set ge-0/0/0 unit 0", got)
	assert.NotContains(t, got, "[edit")
	assert.NotContains(t, got, "{master")
}

func TestSanitize_ExtraHookRunsBetweenDecorationAndANSISteps(t *testing.T) {
	raw := "Summit.1 # show running\nconfig(s1) \x1b[1mline one\x1b[0m\nSummit.2 #"
	var seen string
	stripSuffix := func(s string) string {
		seen = s
		return s
	}
	got := sanitize(raw, "show running", "Summit", stripSuffix)
	assert.Contains(t, got, "config line one")
	assert.NotContains(t, seen, "(s1)", "decorations are stripped before the extra pass")
	assert.Contains(t, seen, "\x1b[1m", "ANSI sequences are stripped after the extra pass")
}

func TestRemoveFirstCommandEcho_OnlyFirstOccurrence(t *testing.T) {
	text := "show clock\nshow clock\n10:00:00\nrouter#"
	got := removeFirstCommandEcho(text, "show clock")
	assert.Equal(t, "show clock\n10:00:00\nrouter#", got)
}

func TestRemoveTrailingPromptLine_IgnoresBlankTrailingLines(t *testing.T) {
	text := "output line\n\n\nhost#\n\n"
	got := removeTrailingPromptLine(text, "host")
	assert.NotContains(t, got, "host#")
	assert.Contains(t, got, "output line")
}
