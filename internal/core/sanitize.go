package core

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes all markup from s. The bodies of script and style elements
// are dropped along with their tags; text, entity references included, is kept
// exactly as written.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if rawTextElement(z) {
				skip++
			}
		case html.EndTagToken:
			if rawTextElement(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Raw())
			}
		}
	}
}

func rawTextElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// sanitizeList strips markup from every entry and drops entries left empty.
func sanitizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = StripTags(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
