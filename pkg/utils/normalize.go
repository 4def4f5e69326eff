package utils

import (
	"net/url"
	"strings"
	"unicode"
)

// Minor words stay lowercase inside a title. The first word is always
// capitalized.
var minorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true,
	"but": true, "by": true, "for": true, "from": true, "in": true,
	"nor": true, "of": true, "on": true, "or": true, "so": true,
	"the": true, "to": true, "up": true, "yet": true,
}

// GenreVocabulary is the controlled list of genre tags allowed to persist.
var GenreVocabulary = []string{
	"Fiction", "Nonfiction", "Biography", "History", "Science",
	"Technology", "Business", "Economics", "Philosophy", "Psychology",
	"Self Help", "Politics", "Memoir", "Fantasy", "Science Fiction",
	"Mystery", "Poetry", "Health", "Misc",
}

var genreLookup = func() map[string]string {
	m := make(map[string]string, len(GenreVocabulary))
	for _, g := range GenreVocabulary {
		m[strings.ToLower(g)] = g
	}
	return m
}()

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// NormalizeTitle collapses whitespace and applies minor-word title casing.
func NormalizeTitle(title string) string {
	words := strings.Fields(title)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && minorWords[lower] {
			words[i] = lower
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// BasicTitle strips the subtitle: everything from the first colon on.
func BasicTitle(title string) string {
	if idx := strings.Index(title, ":"); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}

// isDottedInitials reports whether tok is a run of single-letter initials
// separated by periods, like "J.R.R." or "j.k".
func isDottedInitials(tok string) bool {
	if !strings.Contains(tok, ".") {
		return false
	}
	for _, piece := range strings.Split(tok, ".") {
		if len(piece) > 1 {
			return false
		}
		if len(piece) == 1 && !unicode.IsLetter(rune(piece[0])) {
			return false
		}
	}
	return true
}

// capitalizeName uppercases the first letter of a name token. Interior case
// is kept ("McCarthy") unless the token is shouting ("HERBERT" -> "Herbert").
func capitalizeName(tok string) string {
	if tok == strings.ToUpper(tok) {
		return capitalize(tok)
	}
	runes := []rune(tok)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CleanAuthorName strips a leading "by ", collapses whitespace, title-cases
// each name token and puts a period after bare initials ("J K" -> "J. K.").
// Applying it twice yields the same result.
func CleanAuthorName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 3 && strings.EqualFold(name[:3], "by ") {
		name = name[3:]
	}

	tokens := strings.Fields(name)
	for i, tok := range tokens {
		bare := strings.TrimSuffix(tok, ".")
		if len(bare) == 1 && unicode.IsLetter(rune(bare[0])) {
			tokens[i] = strings.ToUpper(bare) + "."
			continue
		}
		if isDottedInitials(tok) {
			tokens[i] = strings.ToUpper(strings.TrimSuffix(tok, ".")) + "."
			continue
		}
		tokens[i] = capitalizeName(tok)
	}
	return strings.Join(tokens, " ")
}

// CanonicalSocialURL rewrites Twitter/X handles and URLs to the canonical
// https://x.com/<handle> form. Anything that is not a Twitter/X reference is
// returned unchanged.
func CanonicalSocialURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "@") {
		handle := strings.TrimPrefix(raw, "@")
		if handle == "" {
			return raw
		}
		return "https://x.com/" + handle
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	if host != "twitter.com" && host != "x.com" {
		return raw
	}

	handle := strings.Trim(u.Path, "/")
	if idx := strings.Index(handle, "/"); idx >= 0 {
		handle = handle[:idx]
	}
	if handle == "" {
		return raw
	}
	return "https://x.com/" + handle
}

// FilterGenres drops values outside the controlled vocabulary and falls back
// to ["Misc"] when nothing survives. Matching is case-insensitive and the
// canonical spelling is what gets stored.
func FilterGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]bool, len(genres))
	for _, g := range genres {
		canonical, ok := genreLookup[strings.ToLower(strings.TrimSpace(g))]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	if len(out) == 0 {
		return []string{"Misc"}
	}
	return out
}
