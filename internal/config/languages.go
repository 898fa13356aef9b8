package config

import (
	"github.com/samber/lo"
)

// Language pairs a human-readable name with the code the transcription
// backends expect.
type Language struct {
	Display string `json:"display"`
	Code    string `json:"code"`
}

// languages is the fixed selection table, in the order the UI presents it.
// An empty code means the backend should detect the language itself.
var languages = []Language{
	{"Auto Detect", ""},
	{"English", "en"},
	{"Spanish", "es"},
	{"French", "fr"},
	{"German", "de"},
	{"Italian", "it"},
	{"Portuguese", "pt"},
	{"Russian", "ru"},
	{"Chinese", "zh"},
	{"Japanese", "ja"},
	{"Korean", "ko"},
	{"Hindi", "hi"},
	{"Arabic", "ar"},
}

// Languages returns the selection table in presentation order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LanguageCode maps a display name to its backend code. Unknown names fall
// back to auto-detection rather than failing the upload.
func LanguageCode(display string) string {
	match, found := lo.Find(languages, func(l Language) bool {
		return l.Display == display
	})
	if !found {
		return ""
	}
	return match.Code
}

// IsKnownLanguage reports whether display names a table entry.
func IsKnownLanguage(display string) bool {
	return lo.ContainsBy(languages, func(l Language) bool {
		return l.Display == display
	})
}
