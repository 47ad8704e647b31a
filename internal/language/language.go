// Package language resolves the language a request should be served in.
package language

import "strings"

// Default is used when no supported language can be resolved.
const Default = "pt"

// CookieName is the preference cookie checked during resolution.
const CookieName = "prefLanguage"

// supported is the fixed set of language codes the service can answer in.
var supported = map[string]bool{
	"pt": true,
	"en": true,
	"es": true,
}

// IsSupported reports whether code is one of the supported language codes.
func IsSupported(code string) bool {
	return supported[code]
}

// Resolve picks the language for a request. Precedence, first match wins:
// an explicit query parameter, the preference cookie, the first two
// characters of the Accept-Language header. Unsupported values at any
// level fall through to the next; the final fallback is Default.
func Resolve(query, cookie, acceptLanguage string) string {
	if supported[query] {
		return query
	}
	if supported[cookie] {
		return cookie
	}
	if len(acceptLanguage) >= 2 {
		if prefix := strings.ToLower(acceptLanguage[:2]); supported[prefix] {
			return prefix
		}
	}
	return Default
}
