package vault

import (
	"regexp"
	"strings"
)

// pemBlockRegex captures a private key block with any uppercase type label
// (EC, RSA, ED25519, or none). The label is captured so it can be re-emitted
// verbatim: swapping e.g. EC for RSA without re-encoding the body would
// invalidate the key.
var pemBlockRegex = regexp.MustCompile(`(?s)(-{5}BEGIN [A-Z ]*PRIVATE KEY-{5})(.*?)(-{5}END [A-Z ]*PRIVATE KEY-{5})`)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizePrivateKey repairs a secret that may be a PEM private key mangled
// by copy-paste: literal two-character "\n" sequences become real newlines,
// and if PEM markers are present the block is rebuilt as header, body, and
// footer separated by single newlines with all whitespace stripped from the
// base64 body. Input without PEM markers is returned trimmed, with "\n"
// literals converted, and otherwise untouched.
//
// The transformation is purely textual; the key's cryptographic encoding is
// never re-derived or converted.
func NormalizePrivateKey(raw string) string {
	s := strings.ReplaceAll(raw, `\n`, "\n")
	s = strings.TrimSpace(s)

	m := pemBlockRegex.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	header := m[1]
	body := whitespaceRegex.ReplaceAllString(m[2], "")
	footer := m[3]

	return header + "\n" + body + "\n" + footer
}

// IsPEM reports whether the secret contains a private key block. Used only
// for non-sensitive logging; never log the secret itself.
func IsPEM(raw string) bool {
	return pemBlockRegex.MatchString(strings.ReplaceAll(raw, `\n`, "\n"))
}
