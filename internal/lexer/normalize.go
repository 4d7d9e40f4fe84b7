package lexer

import "golang.org/x/text/unicode/norm"

// normNFCString NFC-normalizes s, so two strings that differ only in
// Unicode composition compare equal.
func normNFCString(s string) string {
	return norm.NFC.String(s)
}
