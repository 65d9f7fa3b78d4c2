package couponservice

import (
	"strings"
	"unicode"

	"github.com/ShiraazMoollatjie/goluhn"
)

const (
	codePrefixLen = 5
	codeDigits    = 6
	fallbackCode  = "CPN"
)

// GenerateCode builds a coupon code such as "10DIS-482913": the first alphanumerics of the
// event name and a Luhn-valid numeric suffix, so mistyped codes are caught before a lookup.
func GenerateCode(eventName string) string {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(eventName) {
		if prefix.Len() == codePrefixLen {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			prefix.WriteRune(r)
		}
	}
	if prefix.Len() == 0 {
		prefix.WriteString(fallbackCode)
	}
	return prefix.String() + "-" + goluhn.Generate(codeDigits)
}
