package dispatch

import (
	"net/url"

	"github.com/mailforge/designer/pkg/coreemail"
)

// Fixed sample values used for previewing and test-sending the core emails.
// They mirror the merge-tag samples shown in the editor.
const (
	sampleUsername  = "john_doe"
	sampleEmail     = "johndoe@example.com"
	sampleToken     = "sample-reset-password-token"
	sampleCode      = "sample-confirmation-code"
	resetPath       = "/admin/auth/reset-password"
	confirmPath     = "/api/auth/email-confirmation"
	tokenQueryParam = "code"
	codeQueryParam  = "confirmation"
)

// SampleData returns a fixed-shape data object for previewing or
// test-sending one of the two core emails. Pure; no storage access.
func SampleData(kind coreemail.Kind, serverURL string) (map[string]any, error) {
	user := map[string]any{
		"username": sampleUsername,
		"email":    sampleEmail,
	}

	switch kind {
	case coreemail.KindResetPassword:
		return map[string]any{
			"USER":       user,
			"TOKEN":      sampleToken,
			"URL":        serverURL + resetPath + "?" + tokenQueryParam + "=" + url.QueryEscape(sampleToken),
			"SERVER_URL": serverURL,
		}, nil
	case coreemail.KindAddressConfirmation:
		return map[string]any{
			"USER":       user,
			"CODE":       sampleCode,
			"URL":        serverURL + confirmPath + "?" + codeQueryParam + "=" + url.QueryEscape(sampleCode),
			"SERVER_URL": serverURL,
		}, nil
	default:
		return nil, coreemail.ErrUnknownKind
	}
}
