package coreemail

// Kind identifies one of the two built-in system emails.
type Kind string

const (
	// KindAddressConfirmation is the email asking a new user to confirm
	// their address.
	KindAddressConfirmation Kind = "user-address-confirmation"
	// KindResetPassword is the password reset email.
	KindResetPassword Kind = "reset-password"
)

// settingsKey is the slot in the external settings store holding both
// overrides.
const settingsKey = "email"

// storeKeys maps a kind to its logical name inside the settings slot.
var storeKeys = map[Kind]string{
	KindAddressConfirmation: "email_confirmation",
	KindResetPassword:       "reset_password",
}

// ParseKind validates a core email type from a request path.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if _, ok := storeKeys[kind]; !ok {
		return "", ErrUnknownKind
	}
	return kind, nil
}
