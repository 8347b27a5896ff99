package email

// Config holds mail transport configuration. The Postmark tokens are optional
// so development environments can fall back to the local sendmail-style
// sender; SenderEmail establishes the default From identity for messages
// that do not carry their own.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	DevOutputDir         string `env:"EMAIL_DEV_OUTPUT_DIR" envDefault:"./tmp/emails"`
}
