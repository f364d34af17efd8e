package email

// Config holds the Postmark credentials and sender identity. Tokens are
// optional so development environments can fall back to the noop sender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"bildirim@listele.io"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL" envDefault:"destek@listele.io"`
}

// Enabled reports whether real sending is configured.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
