// Package email sends transactional emails through a provider-agnostic
// EmailSender interface.
//
// Three providers are available and selected by Config.Provider
// (MAIL_PROVIDER):
//
//   - "postmark": PostmarkClient, Postmark transactional API
//   - "ses": Amazon SES through aws-sdk-go-v2
//   - "dev": DevSender, writes each email as HTML and JSON files to disk
//
// # Usage
//
//	cfg := config.MustLoad[email.Config]()
//	sender, err := email.NewSender(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "Notification Staka Livres",
//	    BodyHTML: html,
//	    Tag:      "sendUserNotifEmail",
//	})
//
// Every sender validates SendEmailParams before contacting the provider.
//
// # Error Handling
//
//   - ErrInvalidConfig: provider configuration is incomplete
//   - ErrInvalidParams: recipient, subject or body failed validation
//   - ErrFailedToSendEmail: the provider rejected the message or was unreachable
//   - ErrUnknownProvider: MAIL_PROVIDER names no known provider
//
// All errors can be checked with errors.Is.
package email
