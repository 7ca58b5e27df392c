// Package mail is the outbound notification gateway. The auth flows depend
// only on the Mailer interface so tests can swap in a capture implementation.
package mail

import "context"

type Mailer interface {
	// Send delivers a plain text message to a single recipient. A non-nil
	// error means the message was not handed off to the mail server.
	Send(ctx context.Context, to, subject, body string) error
}
