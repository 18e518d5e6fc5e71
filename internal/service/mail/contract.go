package mail

// Sender attempts one delivery and reports the outcome. Implementations
// must absorb transport failures and report false instead of panicking,
// so callers can treat a send as a plain yes/no.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) bool
}
