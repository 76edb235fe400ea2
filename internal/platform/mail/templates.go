// Copyright (c) 2026 TrendHive. All rights reserved.

package mail

import "fmt"

// # Message Builders
//
// Each builder produces a complete [Message] for one transactional flow.
// Links point at the SPA frontend, which calls back into the API.

// VerificationMessage builds the email-verification email sent on signup.
func VerificationMessage(to, name, frontendURL, userID, token string) Message {
	link := fmt.Sprintf("%s/verify-email/%s/%s", frontendURL, userID, token)

	body := fmt.Sprintf(`<html><body>
<h2>Welcome to TrendHive, %s!</h2>
<p>Please confirm your email address to activate your account:</p>
<p><a href="%s">Verify my email</a></p>
<p>This link expires in 3 hours.</p>
</body></html>`, name, link)

	return Message{
		To:       to,
		Subject:  "Verify your TrendHive account",
		HTMLBody: body,
	}
}

// PasswordResetMessage builds the reset-link email.
//
// The token in the link is the only plaintext copy; the server stores a hash.
func PasswordResetMessage(to, frontendURL, userID, token string) Message {
	link := fmt.Sprintf("%s/reset-password/%s/%s", frontendURL, userID, token)

	body := fmt.Sprintf(`<html><body>
<h2>Reset your password</h2>
<p>We received a request to reset your TrendHive password.</p>
<p><a href="%s">Choose a new password</a></p>
<p>This link expires in 10 minutes. If you did not request a reset, you can
ignore this email.</p>
</body></html>`, link)

	return Message{
		To:       to,
		Subject:  "TrendHive password reset",
		HTMLBody: body,
	}
}

// ContactReceiptMessage acknowledges a contact-form submission to its sender.
func ContactReceiptMessage(to, name string) Message {
	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Thanks for reaching out to TrendHive. We received your message and will
get back to you shortly.</p>
</body></html>`, name)

	return Message{
		To:       to,
		Subject:  "We received your message",
		HTMLBody: body,
	}
}

// ContactAlertMessage notifies the support inbox of a new submission.
func ContactAlertMessage(adminAddr, name, email, phone, content string) Message {
	body := fmt.Sprintf(`<html><body>
<h2>New contact form submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
</body></html>`, name, email, phone, content)

	return Message{
		To:       adminAddr,
		Subject:  fmt.Sprintf("Contact form: %s", name),
		HTMLBody: body,
	}
}

// GroupWelcomeMessage greets a user who just joined a group. Creating a
// group auto-joins the creator, so they receive it too.
func GroupWelcomeMessage(to, name, groupName string) Message {
	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>Welcome to <strong>%s</strong>! Head over to the group feed and say hi.</p>
</body></html>`, name, groupName)

	return Message{
		To:       to,
		Subject:  fmt.Sprintf("Welcome to %s", groupName),
		HTMLBody: body,
	}
}
