package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/apotekly/api/internal/account/entity"
	"github.com/apotekly/api/internal/pkg/instrument"
	"github.com/apotekly/api/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

// Mailer delivers OTP emails over the configured mail provider, retrying
// transient failures with capped fibonacci backoff.
type Mailer struct {
	client mail.Mail
	ins    instrument.Instrumentation
	from   string
}

func New(client mail.Mail, ins instrument.Instrumentation, from string) *Mailer {
	return &Mailer{client: client, ins: ins, from: from}
}

func (m *Mailer) SendVerificationCode(ctx context.Context, email, code string) error {
	return m.send(ctx, "SendVerificationCode", mail.Message{
		From:    m.from,
		To:      []string{email},
		Subject: "Verify your Apotekly account",
		TextBody: fmt.Sprintf("Welcome to Apotekly!\n\n"+
			"Your verification code is: %s\n\n"+
			"This code expires in %d minutes. If you did not create an account, you can ignore this email.\n",
			code, int(entity.OTPLifetime.Minutes())),
	})
}

func (m *Mailer) SendPasswordResetCode(ctx context.Context, email, code string) error {
	return m.send(ctx, "SendPasswordResetCode", mail.Message{
		From:    m.from,
		To:      []string{email},
		Subject: "Reset your Apotekly password",
		TextBody: fmt.Sprintf("We received a request to reset your password.\n\n"+
			"Your reset code is: %s\n\n"+
			"This code expires in %d minutes. If you did not request a reset, you can ignore this email.\n",
			code, int(entity.OTPLifetime.Minutes())),
	})
}

func (m *Mailer) send(ctx context.Context, name string, msg mail.Message) error {
	ctx, span := m.ins.Tracer("account.outbound.mailer").Start(ctx, name)
	defer span.End()

	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithMaxRetries(3, b)
	b = retry.WithCappedDuration(2*time.Second, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := m.client.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
