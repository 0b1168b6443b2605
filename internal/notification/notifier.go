// Package notification delivers operational alerts to firm staff over
// email and Slack. Delivery is best effort; a failed send is logged and
// never propagated to the caller.
package notification

import (
	"context"
	"fmt"
	"strings"

	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	"github.com/juristech/legara/internal/providers/email"
	"github.com/juristech/legara/internal/providers/slack"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Email email.Provider
	Slack slack.Provider
	Log   *zap.Logger
}

type Notifier struct {
	email email.Provider
	slack slack.Provider
	log   *zap.Logger
}

func NewNotifier(p Params) *Notifier {
	return &Notifier{
		email: p.Email,
		slack: p.Slack,
		log:   p.Log.Named("notification"),
	}
}

// OverdueDigest sends one summary of a firm's overdue cases to the
// firm's contact address and the ops Slack channel.
func (n *Notifier) OverdueDigest(ctx context.Context, firm *firmdomain.Firm, entries []casefiledomain.CaseAging) {
	if len(entries) == 0 {
		return
	}

	subject := fmt.Sprintf("%d overdue cases at %s", len(entries), firm.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Overdue cases for %s:</p><ul>", firm.Name)
	for _, entry := range entries {
		fmt.Fprintf(&b, "<li>%s: %s, %d days, %.2f outstanding, risk %s</li>",
			entry.Case.Number,
			entry.Case.DebtorName,
			entry.DaysOverdue,
			entry.Case.Principal,
			entry.RiskLevel,
		)
	}
	b.WriteString("</ul>")

	n.deliver(ctx, firm, "overdue digest", subject, b.String(),
		fmt.Sprintf("%s (%d cases need attention)", subject, len(entries)))
}

// CaseEscalated announces a credit case's hand-off to the legal workflow.
func (n *Notifier) CaseEscalated(ctx context.Context, firm *firmdomain.Firm, legal *casefiledomain.CaseFile) {
	subject := fmt.Sprintf("Case %s escalated to legal as %s", legal.EscalatedFrom, legal.Number)
	body := fmt.Sprintf("<p>Case %s (%s, %.2f outstanding) has been escalated. The legal case number is %s.</p>",
		legal.EscalatedFrom, legal.DebtorName, legal.Principal, legal.Number)

	n.deliver(ctx, firm, "escalation notice", subject, body, subject)
}

// PaymentReceived announces a recorded payment against a case.
func (n *Notifier) PaymentReceived(ctx context.Context, firm *firmdomain.Firm, caseNumber string, payment *paymentdomain.Payment) {
	subject := fmt.Sprintf("Payment of %.2f received on %s", payment.Amount, caseNumber)
	body := fmt.Sprintf("<p>A %s payment of %.2f was recorded against case %s (reference %q).</p>",
		payment.Method, payment.Amount, caseNumber, payment.Reference)

	n.deliver(ctx, firm, "payment notice", subject, body, subject)
}

func (n *Notifier) deliver(ctx context.Context, firm *firmdomain.Firm, kind, subject, htmlBody, slackText string) {
	messageID := ulid.Make().String()

	if firm.ContactEmail != "" {
		if err := n.email.Send(ctx, []string{firm.ContactEmail}, subject, htmlBody); err != nil {
			n.log.Warn(kind+" email failed",
				zap.String("message_id", messageID),
				zap.String("firm_id", firm.ID.String()),
				zap.Error(err),
			)
		}
	}

	if err := n.slack.PostMessage(ctx, slackText); err != nil {
		n.log.Warn(kind+" slack post failed",
			zap.String("message_id", messageID),
			zap.String("firm_id", firm.ID.String()),
			zap.Error(err),
		)
	}

	n.log.Info(kind+" sent",
		zap.String("message_id", messageID),
		zap.String("firm_id", firm.ID.String()),
	)
}
