package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/email"
	"github.com/guttosm/quote-service/internal/logger"
	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/guttosm/quote-service/internal/render"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	emailKindCustomer = "customer"
	emailKindShop     = "shop"
	emailKindConsole  = "console"
)

// ErrNothingToEmail is returned for quotes that carry no price, such as orders
// under the shop minimum, or that have no customer address.
var ErrNothingToEmail = errors.New("quote has no priced breakdown or no recipient")

// NotificationResult reports which quote emails were accepted for delivery.
type NotificationResult struct {
	CustomerSent bool
	ShopSent     bool
}

// QuoteNotifier emails priced quotes.
//
// NotifyQuote sends a portal quote to the customer and the shop as two
// messages. Delivery failures are logged and reported, never returned.
//
// EmailQuote sends a console quote to the customer with the shop on Bcc. The
// shop operator is waiting on the result, so a failure is returned.
type QuoteNotifier interface {
	NotifyQuote(ctx context.Context, q render.Quote, shopEmail string) NotificationResult
	EmailQuote(ctx context.Context, q render.Quote, shopEmail string) error
}

// QuoteNotifierImpl implements QuoteNotifier on top of a Mailer.
type QuoteNotifierImpl struct {
	mailer        email.Mailer
	fallbackEmail string
}

// NewQuoteNotifier creates a notifier. fallbackShopEmail receives shop copies for
// tenants without their own notification address.
func NewQuoteNotifier(mailer email.Mailer, fallbackShopEmail string) *QuoteNotifierImpl {
	return &QuoteNotifierImpl{mailer: mailer, fallbackEmail: fallbackShopEmail}
}

func (n *QuoteNotifierImpl) NotifyQuote(ctx context.Context, q render.Quote, shopEmail string) NotificationResult {
	var result NotificationResult
	if n.mailer == nil || q.Breakdown == nil || q.Breakdown.GuardrailTriggered {
		return result
	}

	var g errgroup.Group
	if q.Customer != nil && q.Customer.Email != "" {
		g.Go(func() error {
			result.CustomerSent = n.send(ctx, emailKindCustomer, q, customerMessage(q)) == nil
			return nil
		})
	}

	to := shopEmail
	if to == "" {
		to = n.fallbackEmail
	}
	if to == "" {
		log.Warn().Str("tenant", q.Breakdown.Tenant).Msg("No shop notification email configured")
	} else {
		g.Go(func() error {
			result.ShopSent = n.send(ctx, emailKindShop, q, shopMessage(q, to)) == nil
			return nil
		})
	}

	_ = g.Wait()
	return result
}

func (n *QuoteNotifierImpl) EmailQuote(ctx context.Context, q render.Quote, shopEmail string) error {
	if n.mailer == nil {
		return email.ErrNotConfigured
	}
	if q.Breakdown == nil || q.Breakdown.GuardrailTriggered || q.Customer == nil || q.Customer.Email == "" {
		return ErrNothingToEmail
	}

	bcc := shopEmail
	if bcc == "" {
		bcc = n.fallbackEmail
	}
	if err := n.send(ctx, emailKindConsole, q, consoleMessage(q, bcc)); err != nil {
		return fmt.Errorf("email quote %s: %w", q.ID, err)
	}
	return nil
}

func (n *QuoteNotifierImpl) send(ctx context.Context, kind string, q render.Quote, msg email.Message) error {
	err := n.mailer.Send(ctx, msg)
	metrics.RecordEmail(kind, err)
	if err != nil {
		log.Error().
			Err(err).
			Str("kind", kind).
			Str("tenant", q.Breakdown.Tenant).
			Str("quote_id", q.ID).
			Str("to", logger.Redact(msg.To)).
			Msg("Failed to send quote email")
		return err
	}
	log.Info().
		Str("kind", kind).
		Str("tenant", q.Breakdown.Tenant).
		Str("quote_id", q.ID).
		Str("to", logger.Redact(msg.To)).
		Msg("Quote email sent")
	return nil
}

func customerMessage(q render.Quote) email.Message {
	text := fmt.Sprintf("Hi %s,\n\nThanks for requesting a quote!\n\n%s\nWe'll review your request and get back to you within 24 hours to finalize details and artwork.\n\nQuestions? Just reply to this email.\n",
		q.Customer.FirstName(), render.Text(q))

	html, err := render.HTML(q)
	if err != nil {
		log.Warn().Err(err).Str("quote_id", q.ID).Msg("Sending quote email as plain text")
		html = ""
	}
	return email.Message{
		To:       q.Customer.Email,
		Subject:  q.Subject(),
		TextBody: text,
		HTMLBody: html,
		Tag:      "customer-quote",
	}
}

func consoleMessage(q render.Quote, bcc string) email.Message {
	text := fmt.Sprintf("Hi %s,\n\nHere is the quote we put together for you.\n\n%s\nReply to this email to approve it or ask for changes.\n",
		q.Customer.FirstName(), render.Text(q))

	html, err := render.HTML(q)
	if err != nil {
		log.Warn().Err(err).Str("quote_id", q.ID).Msg("Sending quote email as plain text")
		html = ""
	}
	return email.Message{
		To:       q.Customer.Email,
		Bcc:      bcc,
		Subject:  q.Subject(),
		TextBody: text,
		HTMLBody: html,
		Tag:      "console-quote",
	}
}

func shopMessage(q render.Quote, to string) email.Message {
	var sb strings.Builder
	sb.WriteString("New quote request\n\n")
	if c := q.Customer; c != nil {
		fmt.Fprintf(&sb, "Name: %s\nEmail: %s\n", c.Name, c.Email)
		if c.Phone != "" {
			fmt.Fprintf(&sb, "Phone: %s\n", c.Phone)
		}
		if c.Company != "" {
			fmt.Fprintf(&sb, "Company: %s\n", c.Company)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(render.Text(q))

	msg := email.Message{
		To:       to,
		Subject:  shopSubject(q.Breakdown),
		TextBody: sb.String(),
		Tag:      "shop-notification",
	}
	if q.Customer != nil {
		msg.ReplyTo = q.Customer.Email
	}
	return msg
}

func shopSubject(b *model.Breakdown) string {
	garment := "customer-supplied garments"
	if lines := b.LinesOf(model.CategoryGarment); len(lines) > 0 {
		garment = lines[0].Label
	}
	return fmt.Sprintf("New Quote: %dx %s - $%s", b.Quantity, garment, model.FormatMoney(b.GrandTotal))
}
