package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/events"
	"github.com/campus-union/cms-service/internal/mail"
	"github.com/campus-union/cms-service/internal/repository"
)

// Notifier turns content events into queued emails. News goes to every
// active student and subscriber; registration confirmations go to the
// one student involved.
type Notifier struct {
	dispatcher  events.Dispatcher
	users       repository.UserRepository
	subscribers repository.SubscriberRepository
	mailer      mail.Enqueuer
	logger      *zap.Logger
}

// NotifierDependencies encapsulates requirements for the notifier.
type NotifierDependencies struct {
	Dispatcher     events.Dispatcher
	UserRepo       repository.UserRepository
	SubscriberRepo repository.SubscriberRepository
	Mailer         mail.Enqueuer
	Logger         *zap.Logger
}

// NewNotifier creates the notifier.
func NewNotifier(deps NotifierDependencies) *Notifier {
	return &Notifier{
		dispatcher:  deps.Dispatcher,
		users:       deps.UserRepo,
		subscribers: deps.SubscriberRepo,
		mailer:      deps.Mailer,
		logger:      deps.Logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventNewsPublished, n.handleNewsPublished)
	n.dispatcher.Subscribe(events.EventNewsUpdated, n.handleNewsUpdated)
	n.dispatcher.Subscribe(events.EventRegistrationConfirmed, n.handleRegistration)
}

func (n *Notifier) handleNewsPublished(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.NewsPayload)
	if !ok {
		n.logger.Warn("unexpected payload for news event", zap.String("type", string(event.Type)))
		return nil
	}
	subject := fmt.Sprintf("New Article Published: %s", payload.Title)
	body := fmt.Sprintf("A new article has been published: %s\n\nRead it at /news/%s", payload.Title, payload.Slug)
	n.fanout(ctx, subject, body)
	return nil
}

func (n *Notifier) handleNewsUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.NewsPayload)
	if !ok {
		n.logger.Warn("unexpected payload for news event", zap.String("type", string(event.Type)))
		return nil
	}
	subject := fmt.Sprintf("Article Updated: %s", payload.Title)
	body := fmt.Sprintf("An article you follow has been updated: %s\n\nRead it at /news/%s", payload.Title, payload.Slug)
	n.fanout(ctx, subject, body)
	return nil
}

func (n *Notifier) handleRegistration(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RegistrationPayload)
	if !ok {
		n.logger.Warn("unexpected payload for registration event", zap.String("type", string(event.Type)))
		return nil
	}

	var subject, body string
	if payload.Status == domain.RegistrationStatusWaitlisted {
		subject = fmt.Sprintf("Added to Waitlist: %s", payload.EventTitle)
		body = fmt.Sprintf("The event %s is currently full. You are on the waitlist and will be notified when a spot opens.", payload.EventTitle)
	} else {
		subject = fmt.Sprintf("Registration Confirmed: %s", payload.EventTitle)
		body = fmt.Sprintf("Your registration for %s is confirmed. See you there!", payload.EventTitle)
	}

	n.enqueue(ctx, payload.UserEmail, subject, body)
	return nil
}

// fanout queues one email per recipient. A failed enqueue is logged and
// skipped so the rest of the batch still goes out.
func (n *Notifier) fanout(ctx context.Context, subject, body string) {
	recipients, err := n.recipients(ctx)
	if err != nil {
		n.logger.Warn("could not resolve notification recipients", zap.Error(err))
		return
	}
	for _, to := range recipients {
		n.enqueue(ctx, to, subject, body)
	}
}

func (n *Notifier) enqueue(ctx context.Context, to, subject, body string) {
	err := n.mailer.EnqueueSend(ctx, mail.SendPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		n.logger.Warn("mail enqueue failed", zap.String("to", to), zap.Error(err))
	}
}

// recipients collects active students and active subscribers, deduped
// by address. Students come first so a student who also subscribed gets
// one email.
func (n *Notifier) recipients(ctx context.Context) ([]string, error) {
	users, err := n.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := n.subscribers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(users)+len(subs))
	var recipients []string
	for _, user := range users {
		if _, ok := seen[user.Email]; ok {
			continue
		}
		seen[user.Email] = struct{}{}
		recipients = append(recipients, user.Email)
	}
	for _, sub := range subs {
		if _, ok := seen[sub.Email]; ok {
			continue
		}
		seen[sub.Email] = struct{}{}
		recipients = append(recipients, sub.Email)
	}
	return recipients, nil
}
