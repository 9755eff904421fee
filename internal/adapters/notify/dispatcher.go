package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/woodline/backend/internal/domain"
)

// Queue is the in-process implementation of domain.Dispatcher. Confirmation
// mails go through a buffered channel drained by one worker goroutine;
// status advances run on timers. Every failure ends here, in the log:
// nothing propagates back to the checkout caller.
type Queue struct {
	orders domain.OrderRepo
	users  domain.UserRepo
	mail   MailSender

	jobs chan uuid.UUID
	done chan struct{}
	wg   sync.WaitGroup
}

func NewQueue(orders domain.OrderRepo, users domain.UserRepo, mail MailSender, buffer int) *Queue {
	if buffer <= 0 {
		buffer = 64
	}
	q := &Queue{
		orders: orders,
		users:  users,
		mail:   mail,
		jobs:   make(chan uuid.UUID, buffer),
		done:   make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *Queue) run() {
	defer q.wg.Done()
	for id := range q.jobs {
		q.sendConfirmation(id)
	}
}

// OrderConfirmation never blocks; when the buffer is full the mail is
// dropped and logged.
func (q *Queue) OrderConfirmation(orderID uuid.UUID) {
	select {
	case q.jobs <- orderID:
	default:
		log.Warn().Str("order_id", orderID.String()).Msg("confirmation queue full, mail dropped")
	}
}

func (q *Queue) StatusAdvance(orderID uuid.UUID, after time.Duration) {
	time.AfterFunc(after, func() {
		select {
		case <-q.done:
			return
		default:
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := q.orders.AdvanceStatus(ctx, orderID); err != nil {
			log.Error().Err(err).Str("order_id", orderID.String()).Msg("status advance failed")
		}
	})
}

func (q *Queue) sendConfirmation(orderID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	order, err := q.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("confirmation: order lookup failed")
		return
	}
	profile, err := q.users.ProfileByID(ctx, order.ProfileID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("confirmation: profile lookup failed")
		return
	}
	if profile.User.Email == "" {
		log.Warn().Str("order", order.Number).Msg("confirmation skipped, no email on file")
		return
	}
	if err := q.mail.SendOrderConfirmation(order, profile.User.Email, profile.FullName()); err != nil {
		log.Error().Err(err).Str("order", order.Number).Msg("confirmation mail failed")
		return
	}
	log.Info().Str("order", order.Number).Msg("confirmation mail sent")
}

// Close stops accepting work and waits for queued confirmations to drain.
// Pending status-advance timers are abandoned; they are advisory anyway.
func (q *Queue) Close() {
	close(q.done)
	close(q.jobs)
	q.wg.Wait()
}
