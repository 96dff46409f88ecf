package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// Dispatcher delivers outbound emails on a fixed set of workers. Emails are
// sharded by recipient using FNV-32a, so mail to one address keeps its order.
type Dispatcher struct {
	workers []chan ports.Email
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards closed; Notify holds it shared so Stop never closes a
	// channel under a pending send.
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Email, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Email, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Stop.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop refuses further emails, lets every worker deliver what is already
// queued and waits for them to exit. If ctx ends first, Stop returns its
// error and the workers keep draining in the background.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify queues email for delivery without blocking. When the worker's
// channel is full, or the dispatcher is stopped, the email is dropped and
// counted.
func (d *Dispatcher) Notify(email ports.Email) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("to", email.To).
			Str("subject", email.Subject).
			Msg("email dispatcher stopped, dropping message")
		return
	}

	idx := d.shardIndex(email.To)
	select {
	case d.workers[idx] <- email:
		metrics.EmailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("to", email.To).
			Str("subject", email.Subject).
			Int("worker_id", idx).
			Msg("email queue full, dropping message")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(to)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan ports.Email) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for email := range ch {
		metrics.EmailQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		d.deliver(id, email)
	}
}

// deliver is detached from any request or signal context; each send is
// bounded by sendTimeout only.
func (d *Dispatcher) deliver(id int, email ports.Email) {
	sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.mailer.Send(sendCtx, email)
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metrics.EmailsSentTotal.WithLabelValues(result).Inc()
	metrics.EmailDeliveryDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		d.log.Error().Err(err).
			Str("to", email.To).
			Str("subject", email.Subject).
			Int("worker_id", id).
			Msg("email delivery failed")
		return
	}
	d.log.Debug().Str("to", email.To).Int("worker_id", id).Msg("email delivered")
}
