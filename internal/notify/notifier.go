package notify

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
)

type message struct {
	kind  Kind
	phone string
	data  TemplateData
}

// Notifier renders and sends messages on a background worker.
// Failures are logged and counted, never returned to the caller.
type Notifier struct {
	sender  Sender
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	timeout time.Duration
	queue   chan message

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

type Options struct {
	Timeout   time.Duration
	QueueSize int
	Logger    *logging.Logger
	Metrics   *metrics.BookingMetrics
}

func NewNotifier(sender Sender, opts Options) *Notifier {
	if sender == nil {
		sender = NewNoopSender()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}

	n := &Notifier{
		sender:  sender,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		timeout: opts.Timeout,
		queue:   make(chan message, opts.QueueSize),
	}

	n.wg.Add(1)
	go n.worker()
	return n
}

func (n *Notifier) worker() {
	defer n.wg.Done()

	for msg := range n.queue {
		n.deliver(msg)
	}
}

func (n *Notifier) deliver(msg message) {
	text, err := Render(msg.kind, msg.data)
	if err != nil {
		n.logger.Error("notification render failed", "kind", msg.kind, "error", err)
		n.metrics.ObserveNotification(string(msg.kind), "failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.sender.Send(ctx, msg.phone, text); err != nil {
		n.logger.Warn("notification send failed",
			"kind", msg.kind,
			"provider", n.sender.ProviderID(),
			"error", err,
		)
		n.metrics.ObserveNotification(string(msg.kind), "failed")
		return
	}

	n.metrics.ObserveNotification(string(msg.kind), "sent")
}

// Notify enqueues a message and returns immediately. A nil notifier is a no-op.
func (n *Notifier) Notify(kind Kind, phone string, data TemplateData) {
	if n == nil || phone == "" {
		return
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}

	select {
	case n.queue <- message{kind: kind, phone: phone, data: data}:
	default:
		n.logger.Warn("notification queue full, dropping message", "kind", kind)
		n.metrics.ObserveNotification(string(kind), "dropped")
	}
}

// Close waits for queued messages to be delivered.
func (n *Notifier) Close() {
	if n == nil {
		return
	}

	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	n.wg.Wait()
}
