package audit

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/reserva-top/internal/logging"
)

type Event struct {
	ProfessionalID uint
	UserID         *uint
	Action         string
	Entity         string
	EntityID       *uint
	Metadata       any
}

const writeTimeout = 5 * time.Second

type Dispatcher struct {
	writer Writer
	logger *logging.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(writer Writer, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}

	d := &Dispatcher{
		writer: writer,
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.writer.Log(ctx, ev); err != nil {
			d.logger.Error("audit write failed",
				"action", ev.Action,
				"professional_id", ev.ProfessionalID,
				"error", err,
			)
		}
		cancel()
	}
}

// Dispatch never blocks. A nil dispatcher is a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
