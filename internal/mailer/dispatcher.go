package mailer

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type job struct {
	ID     string
	To     string
	Kind   Kind
	Params map[string]string
}

// Dispatcher queues mail jobs behind a worker goroutine so a slow or
// broken provider never blocks a booking or cancellation. Failures are
// logged with the job id; nothing is retried or propagated.
type Dispatcher struct {
	sender Sender
	queue  chan job
	log    *zap.Logger
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan job, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for j := range d.queue {
		if err := d.sender.Send(j.To, j.Kind, j.Params); err != nil {
			d.log.Warn("mail delivery failed",
				zap.String("job_id", j.ID),
				zap.String("to", j.To),
				zap.String("kind", string(j.Kind)),
				zap.Error(err),
			)
		}
	}
}

// Dispatch enqueues a mail without blocking. A full queue drops the
// job with a log line.
func (d *Dispatcher) Dispatch(to string, kind Kind, params map[string]string) {
	if to == "" {
		return
	}

	j := job{
		ID:     uuid.NewString(),
		To:     to,
		Kind:   kind,
		Params: params,
	}

	select {
	case d.queue <- j:
	default:
		d.log.Warn("mail queue full, dropping job",
			zap.String("to", to),
			zap.String("kind", string(kind)),
		)
	}
}
