package notify

import (
	"sync"
	"sync/atomic"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/domain"
)

// TopicNotifications carries the latest []domain.Notification on the bus.
const TopicNotifications = "notify.updates"

// Poller refetches notifications on a fixed 30s interval tied to the
// application lifetime. No backoff, no automatic retry; a failed poll waits
// for the next tick. A generation counter discards poll results that resolve
// after a user mutation, so a slow poll cannot resurrect deleted entries.
type Poller struct {
	gw  *api.Gateway
	bus EventBus.Bus

	sched *cron.Cron
	gen   uint64

	mu     sync.RWMutex
	latest []domain.Notification
}

func NewPoller(gw *api.Gateway, bus EventBus.Bus) *Poller {
	return &Poller{gw: gw, bus: bus, sched: cron.New()}
}

func (p *Poller) Start() error {
	if _, err := p.sched.AddFunc("@every 30s", p.poll); err != nil {
		return err
	}
	p.sched.Start()
	go p.poll()
	return nil
}

func (p *Poller) Stop() {
	p.sched.Stop()
}

func (p *Poller) Latest() []domain.Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Notification, len(p.latest))
	copy(out, p.latest)
	return out
}

func (p *Poller) Unread() int {
	n := 0
	for _, note := range p.Latest() {
		if !note.Read {
			n++
		}
	}
	return n
}

func (p *Poller) poll() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	gen := atomic.AddUint64(&p.gen, 1)
	list, err := p.gw.Notifications()
	if err != nil {
		zap.L().Debug("notification poll failed", zap.Error(err))
		return
	}
	if atomic.LoadUint64(&p.gen) != gen {
		return
	}
	p.apply(list)
}

// MarkRead forwards the mutation and refreshes immediately instead of
// waiting for the next tick.
func (p *Poller) MarkRead(id string) error {
	if err := p.gw.MarkNotificationRead(id); err != nil {
		return err
	}
	p.poll()
	return nil
}

func (p *Poller) Delete(id string) error {
	if err := p.gw.DeleteNotification(id); err != nil {
		return err
	}
	p.poll()
	return nil
}

func (p *Poller) apply(list []domain.Notification) {
	p.mu.Lock()
	p.latest = list
	p.mu.Unlock()
	if p.bus != nil {
		p.bus.Publish(TopicNotifications, list)
	}
}
