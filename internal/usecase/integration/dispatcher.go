package integration

import (
	"context"
	"log/slog"
	"sync"

	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type syncTask struct {
	ctx context.Context
	op  Operation
	ev  AppointmentEvent
}

// Dispatcher runs syncs after the internal commit on goroutines detached from the
// request context, then persists the resulting external ids and sync warning.
// Syncs of one appointment run one at a time, in dispatch order.
type Dispatcher struct {
	syncer       *Service
	appointments shared.AppointmentRepository
	logger       *slog.Logger
	wg           sync.WaitGroup

	mu     sync.Mutex
	queues map[uuid.UUID][]syncTask
}

func NewDispatcher(svc *Service, appointments shared.AppointmentRepository, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		syncer:       svc,
		appointments: appointments,
		logger:       logger,
		queues:       make(map[uuid.UUID][]syncTask),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, op Operation, ev AppointmentEvent) {
	task := syncTask{ctx: context.WithoutCancel(ctx), op: op, ev: ev}
	d.wg.Add(1)

	d.mu.Lock()
	queue, draining := d.queues[ev.AppointmentID]
	d.queues[ev.AppointmentID] = append(queue, task)
	d.mu.Unlock()

	if !draining {
		go d.drain(ev.AppointmentID)
	}
}

// drain owns the appointment's queue until it is empty.
func (d *Dispatcher) drain(id uuid.UUID) {
	for {
		d.mu.Lock()
		queue := d.queues[id]
		if len(queue) == 0 {
			delete(d.queues, id)
			d.mu.Unlock()
			return
		}
		task := queue[0]
		d.queues[id] = queue[1:]
		d.mu.Unlock()

		d.run(task.ctx, task.op, task.ev)
		d.wg.Done()
	}
}

func (d *Dispatcher) run(ctx context.Context, op Operation, ev AppointmentEvent) {
	ev, ok := d.refresh(ctx, op, ev)
	if !ok {
		return
	}

	var res SyncResult
	switch op {
	case OperationCreate:
		res = d.syncer.SyncCreate(ctx, ev)
	case OperationUpdate:
		res = d.syncer.SyncUpdate(ctx, ev)
	case OperationDelete:
		res = d.syncer.SyncDelete(ctx, ev)
	default:
		d.logger.ErrorContext(ctx, "unknown sync operation", "operation", op, "appointment_id", ev.AppointmentID)
		return
	}

	err := d.appointments.UpdateSyncState(ctx, ev.AppointmentID,
		res.ExternalIDs.CalendarEventID, res.ExternalIDs.SchedulerEventID, res.Warning())
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to persist sync state",
			"salon_id", ev.SalonID,
			"appointment_id", ev.AppointmentID,
			"error", err)
		return
	}
	if !res.Success {
		d.logger.InfoContext(ctx, "appointment saved with external sync warnings",
			"salon_id", ev.SalonID,
			"appointment_id", ev.AppointmentID,
			"errors", len(res.Errors))
	}
}

// refresh replaces the event's external ids with the stored ones, which an earlier sync
// may have written after the event was built. A cancelled appointment is only deleted.
func (d *Dispatcher) refresh(ctx context.Context, op Operation, ev AppointmentEvent) (AppointmentEvent, bool) {
	stored, err := d.appointments.FindByID(ctx, ev.AppointmentID)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to reload external ids, using dispatched ones",
			"salon_id", ev.SalonID,
			"appointment_id", ev.AppointmentID,
			"error", err)
		return ev, true
	}
	if stored == nil {
		return ev, true
	}
	if op != OperationDelete && !stored.IsActive() {
		d.logger.InfoContext(ctx, "skipping sync of cancelled appointment",
			"salon_id", ev.SalonID,
			"appointment_id", ev.AppointmentID,
			"operation", op)
		return ev, false
	}
	ev.CalendarEventID = stored.CalendarEventID()
	ev.SchedulerEventID = stored.SchedulerEventID()
	return ev, true
}

// Wait blocks until in-flight syncs finish or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
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
