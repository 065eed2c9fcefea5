package http_test

import (
	"context"
	"sync"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// memStore keeps aggregates in memory so the handlers run end to end without a database.
type memStore struct {
	mu         sync.Mutex
	mixOrders  map[kernel.UUID]mixorder.MixOrder
	mobileRuns map[kernel.UUID]mobilerun.MobileRun
	events     []events.Event
}

func newMemStore() *memStore {
	return &memStore{
		mixOrders:  map[kernel.UUID]mixorder.MixOrder{},
		mobileRuns: map[kernel.UUID]mobilerun.MobileRun{},
	}
}

func (s *memStore) eventTypes() []events.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]events.Type, 0, len(s.events))
	for _, e := range s.events {
		types = append(types, e.EventType)
	}
	return types
}

type memUoW struct{ store *memStore }

func (u memUoW) Begin(context.Context) error    { return nil }
func (u memUoW) Commit(context.Context) error   { return nil }
func (u memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) MixOrderRepository() ports.MixOrderRepository {
	return memMixOrders{store: u.store}
}

func (u memUoW) BatchRepository() ports.BatchRepository {
	// Batch endpoints are not exercised here.
	return nil
}

func (u memUoW) MobileRunRepository() ports.MobileRunRepository {
	return memMobileRuns{store: u.store}
}

func (u memUoW) Outbox() ports.Outbox {
	return memOutbox{store: u.store}
}

type mixOrderUoWs struct{ store *memStore }

func (f mixOrderUoWs) Create() commands.MixOrderUoW { return memUoW(f) }

type batchUoWs struct{ store *memStore }

func (f batchUoWs) Create() commands.BatchUoW { return memUoW(f) }

type mobileRunUoWs struct{ store *memStore }

func (f mobileRunUoWs) Create() commands.MobileRunUoW { return memUoW(f) }

type memMixOrders struct{ store *memStore }

func (r memMixOrders) Add(_ context.Context, o mixorder.MixOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.mixOrders[o.ID()] = o
	return nil
}

func (r memMixOrders) Update(_ context.Context, o mixorder.MixOrder) (mixorder.MixOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.mixOrders[o.ID()]
	if !ok || !stored.TenantID().IsEqual(o.TenantID()) {
		return mixorder.MixOrder{}, errs.NewObjectNotFoundError("mixOrder", o.ID())
	}
	if stored.Version() != o.Version() {
		return mixorder.MixOrder{}, errs.NewVersionIsInvalidError("mixOrder " + o.ID().String())
	}
	doc := o.ToDocument()
	doc.Version++
	saved, err := mixorder.FromDocument(doc)
	if err != nil {
		return mixorder.MixOrder{}, err
	}
	r.store.mixOrders[o.ID()] = saved
	return saved, nil
}

func (r memMixOrders) Get(_ context.Context, tenantID, id kernel.UUID) (mixorder.MixOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.mixOrders[id]
	if !ok || !o.TenantID().IsEqual(tenantID) {
		return mixorder.MixOrder{}, errs.NewObjectNotFoundError("mixOrder", id)
	}
	return o, nil
}

func (r memMixOrders) Delete(_ context.Context, tenantID, id kernel.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.mixOrders[id]
	if !ok || !o.TenantID().IsEqual(tenantID) {
		return errs.NewObjectNotFoundError("mixOrder", id)
	}
	delete(r.store.mixOrders, id)
	return nil
}

func (r memMixOrders) List(_ context.Context, tenantID kernel.UUID, filter ports.MixOrderFilter) ([]mixorder.MixOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []mixorder.MixOrder
	for _, o := range r.store.mixOrders {
		if !o.TenantID().IsEqual(tenantID) {
			continue
		}
		if filter.Status != nil && o.Status() != *filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// memMobileRuns implements the calls made by the start and read paths only.
type memMobileRuns struct {
	ports.MobileRunRepository
	store *memStore
}

func (r memMobileRuns) Add(_ context.Context, run mobilerun.MobileRun) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.mobileRuns[run.ID()] = run
	return nil
}

func (r memMobileRuns) Get(_ context.Context, tenantID, id kernel.UUID) (mobilerun.MobileRun, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	run, ok := r.store.mobileRuns[id]
	if !ok || !run.TenantID().IsEqual(tenantID) {
		return mobilerun.MobileRun{}, errs.NewObjectNotFoundError("mobileRun", id)
	}
	return run, nil
}

func (r memMobileRuns) List(_ context.Context, tenantID kernel.UUID, _ ports.MobileRunFilter) ([]mobilerun.MobileRun, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []mobilerun.MobileRun
	for _, run := range r.store.mobileRuns {
		if run.TenantID().IsEqual(tenantID) {
			out = append(out, run)
		}
	}
	return out, nil
}

type memOutbox struct{ store *memStore }

func (o memOutbox) Append(_ context.Context, evts ...events.Event) error {
	o.store.mu.Lock()
	defer o.store.mu.Unlock()
	o.store.events = append(o.store.events, evts...)
	return nil
}

func (o memOutbox) FetchPending(context.Context, int) ([]events.Event, error) {
	return nil, nil
}

func (o memOutbox) MarkPublished(context.Context, []kernel.UUID, time.Time) error {
	return nil
}
