package services

import (
	"context"
	"errors"
	"sync"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/dto"
)

// fakePeers serves lookups from maps; a missing key is an unresolved lookup.
type fakePeers struct {
	mu          sync.Mutex
	users       map[string]string
	restaurants map[string]string
	shippers    map[string]string
	menus       map[string]map[string]core.MenuItem

	missing     map[string]bool // ids answering 404
	unreachable map[string]bool // ids failing at transport level
	busyErr     error
	busy        []string
	menuCalls   int
}

func newFakePeers() *fakePeers {
	return &fakePeers{
		users:       map[string]string{"u1": "alice"},
		restaurants: map[string]string{"r1": "Pho Place"},
		shippers:    map[string]string{"s1": "Sam"},
		menus: map[string]map[string]core.MenuItem{
			"r1": {"m1": {Name: "Pho", Price: 8.5}, "m2": {Name: "Tea", Price: 2}},
		},
		missing:     map[string]bool{},
		unreachable: map[string]bool{},
	}
}

func lookup(m map[string]string, id string) core.Lookup[string] {
	if v, ok := m[id]; ok {
		return core.Lookup[string]{Value: v, Resolved: true}
	}
	return core.Lookup[string]{Value: core.Unknown}
}

func (f *fakePeers) UserName(ctx context.Context, id string) core.Lookup[string] {
	return lookup(f.users, id)
}

func (f *fakePeers) RestaurantName(ctx context.Context, id string) core.Lookup[string] {
	return lookup(f.restaurants, id)
}

func (f *fakePeers) ShipperName(ctx context.Context, id string) core.Lookup[string] {
	return lookup(f.shippers, id)
}

func (f *fakePeers) MenuItem(ctx context.Context, restaurantID, itemID string) core.Lookup[core.MenuItem] {
	f.mu.Lock()
	f.menuCalls++
	f.mu.Unlock()
	if item, ok := f.menus[restaurantID][itemID]; ok {
		return core.Lookup[core.MenuItem]{Value: item, Resolved: true}
	}
	return core.Lookup[core.MenuItem]{Value: core.MenuItem{Name: core.Unknown}}
}

func (f *fakePeers) SetShipperBusy(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busyErr != nil {
		return f.busyErr
	}
	f.busy = append(f.busy, id)
	return nil
}

var errDial = errors.New("dial tcp: connection refused")

func (f *fakePeers) exists(id string) (bool, error) {
	if f.unreachable[id] {
		return false, errDial
	}
	return !f.missing[id], nil
}

func (f *fakePeers) UserExists(ctx context.Context, id string) (bool, error) {
	return f.exists(id)
}

func (f *fakePeers) RestaurantExists(ctx context.Context, id string) (bool, error) {
	return f.exists(id)
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []dto.OrderEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event dto.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Event)
	}
	return out
}
