package optimistic

import (
	"context"
	"sync"
	"time"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/infrastructure/logging"
	"github.com/sideduran/homeboard/internal/store"
)

// Gateway is the backend surface the controller dispatches against.
// *gateway.Client satisfies it.
type Gateway interface {
	Devices(ctx context.Context) ([]domain.Device, error)
	CreateDevice(ctx context.Context, d domain.Device) (domain.Device, error)
	UpdateDevice(ctx context.Context, d domain.Device) error
	DeleteDevice(ctx context.Context, id string) error
	TurnOnLight(ctx context.Context, id string) error
	TurnOffLight(ctx context.Context, id string) error
	LockDoor(ctx context.Context, id string) error
	UnlockDoor(ctx context.Context, id string) error
	StartRecording(ctx context.Context, id string) error
	StopRecording(ctx context.Context, id string) error
	SetTargetHeat(ctx context.Context, id string, target float64) error

	Rooms(ctx context.Context) ([]domain.Room, error)
	CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error)
	AssignDevice(ctx context.Context, roomID, deviceID string) error

	Scenes(ctx context.Context) ([]domain.Scene, error)
	CreateScene(ctx context.Context, s domain.Scene) (domain.Scene, error)
	UpdateScene(ctx context.Context, s domain.Scene) error
	DeleteScene(ctx context.Context, id string) error
	ActivateScene(ctx context.Context, id string) error

	Automations(ctx context.Context) ([]domain.Automation, error)
	CreateAutomation(ctx context.Context, a domain.Automation) (domain.Automation, error)
	UpdateAutomation(ctx context.Context, a domain.Automation) error
	DeleteAutomation(ctx context.Context, id string) error

	SecurityStatus(ctx context.Context) (domain.SecurityStatus, error)
	Arm(ctx context.Context) error
	Disarm(ctx context.Context) error
	Activities(ctx context.Context) ([]domain.ActivityLog, error)
}

// highlightDuration is how long a mutated entity stays in the highlight set,
// matching the UI's change-flash animation length.
const highlightDuration = 500 * time.Millisecond

// Controller applies mutations to the store first and reconciles with the
// backend afterwards. All methods are safe for concurrent use.
type Controller struct {
	store    *store.Store
	gw       Gateway
	notifier Notifier
	log      *logging.Logger

	mu         sync.Mutex
	seq        map[string]uint64 // last issued sequence per entity
	highlights map[string]time.Time

	wg sync.WaitGroup

	// now is injectable for highlight expiry tests.
	now func() time.Time
}

// New creates a controller. notifier may be nil, in which case notifications
// are dropped.
func New(st *store.Store, gw Gateway, notifier Notifier, log *logging.Logger) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	if log == nil {
		log = logging.Default()
	}
	return &Controller{
		store:      st,
		gw:         gw,
		notifier:   notifier,
		log:        log.With("component", "optimistic"),
		seq:        make(map[string]uint64),
		highlights: make(map[string]time.Time),
		now:        time.Now,
	}
}

// Store exposes the controller's backing store for read access.
func (c *Controller) Store() *store.Store { return c.store }

// Wait blocks until every in-flight dispatch has completed. Tests use it to
// assert on post-completion state; a UI shutdown path can use it to drain.
func (c *Controller) Wait() { c.wg.Wait() }

// Highlighted reports whether the entity mutated within the last 500ms.
func (c *Controller) Highlighted(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.highlights[id]
	return ok && c.now().Sub(t) < highlightDuration
}

func (c *Controller) markHighlight(id string) {
	c.mu.Lock()
	c.highlights[id] = c.now()
	// Sweep expired entries so the map stays bounded.
	for k, t := range c.highlights {
		if c.now().Sub(t) >= highlightDuration {
			delete(c.highlights, k)
		}
	}
	c.mu.Unlock()
}

// nextSeq issues the next sequence number for an entity. A completion is
// applied only if it still carries the entity's latest sequence.
func (c *Controller) nextSeq(entityID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[entityID]++
	return c.seq[entityID]
}

func (c *Controller) isLatest(entityID string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq[entityID] == seq
}

// guardedUndo claims a sequence for a side-effect entity and returns an undo
// that restores it only while that sequence is still the latest. Composite
// commands wrap every secondary entity's undo in it so rolling back never
// clobbers an entity a newer command has claimed in the meantime.
func (c *Controller) guardedUndo(entityID string, undo store.Undo) store.Undo {
	seq := c.nextSeq(entityID)
	return func() {
		if c.isLatest(entityID, seq) {
			undo()
		}
	}
}
