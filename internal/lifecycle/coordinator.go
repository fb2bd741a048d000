// Package lifecycle binds board items to mounted embeds.
//
// A [Coordinator] owns every live registration, keyed by item id and by
// mount point. It classifies items, asks the provider adapter to mount them,
// registers the mount point with the visibility tracker and routes
// visibility transitions to the right registration. Unmounting always
// releases the adapter registration and the tracker observation together.
package lifecycle

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
	"github.com/desertthunder/moodboard/internal/shared"
	"github.com/desertthunder/moodboard/internal/visibility"
)

type mounted struct {
	itemID  string
	url     string
	result  classify.Result
	adapter players.Adapter
	reg     *players.Registration
}

// Status is a snapshot of one mounted embed.
type Status struct {
	ItemID   string
	Mount    models.MountPoint
	Provider models.Provider
	State    players.State
	Playback players.Playback
	Visible  bool
	Muted    bool
}

// Coordinator owns the mounted embeds of one board view. Like the tracker it
// must only be used from the dispatch queue's goroutine.
type Coordinator struct {
	tracker     *visibility.Tracker
	adapters    *Adapters
	logger      *log.Logger
	byItem      map[string]*mounted
	byMount     map[models.MountPoint]*mounted
	unsubscribe func()
}

// New creates a [Coordinator] and subscribes it to tracker.
func New(tracker *visibility.Tracker, adapters *Adapters, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	c := &Coordinator{
		tracker:  tracker,
		adapters: adapters,
		logger:   shared.WithLogger(logger, "component", "lifecycle"),
		byItem:   make(map[string]*mounted),
		byMount:  make(map[models.MountPoint]*mounted),
	}
	c.unsubscribe = tracker.Subscribe(c.onVisibility)
	return c
}

// Mount classifies item and mounts its embed at mp. An item that is already
// mounted is unmounted first, as is any other item holding mp.
func (c *Coordinator) Mount(item *models.Item, mp models.MountPoint) *players.Registration {
	c.Unmount(item.ID())
	if other, ok := c.byMount[mp]; ok {
		c.Unmount(other.itemID)
	}

	res := classify.Classify(item.URL())
	adapter := c.adapters.For(res)
	reg := adapter.Mount(mp, mediaID(res, item.URL()))

	m := &mounted{itemID: item.ID(), url: item.URL(), result: res, adapter: adapter, reg: reg}
	c.byItem[m.itemID] = m
	c.byMount[mp] = m
	c.tracker.Observe(mp)

	c.logger.Debug("mounted", "item", m.itemID, "mount", mp, "provider", res.Provider, "state", reg.State())
	return reg
}

// Unmount disposes the embed of itemID. Unknown ids are ignored.
func (c *Coordinator) Unmount(itemID string) {
	m, ok := c.byItem[itemID]
	if !ok {
		return
	}
	mp := m.reg.Mount()
	m.adapter.Dispose(m.reg)
	c.tracker.Unobserve(mp)
	delete(c.byItem, itemID)
	delete(c.byMount, mp)
	c.logger.Debug("unmounted", "item", itemID, "mount", mp)
}

// Sync makes the mounted set match items: embeds for items no longer present
// are unmounted, new items are mounted at mountFor(item), and items whose URL
// or mount point changed are remounted.
func (c *Coordinator) Sync(items []*models.Item, mountFor func(*models.Item) models.MountPoint) {
	keep := make(map[string]bool, len(items))
	for _, item := range items {
		keep[item.ID()] = true
	}
	for id := range c.byItem {
		if !keep[id] {
			c.Unmount(id)
		}
	}

	for _, item := range items {
		mp := mountFor(item)
		if m, ok := c.byItem[item.ID()]; ok && m.url == item.URL() && m.reg.Mount() == mp {
			continue
		}
		c.Mount(item, mp)
	}
}

// Registration returns the live registration of itemID.
func (c *Coordinator) Registration(itemID string) (*players.Registration, bool) {
	m, ok := c.byItem[itemID]
	if !ok {
		return nil, false
	}
	return m.reg, true
}

// Len returns the number of mounted embeds.
func (c *Coordinator) Len() int { return len(c.byItem) }

// Statuses returns a snapshot of every mounted embed ordered by item id.
func (c *Coordinator) Statuses() []Status {
	out := make([]Status, 0, len(c.byItem))
	for _, m := range c.byItem {
		out = append(out, Status{
			ItemID:   m.itemID,
			Mount:    m.reg.Mount(),
			Provider: m.reg.Provider(),
			State:    m.reg.State(),
			Playback: m.reg.Playback(),
			Visible:  m.reg.DesiredVisible(),
			Muted:    m.reg.Muted(),
		})
	}
	slices.SortFunc(out, func(a, b Status) int { return strings.Compare(a.ItemID, b.ItemID) })
	return out
}

// Close unmounts everything and stops listening to the tracker.
func (c *Coordinator) Close() {
	for id := range c.byItem {
		c.Unmount(id)
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Coordinator) onVisibility(mp models.MountPoint, visible bool) {
	m, ok := c.byMount[mp]
	if !ok {
		return
	}
	m.adapter.OnVisibilityChange(m.reg, visible)
}

// mediaID is what the adapter mounts: the extracted id, or the URL itself
// for providers that embed straight from it.
func mediaID(res classify.Result, raw string) string {
	if res.MediaID != "" {
		return res.MediaID
	}
	return strings.TrimSpace(raw)
}
