// Package session holds the last listing shown to each chat, so that
// delete-by-position resolves against what the user actually saw.
package session

import (
	"sync"

	"github.com/HamzterDev/Calender/internal/domain"
)

// Cache maps a chat ID to the ordered result of that chat's most recent
// successful listing. Memory-only; reset to empty on restart. All access
// is serialized through one mutex.
type Cache struct {
	mu    sync.Mutex
	lists map[int64][]domain.CalendarEvent
}

func New() *Cache {
	return &Cache{
		lists: make(map[int64][]domain.CalendarEvent),
	}
}

// Replace installs a new listing for the chat, wholesale. An empty or nil
// slice clears the slot.
func (c *Cache) Replace(chatID int64, events []domain.CalendarEvent) {
	copied := make([]domain.CalendarEvent, len(events))
	copy(copied, events)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[chatID] = copied
}

// Get returns the event at the 1-based position of the chat's listing,
// or false when the position is out of bounds.
func (c *Cache) Get(chatID int64, position int) (domain.CalendarEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.lists[chatID]
	if position < 1 || position > len(list) {
		return domain.CalendarEvent{}, false
	}
	return list[position-1], true
}

// Remove deletes the entry at the 1-based position, shifting later
// entries down by one. The entry must still carry the given event ID:
// if the slot was replaced by a newer listing in the meantime the
// removal is a no-op and Remove reports false.
func (c *Cache) Remove(chatID int64, position int, eventID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.lists[chatID]
	if position < 1 || position > len(list) {
		return false
	}
	if list[position-1].ID != eventID {
		return false
	}

	c.lists[chatID] = append(list[:position-1], list[position:]...)
	return true
}

// Len returns the length of the chat's current listing.
func (c *Cache) Len(chatID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lists[chatID])
}
