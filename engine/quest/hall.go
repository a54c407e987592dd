// Package quest implements the quest hall and the quest state machine:
// combat kill counters and multi-step story lines. State transitions
// happen here; world side effects are returned as ordered effects for the
// caller to apply.
package quest

import (
	"errors"
	"fmt"

	"github.com/nathoo/questline/types"
)

// Hall selection errors.
var (
	ErrUnknownQuest = errors.New("no such quest")
	ErrLocked       = errors.New("quest is locked")
	ErrQuestActive  = errors.New("a quest is already active")
	ErrNoQuest      = errors.New("no active quest")
)

// Hall owns the quests on offer. A quest handed to the player stays
// owned by the hall until it completes and is removed.
type Hall struct {
	quests []*types.Quest
}

// NewHall builds a hall from quest definitions in catalog order. Each
// quest gets its own runtime story line. The first story quest is
// unlocked unconditionally.
func NewHall(defs []types.Quest) *Hall {
	h := &Hall{}
	firstStory := true
	for _, def := range defs {
		q := def
		if def.Story != nil {
			story := *def.Story
			story.CurrentStep = 0
			story.Completed = false
			if firstStory {
				story.Locked = false
				firstStory = false
			}
			q.Story = &story
		}
		h.quests = append(h.quests, &q)
	}
	return h
}

// Quests returns every quest still in the hall, locked or not.
func (h *Hall) Quests() []*types.Quest {
	return h.quests
}

// Available returns the quests the player may accept, combat quests first
// then story quests, each in catalog order.
func (h *Hall) Available() []*types.Quest {
	var combat, story []*types.Quest
	for _, q := range h.quests {
		switch q.Kind {
		case types.QuestCombat:
			combat = append(combat, q)
		case types.QuestStory:
			if !q.Story.Locked {
				story = append(story, q)
			}
		}
	}
	return append(combat, story...)
}

// Find returns the quest with the given ID, or nil.
func (h *Hall) Find(id string) *types.Quest {
	for _, q := range h.quests {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Accept makes a quest the player's single active quest.
func (h *Hall) Accept(p *types.Player, id string) (*types.Quest, error) {
	q := h.Find(id)
	if q == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuest, id)
	}
	if IsLocked(q) {
		return nil, fmt.Errorf("%w: %q", ErrLocked, id)
	}
	if p.ActiveQuest != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuestActive, p.ActiveQuest.Description)
	}
	p.ActiveQuest = q
	p.QuestProgress = 0
	return q, nil
}

// Abandon drops the player's active quest. The quest stays in the hall
// and a story quest keeps the steps already completed.
func (h *Hall) Abandon(p *types.Player) (*types.Quest, error) {
	q := p.ActiveQuest
	if q == nil {
		return nil, ErrNoQuest
	}
	p.ActiveQuest = nil
	p.QuestProgress = 0
	return q, nil
}

// Remove takes a quest out of the hall. Returns false if it was not there.
func (h *Hall) Remove(id string) bool {
	for i, q := range h.quests {
		if q.ID == id {
			h.quests = append(h.quests[:i], h.quests[i+1:]...)
			return true
		}
	}
	return false
}

// Unlock clears a story quest's lock. Returns the quest and whether the
// lock actually changed.
func (h *Hall) Unlock(id string) (*types.Quest, bool) {
	q := h.Find(id)
	if q == nil || q.Story == nil || !q.Story.Locked {
		return q, false
	}
	q.Story.Locked = false
	return q, true
}

// IsLocked reports whether a quest cannot be accepted yet.
func IsLocked(q *types.Quest) bool {
	return q.Kind == types.QuestStory && q.Story != nil && q.Story.Locked
}
