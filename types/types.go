// Package types defines the shared data structures for the questline engine.
// It holds plain data only; behaviour lives in the engine packages.
package types

// Intent is the parsed representation of a player command.
type Intent struct {
	Verb   string
	Object string // optional
}

// Event is emitted after a state change so shells can trace what happened.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}

// EffectType identifies a single atomic world mutation.
type EffectType string

const (
	EffectSay         EffectType = "say"
	EffectReveal      EffectType = "reveal"
	EffectUnlockArea  EffectType = "unlock_area"
	EffectGiveItem    EffectType = "give_item"
	EffectGold        EffectType = "gold"
	EffectXP          EffectType = "xp"
	EffectRemoveNPCs  EffectType = "remove_npcs"
	EffectRemoveQuest EffectType = "remove_quest"
	EffectUnlockQuest EffectType = "unlock_quest"
)

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type     EffectType
	Text     string // say, reveal
	Area     string // unlock_area
	Item     string // give_item
	Quest    string // remove_npcs, remove_quest, unlock_quest
	Location string // remove_npcs
	Amount   int    // gold, xp
}

// ItemKind is the closed set of item variants.
type ItemKind string

const (
	ItemWeapon ItemKind = "weapon"
	ItemArmour ItemKind = "armour"
	ItemPotion ItemKind = "potion"
	ItemMisc   ItemKind = "misc"
)

// PotionEffect names what a potion does when used.
type PotionEffect string

const (
	PotionHeal          PotionEffect = "heal"
	PotionStrengthBoost PotionEffect = "strength_boost"
)

// Item is a canonical, shared item definition. Never mutated after loading.
type Item struct {
	Key         string
	Name        string
	Description string
	Kind        ItemKind
	Value       int          // attack/defence bonus, heal amount or boost magnitude
	Effect      PotionEffect // potions only
	Duration    int          // turns, for lasting potion effects
	Tag         string       // misc items, e.g. "story_item"
}

// InventorySlot is a stack of one item in the player's inventory.
type InventorySlot struct {
	Item     *Item
	Quantity int
}

// ActiveEffect is a temporary modifier on the player.
type ActiveEffect struct {
	Value    int
	Duration int
}

// Player holds the player's runtime state.
type Player struct {
	Name        string
	Gold        int
	Level       int
	XP          int
	MaxHealth   int
	Health      int
	BaseAttack  int
	Attack      int // effective attack, recomputed before every strike
	BaseDefence int
	Defence     int // consumable per battle, reset by StartBattle

	Inventory map[string]*InventorySlot
	Effects   map[PotionEffect]*ActiveEffect
	Weapon    *Item
	Armour    *Item

	ActiveQuest     *Quest
	QuestProgress   int
	CompletedQuests []string
}

// PlayerDef holds the starting stats declared by the game content.
type PlayerDef struct {
	Name    string
	Gold    int
	Health  int
	Attack  int
	Defence int
	Items   []string
}

// CreatureTemplate is the static definition a creature is spawned from.
type CreatureTemplate struct {
	Key       string
	Name      string
	Type      string // category tag, e.g. "Undead"
	HealthMin int
	HealthMax int
	Attack    int
	XPDrop    int
	GoldDrop  int
	Loot      []string
}

// Creature is a live creature instance. It exists for one encounter only.
type Creature struct {
	Key       string
	Name      string
	Type      string
	MaxHealth int
	Health    int
	Attack    int
	XPDrop    int
	GoldDrop  int
	Loot      []string
}

// Reward is a bundle granted by a quest.
type Reward struct {
	XP    int
	Gold  int
	Items []string
}

// QuestKind is the closed set of quest variants.
type QuestKind string

const (
	QuestCombat QuestKind = "combat"
	QuestStory  QuestKind = "story"
)

// TriggerType names what kind of player activity advances a story step.
type TriggerType string

const (
	TriggerInteraction TriggerType = "interaction"
	TriggerExploration TriggerType = "exploration"
)

// CombatGoal is the kill objective of a combat quest.
type CombatGoal struct {
	Target        string // creature key, type tag, or "any"
	Count         int
	MinDifficulty int
}

// Step is one stage of a story quest.
type Step struct {
	Type        TriggerType
	Trigger     map[string]string // e.g. {"npc": "villager"} or {"area": "forest"}
	Description string
	Dialogue    string
	StoryText   string
	StoryItem   string
	RewardItem  string
	UnlockArea  string
}

// StoryLine is the mutable progression of a story quest.
type StoryLine struct {
	Steps          []Step
	CurrentStep    int
	Locked         bool
	Completed      bool
	LinkedLocation string
	UnlockQuest    string
}

// Quest is either a combat quest or a story quest, selected by Kind.
type Quest struct {
	ID          string
	Description string
	Area        string
	Reward      Reward
	Kind        QuestKind
	Combat      *CombatGoal // set when Kind == QuestCombat
	Story       *StoryLine  // set when Kind == QuestStory
}

// AreaDef is the static definition of an explorable area.
type AreaDef struct {
	Key               string
	Name              string
	Difficulty        int
	CreatureTypes     []string
	MaxCreatures      int
	Boss              string
	TreasureChance    float64
	TreasureQualities []int
	Events            []string
	Locked            bool
}

// Area is the runtime state of an explorable area.
type Area struct {
	Def        *AreaDef
	Locked     bool
	BossActive bool
	Creatures  []*Creature
}

// ShopEntry is one item a shop stocks.
type ShopEntry struct {
	Category string // "weapons", "armours", "potions"
	Item     string
	Price    int
}

// ShopDef is the static definition of a shop.
type ShopDef struct {
	Key      string
	Name     string
	Location string
	Stock    []ShopEntry
}

// NPC is a character the player can talk to in a location.
type NPC struct {
	Key        string
	Name       string
	Dialogue   []string
	Trigger    string
	Interacted bool
}

// Location is a hub the player stands in between explorations.
type Location struct {
	Key         string
	Name        string
	Description string
	NPCs        []*NPC
}

// ActionKind is the closed set of things a menu choice can do.
type ActionKind string

const (
	ActionGo      ActionKind = "go"
	ActionMenu    ActionKind = "menu"
	ActionExplore ActionKind = "explore"
	ActionTalk    ActionKind = "talk"
	ActionAccept  ActionKind = "accept"
)

// Action is a menu choice as a plain value, interpreted by the engine.
type Action struct {
	Kind   ActionKind
	Target string
	Label  string
}

// CombatActionKind is the closed set of combat turn choices.
type CombatActionKind string

const (
	CombatAttack     CombatActionKind = "attack"
	CombatUseItem    CombatActionKind = "use"
	CombatCheckQuest CombatActionKind = "quest"
	CombatFlee       CombatActionKind = "flee"
)

// CombatAction is the player's choice for one combat turn.
type CombatAction struct {
	Kind CombatActionKind
	Item string // for CombatUseItem
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting location key
	Intro   string
	Player  PlayerDef
}
