package models

import "strings"

// Starting values for a new adventurer.
const (
	DefaultMaxHealth = 100
	DefaultAttack    = 10
	DefaultDefense   = 5
	DefaultGold      = 50
)

// DefaultInventory is what every adventurer starts with.
var DefaultInventory = []string{"rusty sword", "wooden shield"}

// PlayerState holds the bounded counters the narrator can change.
type PlayerState struct {
	Health    int      `yaml:"health"`
	MaxHealth int      `yaml:"max_health"`
	Attack    int      `yaml:"attack"`
	Defense   int      `yaml:"defense"`
	Gold      int      `yaml:"gold"`
	Inventory []string `yaml:"inventory"` // append-only
}

// NewPlayerState returns a full-health adventurer with the default kit.
func NewPlayerState() *PlayerState {
	return &PlayerState{
		Health:    DefaultMaxHealth,
		MaxHealth: DefaultMaxHealth,
		Attack:    DefaultAttack,
		Defense:   DefaultDefense,
		Gold:      DefaultGold,
		Inventory: append([]string(nil), DefaultInventory...),
	}
}

// InventoryList joins the inventory for display and prompts.
func (p *PlayerState) InventoryList() string {
	return strings.Join(p.Inventory, ", ")
}

// Clone returns a deep copy.
func (p *PlayerState) Clone() *PlayerState {
	c := *p
	c.Inventory = append([]string(nil), p.Inventory...)
	return &c
}

// Role tags who authored a turn, using the wire values of the messages API.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged block of the conversation with the narrator.
type Turn struct {
	Role    Role   `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}
