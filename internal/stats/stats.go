// Package stats reads stat directives such as [HEALTH: -15] out of narrator
// prose and applies them to a player.
package stats

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tatianab/text-dungeon/internal/models"
)

// Keywords are matched case-insensitively over ASCII only; (?i) would also
// accept Unicode folds such as the Kelvin sign for K.
var directivePattern = regexp.MustCompile(
	`\[([Hh][Ee][Aa][Ll][Tt][Hh]|[Gg][Oo][Ll][Dd]|[Aa][Tt][Tt][Aa][Cc][Kk]|[Dd][Ee][Ff][Ee][Nn][Ss][Ee]):\s*([+-]?\d+)\]`)

// Directives holds the requested delta per stat. A nil field means the
// narrator did not mention that stat, which is different from a delta of 0.
type Directives struct {
	Health  *int
	Gold    *int
	Attack  *int
	Defense *int
}

// Empty reports whether no directive was found.
func (d Directives) Empty() bool {
	return d.Health == nil && d.Gold == nil && d.Attack == nil && d.Defense == nil
}

// Field identifies one displayed stat.
type Field uint8

const (
	Health Field = 1 << iota
	Gold
	Attack
	Defense
)

// Fields is a set of stats touched by a directive.
type Fields uint8

// Has reports whether f is in the set.
func (fs Fields) Has(f Field) bool {
	return fs&Fields(f) != 0
}

func (fs Fields) String() string {
	var names []string
	for _, f := range []struct {
		field Field
		name  string
	}{{Health, "health"}, {Gold, "gold"}, {Attack, "attack"}, {Defense, "defense"}} {
		if fs.Has(f.field) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, ",")
}

// Extract scans text for directives. Only the first directive for each stat
// counts. Anything that does not match the exact bracket shape is ignored.
// Payloads beyond the int range saturate and still count as that stat's
// first directive.
func Extract(text string) Directives {
	var d Directives
	for _, m := range directivePattern.FindAllStringSubmatch(text, -1) {
		var slot **int
		switch strings.ToUpper(m[1]) {
		case "HEALTH":
			slot = &d.Health
		case "GOLD":
			slot = &d.Gold
		case "ATTACK":
			slot = &d.Attack
		case "DEFENSE":
			slot = &d.Defense
		default:
			continue
		}
		if *slot != nil {
			continue
		}
		delta, err := strconv.Atoi(m[2])
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		// On ErrRange Atoi has already saturated delta to the int bounds.
		*slot = &delta
	}
	return d
}

// Apply adds each present delta to p and returns the stats it addressed.
// Health stays within [0, MaxHealth] and gold never drops below zero.
// Attack and defense are deliberately left unbounded.
func Apply(p *models.PlayerState, d Directives) Fields {
	var changed Fields
	if d.Health != nil {
		p.Health = clamp(addSat(p.Health, *d.Health), 0, p.MaxHealth)
		changed |= Fields(Health)
	}
	if d.Gold != nil {
		p.Gold = max(0, addSat(p.Gold, *d.Gold))
		changed |= Fields(Gold)
	}
	if d.Attack != nil {
		p.Attack = addSat(p.Attack, *d.Attack)
		changed |= Fields(Attack)
	}
	if d.Defense != nil {
		p.Defense = addSat(p.Defense, *d.Defense)
		changed |= Fields(Defense)
	}
	return changed
}

// IsDefeated reports whether the player has run out of health.
func IsDefeated(p *models.PlayerState) bool {
	return p.Health == 0
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// addSat adds without wrapping past the int bounds.
func addSat(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
