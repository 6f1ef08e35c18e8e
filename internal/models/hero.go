package models

import (
	"strings"

	"gorm.io/datatypes"
)

// Hero is a named character with a list of abilities and a place of origin.
type Hero struct {
	BaseModel

	Name      string                      `gorm:"type:varchar(120);not null" json:"name"`
	Abilities datatypes.JSONSlice[string] `gorm:"not null" json:"abilities"`
	Origin    string                      `gorm:"type:varchar(120);not null" json:"origin"`
}

// TableName pins the table name regardless of naming strategy.
func (Hero) TableName() string {
	return "heroes"
}

// Normalise trims surrounding whitespace from every text field.
func (h *Hero) Normalise() {
	h.Name = strings.TrimSpace(h.Name)
	h.Origin = strings.TrimSpace(h.Origin)
	h.Abilities = NormaliseAbilities(h.Abilities)
}

// NormaliseAbilities trims each ability while keeping order and duplicates. A nil input
// yields an empty, non-nil slice so the column never stores JSON null.
func NormaliseAbilities(abilities []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(abilities))
	for _, ability := range abilities {
		out = append(out, strings.TrimSpace(ability))
	}
	return out
}
