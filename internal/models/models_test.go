package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHeroNormaliseTrimsFields(t *testing.T) {
	hero := Hero{
		Name:      "  Atom ",
		Abilities: []string{" shrink", "grow  ", "shrink"},
		Origin:    "Ivy Town\n",
	}

	hero.Normalise()

	require.Equal(t, "Atom", hero.Name)
	require.Equal(t, "Ivy Town", hero.Origin)
	require.Equal(t, []string{"shrink", "grow", "shrink"}, []string(hero.Abilities))
}

func TestNormaliseAbilitiesNeverNil(t *testing.T) {
	out := NormaliseAbilities(nil)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestHeroJSONShape(t *testing.T) {
	hero := Hero{
		BaseModel: BaseModel{ID: 1},
		Name:      "Atom",
		Abilities: []string{"shrink"},
		Origin:    "Ivy Town",
	}

	raw, err := json.Marshal(hero)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.EqualValues(t, 1, decoded["id"])
	require.Equal(t, "Atom", decoded["name"])
	require.Equal(t, "Ivy Town", decoded["origin"])
	require.Equal(t, []any{"shrink"}, decoded["abilities"])
}

func TestHeroTableName(t *testing.T) {
	require.Equal(t, "heroes", Hero{}.TableName())
}

func TestCacheEntryExpired(t *testing.T) {
	now := time.Now()

	require.False(t, CacheEntry{}.Expired(now))
	require.False(t, CacheEntry{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	require.True(t, CacheEntry{ExpiresAt: now.Add(-time.Minute)}.Expired(now))
}
