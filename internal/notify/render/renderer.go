// Package render produces localized announcement copy for realm events.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Each locale file registers copy for every key; missing
// locales fall back to English.
const (
	KeyMove          = "realm.move"
	KeyPvpWin        = "realm.pvp.win"
	KeyPvpLost       = "realm.pvp.lost"
	KeyPvpFled       = "realm.pvp.fled"
	KeyPveWin        = "realm.pve.win"
	KeyPveLost       = "realm.pve.lost"
	KeyPveFled       = "realm.pve.fled"
	KeySteal         = "realm.steal"
	KeyDrop          = "realm.drop"
	KeyTownItem      = "realm.town.item"
	KeyTownSell      = "realm.town.sell"
	KeyCamp          = "realm.camp"
	KeyGodsHades     = "realm.gods.hades"
	KeyGodsZeus      = "realm.gods.zeus"
	KeyGodsAseco     = "realm.gods.aseco"
	KeyGodsHermes    = "realm.gods.hermes"
	KeyGodsAthena    = "realm.gods.athena"
	KeyGodsEris      = "realm.gods.eris"
	KeyGold          = "realm.gold"
	KeyLuckSpell     = "realm.luck.spell"
	KeyLuckItem      = "realm.luck.item"
	KeyGambleWin     = "realm.gamble.win"
	KeyGambleLost    = "realm.gamble.lost"
	KeyBlizzardOn    = "realm.blizzard.on"
	KeyBlizzardOff   = "realm.blizzard.off"
	KeySnowflake     = "realm.snowflake"
	KeyLevelUp       = "realm.levelup"
	KeyDeath         = "realm.death"
	KeyInventoryFull = "realm.inventory.full"
)

// NewPrinter returns a printer for the requested locale, falling back to
// English when the tag does not parse or has no registered copy.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}
