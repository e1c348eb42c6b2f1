package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, KeyMove, "%s travels to %s.")
	message.SetString(lang, KeyPvpWin, "%s defeats %s in single combat!")
	message.SetString(lang, KeyPvpLost, "%s is beaten down by %s.")
	message.SetString(lang, KeyPvpFled, "%s and %s clash, but %s flees the field.")
	message.SetString(lang, KeyPveWin, "%s slays a %s and claims %d gold and %d experience.")
	message.SetString(lang, KeyPveLost, "A %s leaves %s bleeding in the dirt.")
	message.SetString(lang, KeyPveFled, "%s breaks off from a %s and escapes.")
	message.SetString(lang, KeySteal, "%s pries the %s from %s's cold hands.")
	message.SetString(lang, KeyDrop, "The %s drops a %s; %s takes it.")
	message.SetString(lang, KeyTownItem, "%s haggles for a %s at the market.")
	message.SetString(lang, KeyTownSell, "%s sells their haul for %d gold.")
	message.SetString(lang, KeyCamp, "%s makes camp and recovers %d health.")
	message.SetString(lang, KeyGodsHades, "Hades claims a toll of %d gold from %s.")
	message.SetString(lang, KeyGodsZeus, "Zeus hurls a bolt at %s for %d damage!")
	message.SetString(lang, KeyGodsAseco, "Aseco smiles upon %s: %d gold appears.")
	message.SetString(lang, KeyGodsHermes, "Hermes quickens %s's stride.")
	message.SetString(lang, KeyGodsAthena, "Athena grants %s %d experience.")
	message.SetString(lang, KeyGodsEris, "Eris curses %s with the secret of %s.")
	message.SetString(lang, KeyGold, "%s stumbles onto a purse of %d gold.")
	message.SetString(lang, KeyLuckSpell, "%s deciphers the spell %s!")
	message.SetString(lang, KeyLuckItem, "%s finds a %s half-buried in the mud.")
	message.SetString(lang, KeyGambleWin, "%s wagers %d gold and doubles it.")
	message.SetString(lang, KeyGambleLost, "%s wagers %d gold and loses every coin.")
	message.SetString(lang, KeyBlizzardOn, "A violent snowstorm sweeps the realm. Stay near a fireplace; mighty Yetis stalk the roads!")
	message.SetString(lang, KeyBlizzardOff, "The blizzard has ended. The roads are safe again, though dark forests are never truly safe.")
	message.SetString(lang, KeySnowflake, "%s catches a perfect snowflake. Fortune favors them.")
	message.SetString(lang, KeyLevelUp, "%s reaches level %d!")
	message.SetString(lang, KeyDeath, "%s has died to %s and awakens back in %s.")
	message.SetString(lang, KeyInventoryFull, "%s's pack is full; the %s is left behind.")
}
