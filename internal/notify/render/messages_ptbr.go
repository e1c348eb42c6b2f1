package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, KeyMove, "%s viaja para %s.")
	message.SetString(lang, KeyPvpWin, "%s derrota %s em combate singular!")
	message.SetString(lang, KeyPvpLost, "%s é derrotado por %s.")
	message.SetString(lang, KeyPvpFled, "%s e %s se enfrentam, mas %s foge do campo.")
	message.SetString(lang, KeyPveWin, "%s abate um %s e reivindica %d de ouro e %d de experiência.")
	message.SetString(lang, KeyPveLost, "Um %s deixa %s sangrando no chão.")
	message.SetString(lang, KeyPveFled, "%s se desvencilha de um %s e escapa.")
	message.SetString(lang, KeySteal, "%s arranca o item %s das mãos frias de %s.")
	message.SetString(lang, KeyDrop, "O %s deixa cair um %s; %s o recolhe.")
	message.SetString(lang, KeyTownItem, "%s pechincha por um %s no mercado.")
	message.SetString(lang, KeyTownSell, "%s vende seus espólios por %d de ouro.")
	message.SetString(lang, KeyCamp, "%s monta acampamento e recupera %d de vida.")
	message.SetString(lang, KeyGodsHades, "Hades cobra um pedágio de %d de ouro de %s.")
	message.SetString(lang, KeyGodsZeus, "Zeus arremessa um raio em %s causando %d de dano!")
	message.SetString(lang, KeyGodsAseco, "Aseco sorri para %s: %d de ouro aparece.")
	message.SetString(lang, KeyGodsHermes, "Hermes apressa os passos de %s.")
	message.SetString(lang, KeyGodsAthena, "Atena concede a %s %d de experiência.")
	message.SetString(lang, KeyGodsEris, "Éris amaldiçoa %s com o segredo de %s.")
	message.SetString(lang, KeyGold, "%s tropeça em uma bolsa com %d de ouro.")
	message.SetString(lang, KeyLuckSpell, "%s decifra o feitiço %s!")
	message.SetString(lang, KeyLuckItem, "%s encontra um %s meio enterrado na lama.")
	message.SetString(lang, KeyGambleWin, "%s aposta %d de ouro e dobra a quantia.")
	message.SetString(lang, KeyGambleLost, "%s aposta %d de ouro e perde cada moeda.")
	message.SetString(lang, KeyBlizzardOn, "Uma nevasca violenta varre o reino. Fique perto da lareira; Yetis poderosos rondam as estradas!")
	message.SetString(lang, KeyBlizzardOff, "A nevasca terminou. As estradas estão seguras de novo, embora florestas escuras nunca sejam realmente seguras.")
	message.SetString(lang, KeySnowflake, "%s captura um floco de neve perfeito. A sorte o favorece.")
	message.SetString(lang, KeyLevelUp, "%s alcança o nível %d!")
	message.SetString(lang, KeyDeath, "%s morreu para %s e desperta de volta em %s.")
	message.SetString(lang, KeyInventoryFull, "A mochila de %s está cheia; o item %s fica para trás.")
}
