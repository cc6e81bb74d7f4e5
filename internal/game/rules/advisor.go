package rules

import "github.com/tippi-fifestarr/scoundrel/internal/game/domain"

// CanSkipRoom reports whether the current room may be skipped: the previous
// room was not skipped, the room is untouched (all four cards present), and
// the session is not over.
func CanSkipRoom(deck domain.DeckState, room domain.RoomState, phase domain.Phase) bool {
	return !deck.PreviousRoomSkipped && len(room.Cards) == 4 && !phase.Terminal()
}

// CanUseWeaponAgainst reports whether the equipped weapon may be used against
// the given monster. A weapon that has defeated monsters can only face a
// monster no stronger than the last one it defeated.
func CanUseWeaponAgainst(player domain.PlayerState, monster domain.Card) bool {
	if player.EquippedWeapon == nil {
		return false
	}
	last, ok := player.LastDefeatedMonster()
	if !ok {
		return true
	}
	return monster.Value <= last.Value
}

// DamagePreview is the damage the player would take fighting a monster each
// way.
type DamagePreview struct {
	WithWeapon int
	Barehanded int
}

// PreviewDamage computes the damage for fighting the monster with the
// equipped weapon versus barehanded. WithWeapon is only meaningful when
// CanUseWeaponAgainst holds; with no weapon equipped it equals the monster's
// full value.
func PreviewDamage(player domain.PlayerState, monster domain.Card) DamagePreview {
	preview := DamagePreview{
		WithWeapon: monster.Value,
		Barehanded: monster.Value,
	}
	if player.EquippedWeapon != nil {
		damage := monster.Value - player.EquippedWeapon.Value
		if damage < 0 {
			damage = 0
		}
		preview.WithWeapon = damage
	}
	return preview
}
