package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tippi-fifestarr/scoundrel/internal/game/domain"
	"github.com/tippi-fifestarr/scoundrel/internal/game/events"
	"github.com/tippi-fifestarr/scoundrel/internal/game/rules"
	"github.com/tippi-fifestarr/scoundrel/internal/game/session"
)

// gameLoop drives one interactive playthrough: it renders state from bus
// events and translates terminal input into session operations.
type gameLoop struct {
	sess    *session.Session
	bus     *events.Bus
	scanner *bufio.Scanner
	out     io.Writer
}

func newGameLoop(sess *session.Session, bus *events.Bus, in io.Reader, out io.Writer) *gameLoop {
	return &gameLoop{
		sess:    sess,
		bus:     bus,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (l *gameLoop) run(ctx context.Context) error {
	fmt.Fprintln(l.out, "Scoundrel Card Game")
	fmt.Fprintln(l.out, "===================")

	l.bus.Subscribe(events.KindStateChanged, func(evt events.Event) error {
		changed, ok := evt.(events.StateChanged)
		if ok {
			l.display(changed.State)
		}
		return nil
	})
	l.bus.Subscribe(events.KindGameOver, func(evt events.Event) error {
		over, ok := evt.(events.GameOver)
		if !ok {
			return nil
		}
		if over.Won {
			fmt.Fprintln(l.out, "Congratulations! You won!")
		} else {
			fmt.Fprintln(l.out, "Game over! You lost.")
		}
		return nil
	})

	if err := l.sess.Start(ctx); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		state := l.sess.State()
		if state.Phase.Terminal() {
			return nil
		}

		action, ok := l.promptAction(state)
		if !ok {
			return nil
		}

		switch action {
		case "q":
			fmt.Fprintln(l.out, "Quitting game...")
			return nil
		case "s":
			if err := l.sess.Skip(ctx); err != nil {
				fmt.Fprintf(l.out, "Error skipping room: %s\n", err)
			}
		default:
			l.playCard(ctx, state, action)
		}
	}
}

func (l *gameLoop) promptAction(state domain.Snapshot) (string, bool) {
	fmt.Fprintln(l.out, "\nActions:")
	for i, card := range state.Room.Cards {
		fmt.Fprintf(l.out, "[%d] Play card %s\n", i, card)
	}
	if rules.CanSkipRoom(state.Deck, state.Room, state.Phase) {
		fmt.Fprintln(l.out, "[s] Skip this room")
	}
	fmt.Fprintln(l.out, "[q] Quit game")
	fmt.Fprint(l.out, "\nEnter your choice: ")

	if !l.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(l.scanner.Text()), true
}

func (l *gameLoop) playCard(ctx context.Context, state domain.Snapshot, action string) {
	index, err := strconv.Atoi(action)
	if err != nil {
		fmt.Fprintln(l.out, "Invalid action! Please try again.")
		return
	}
	if index < 0 || index >= len(state.Room.Cards) {
		fmt.Fprintln(l.out, "Invalid card index! Please try again.")
		return
	}

	card := state.Room.Cards[index]
	useWeapon := true

	if card.Kind == domain.KindMonster && state.Player.EquippedWeapon != nil {
		weapon := state.Player.EquippedWeapon
		preview := rules.PreviewDamage(state.Player, card)

		if rules.CanUseWeaponAgainst(state.Player, card) {
			fmt.Fprintf(l.out, "\nYou're facing a monster with value %d. You have a weapon with value %d.\n", card.Value, weapon.Value)
			fmt.Fprintf(l.out, "Using your weapon would result in %d damage.\n", preview.WithWeapon)
			fmt.Fprintf(l.out, "Fighting barehanded would result in %d damage.\n", preview.Barehanded)
			fmt.Fprint(l.out, "Do you want to use your weapon? (y/n): ")

			if !l.scanner.Scan() {
				return
			}
			answer := strings.ToLower(strings.TrimSpace(l.scanner.Text()))
			useWeapon = answer == "y" || answer == "yes"
		} else {
			fmt.Fprintf(l.out, "\nYour weapon (%s) can't be used against this monster because it's stronger than the last monster you defeated.\n", weapon)
			fmt.Fprintf(l.out, "You'll take full damage of %d from this monster.\n", preview.Barehanded)
			useWeapon = false
		}
	}

	if err := l.sess.PlayCard(ctx, index, useWeapon); err != nil {
		fmt.Fprintf(l.out, "Error playing card: %s\n", err)
	}
}

func (l *gameLoop) display(state domain.Snapshot) {
	fmt.Fprintln(l.out, "\n--------------------------------------------------")
	fmt.Fprintf(l.out, "Health: %d/%d\n", state.Player.Health, state.Player.MaxHealth)

	if weapon := state.Player.EquippedWeapon; weapon != nil {
		fmt.Fprintf(l.out, "Equipped Weapon: %s (Value: %d)\n", weapon, weapon.Value)
		if len(state.Player.DefeatedMonsters) > 0 {
			fmt.Fprint(l.out, "Defeated monsters: ")
			for i, monster := range state.Player.DefeatedMonsters {
				if i > 0 {
					fmt.Fprint(l.out, ", ")
				}
				fmt.Fprint(l.out, monster)
			}
			fmt.Fprintln(l.out)
		}
	} else {
		fmt.Fprintln(l.out, "No weapon equipped")
	}

	if state.Player.UsedPotionThisRoom {
		fmt.Fprintln(l.out, "Potion already used in this room (only one effective potion per room)")
	}

	if len(state.Room.Cards) > 0 {
		fmt.Fprintln(l.out, "\nCurrent Room:")
		for i, card := range state.Room.Cards {
			fmt.Fprintf(l.out, "[%d] %s ", i, card)
			switch card.Kind {
			case domain.KindMonster:
				fmt.Fprintf(l.out, "(Monster, Damage: %d)", card.Value)
			case domain.KindWeapon:
				fmt.Fprintf(l.out, "(Weapon, Value: %d)", card.Value)
			case domain.KindPotion:
				fmt.Fprintf(l.out, "(Potion, Heal: %d)", card.Value)
			}
			fmt.Fprintln(l.out)
		}
	}

	fmt.Fprintf(l.out, "\nCards remaining in dungeon: %d\n", state.Deck.Remaining)
	if state.Deck.PreviousRoomSkipped {
		fmt.Fprintln(l.out, "You skipped the previous room, you cannot skip this one.")
	}
	fmt.Fprintln(l.out, "--------------------------------------------------")
}
