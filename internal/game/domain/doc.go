// Package domain defines the card, player, room, deck, and snapshot types
// mirrored from the Scoundrel rules server. The client never derives these
// values itself; every snapshot is copied wholesale from the server.
package domain
