// Package model defines the persisted entities of the bot.
package model

import "fmt"

// User is one Telegram identity observed by the bot. A record is created on
// the first update from that identity and its name fields are refreshed on
// every later update; records are never deleted.
type User struct {
	ID              int64  `db:"id"`
	TgID            int64  `db:"tg_id"`
	Username        string `db:"username"`
	FullName        string `db:"full_name"`
	FirstSeen       int64  `db:"first_seen"`
	StructuresCount int64  `db:"structures_count"`
}

// maxLabelNameLen bounds the full name portion of anonymized labels.
const maxLabelNameLen = 20

// DisplayLabel returns the public handle, or an anonymized label built from
// the last four digits of the Telegram id when the user has no username.
func (u User) DisplayLabel() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	name := u.FullName
	if r := []rune(name); len(r) > maxLabelNameLen {
		name = string(r[:maxLabelNameLen])
	}
	id := fmt.Sprintf("%d", u.TgID)
	if len(id) > 4 {
		id = id[len(id)-4:]
	}
	if name == "" {
		return "U" + id
	}
	return "U" + id + " " + name
}
