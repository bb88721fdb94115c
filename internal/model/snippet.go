package model

// Snippet is a generated structure owned by exactly one user. The text is
// immutable once recorded; only the kept flag changes, and only from false
// to true when the owner confirms the save.
type Snippet struct {
	ID        int64  `db:"id"`
	UserTgID  int64  `db:"user_tg_id"`
	Text      string `db:"text"`
	CreatedAt int64  `db:"created_at"`
	Kept      bool   `db:"kept"`
}
