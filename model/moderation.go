package model

// ModerationRecord marks a user as shadowbanned. Rows are written by
// the moderation routes and read by the shadowban cache.
type ModerationRecord struct {
	UserId       string `db:"user_id" json:"userId"`
	Shadowbanned bool   `db:"is_shadowbanned" json:"shadowbanned"`
}
