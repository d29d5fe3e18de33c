package mysql

import (
	"context"

	"github.com/neighborly/neighborly-be/model"
	"github.com/upper/db/v4"
)

type ModerationDB struct {
	sess db.Session
}

func getModerationDB(sess db.Session) *ModerationDB {
	return &ModerationDB{sess}
}

func (mdb *ModerationDB) GetShadowbannedUserIds(ctx context.Context) ([]string, error) {
	var records []*model.ModerationRecord
	if err := mdb.sess.SQL().
		Select("user_id", "is_shadowbanned").
		From("user_moderation").
		Where("is_shadowbanned = ?", true).
		IteratorContext(ctx).
		All(&records); err != nil {
		return nil, err
	}
	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.UserId
	}
	return ids, nil
}

func (mdb *ModerationDB) SetShadowbanned(ctx context.Context, userId string, shadowbanned bool) error {
	_, err := mdb.sess.SQL().ExecContext(ctx, db.Raw(`
INSERT INTO user_moderation (user_id, is_shadowbanned)
	VALUES (?, ?)
	ON DUPLICATE KEY UPDATE is_shadowbanned = ?
`, userId, shadowbanned, shadowbanned))
	return err
}
