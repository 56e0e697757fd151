package cards

import (
	"time"

	"pocket-cards/core/reconcile"
)

// TableName is the table holding persisted card records.
const TableName = "cards"

// CardRow is one persisted card. A card is identified by its language, set
// and local number; saving a later run over it updates the row in place.
type CardRow struct {
	ID          uint      `gorm:"primaryKey;column:id"`
	Language    string    `gorm:"column:language;type:varchar(8);not null;uniqueIndex:idx_cards_identity,priority:1"`
	SetCode     string    `gorm:"column:set_code;type:varchar(16);not null;uniqueIndex:idx_cards_identity,priority:2"`
	LocalNumber int       `gorm:"column:id_set;not null;uniqueIndex:idx_cards_identity,priority:3"`
	GlobalID    int       `gorm:"column:global_id;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(255)"`
	ImageURL    string    `gorm:"column:image;type:varchar(512)"`
	Rarity      string    `gorm:"column:rarity;type:varchar(32)"`
	SetDetails  string    `gorm:"column:set_details;type:varchar(255)"`
	Pack        string    `gorm:"column:set_subpack;type:varchar(128)"`
	CanonicalID string    `gorm:"column:id_ingame;type:varchar(64);index"`
	Eligible    bool      `gorm:"column:wp_gp_eligible"`
	RunID       string    `gorm:"column:run_id;type:varchar(36)"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName implements gorm's tabler interface.
func (CardRow) TableName() string {
	return TableName
}

// RowFromRecord converts a reconciled record into a row tagged with runID.
func RowFromRecord(rec reconcile.CardRecord, runID string) CardRow {
	return CardRow{
		Language:    rec.Language,
		SetCode:     rec.SetCode,
		LocalNumber: rec.LocalCardNumber,
		GlobalID:    rec.GlobalSequenceID,
		Name:        rec.Name,
		ImageURL:    rec.ImageURL,
		Rarity:      rec.RaritySymbol,
		SetDetails:  rec.SetDetails,
		Pack:        rec.PackAssignment,
		CanonicalID: rec.CanonicalID,
		Eligible:    rec.Eligible,
		RunID:       runID,
	}
}

// Record converts the row back into a reconciled record.
func (r CardRow) Record() reconcile.CardRecord {
	return reconcile.CardRecord{
		GlobalSequenceID: r.GlobalID,
		LocalCardNumber:  r.LocalNumber,
		Name:             r.Name,
		ImageURL:         r.ImageURL,
		RaritySymbol:     r.Rarity,
		SetDetails:       r.SetDetails,
		SetCode:          r.SetCode,
		PackAssignment:   r.Pack,
		CanonicalID:      r.CanonicalID,
		Eligible:         r.Eligible,
		Language:         r.Language,
	}
}
