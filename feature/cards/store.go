package cards

import (
	"context"
	"fmt"

	"pocket-cards/core/database"
	"pocket-cards/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const saveBatchSize = 200

// upsertColumns are refreshed when a saved card already exists.
var upsertColumns = []string{
	"global_id", "name", "image", "rarity", "set_details",
	"set_subpack", "id_ingame", "wp_gp_eligible", "run_id", "updated_at",
}

// SchemaReport is the result of comparing the live cards table with CardRow.
type SchemaReport struct {
	Table   string   `json:"table"`
	Driver  string   `json:"driver"`
	Missing []string `json:"missing"`
	OK      bool     `json:"ok"`
}

// Store persists card records with gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a store on an open connection.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the cards table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&CardRow{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return nil
}

// SaveRun upserts every record of a run and returns the run id stamped on the
// rows together with the number of rows written.
func (s *Store) SaveRun(ctx context.Context, result *reconcile.RunResult) (string, int, error) {
	runID := uuid.NewString()

	records := result.Records()
	rows := make([]CardRow, 0, len(records))
	for _, rec := range records {
		if rec.Language == "" {
			rec.Language = result.Language
		}
		rows = append(rows, RowFromRecord(rec, runID))
	}
	if len(rows) == 0 {
		return runID, 0, nil
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "language"}, {Name: "set_code"}, {Name: "id_set"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		CreateInBatches(&rows, saveBatchSize).Error
	if err != nil {
		return runID, 0, fmt.Errorf("failed to save run %s: %w", runID, err)
	}

	s.logger.Info("Run saved",
		zap.String("run_id", runID),
		zap.String("language", result.Language),
		zap.Int("rows", len(rows)),
	)
	return runID, len(rows), nil
}

// ListBySet returns the saved records of one set, ordered by local number.
func (s *Store) ListBySet(ctx context.Context, lang, set string) ([]reconcile.CardRecord, error) {
	var rows []CardRow
	err := s.db.WithContext(ctx).
		Where("language = ? AND set_code = ?", lang, set).
		Order("id_set").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s cards of %s: %w", lang, set, err)
	}

	records := make([]reconcile.CardRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	return records, nil
}

// Eligible returns the canonical ids of the eligible cards of a language,
// grouped by set code and ordered by global id.
func (s *Store) Eligible(ctx context.Context, lang string) (map[string][]string, error) {
	var rows []CardRow
	err := s.db.WithContext(ctx).
		Select("set_code", "id_ingame").
		Where("language = ? AND wp_gp_eligible = ? AND id_ingame <> ''", lang, true).
		Order("global_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible %s cards: %w", lang, err)
	}

	eligible := make(map[string][]string)
	for _, r := range rows {
		eligible[r.SetCode] = append(eligible[r.SetCode], r.CanonicalID)
	}
	return eligible, nil
}

// ExpectedColumns returns the column names CardRow maps to.
func (s *Store) ExpectedColumns() ([]string, error) {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(&CardRow{}); err != nil {
		return nil, fmt.Errorf("failed to parse card model: %w", err)
	}
	return stmt.Schema.DBNames, nil
}

// CheckSchema lists the CardRow columns missing from the live table.
func (s *Store) CheckSchema(ctx context.Context) (*SchemaReport, error) {
	expected, err := s.ExpectedColumns()
	if err != nil {
		return nil, err
	}

	missing, err := database.MissingColumns(s.db.WithContext(ctx), TableName, expected)
	if err != nil {
		return nil, err
	}

	return &SchemaReport{
		Table:   TableName,
		Driver:  s.db.Dialector.Name(),
		Missing: missing,
		OK:      len(missing) == 0,
	}, nil
}
