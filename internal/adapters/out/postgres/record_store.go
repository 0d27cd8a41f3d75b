package postgres

import (
	"context"
	"errors"
	"time"

	"pos/internal/core/ports"
	"pos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordDTO is one named record. The value is the JSON document written by
// the records repositories.
type RecordDTO struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming.
func (RecordDTO) TableName() string {
	return "records"
}

// GormRecordStore reads and writes records through a GORM handle, which may
// be a transaction. Inside a transaction reads lock the row until commit, so
// two units of work cannot interleave read-modify-write on the same record.
type GormRecordStore struct {
	db        *gorm.DB
	forUpdate bool
}

var _ ports.RecordStore = (*GormRecordStore)(nil)

func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

func (s *GormRecordStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	q := s.db.WithContext(ctx)
	if s.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto RecordDTO
	if err := q.First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, errs.NewPersistenceFailureError("select record "+key, err)
	}
	return []byte(dto.Value), true, nil
}

// Set upserts the record.
func (s *GormRecordStore) Set(ctx context.Context, key string, value []byte) error {
	dto := RecordDTO{Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceFailureError("upsert record "+key, err)
	}
	return nil
}

func (s *GormRecordStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&RecordDTO{}, "key = ?", key).Error; err != nil {
		return errs.NewPersistenceFailureError("delete record "+key, err)
	}
	return nil
}

// Migrate creates the records table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RecordDTO{})
}
