package tenant

import (
	"context"
	"errors"
	"fmt"

	"object-gateway/core/database"
	"object-gateway/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TableName is the table holding tenant storage credentials.
const TableName = "storage_tenants"

// Record maps one row of the tenant table.
type Record struct {
	ID        uint   `gorm:"column:id;primaryKey"`
	Tenant    string `gorm:"column:tenant;size:64;uniqueIndex"`
	Backend   string `gorm:"column:backend;size:16"`
	URL       string `gorm:"column:url;size:255"`
	UserName  string `gorm:"column:user_name;size:128"`
	Password  string `gorm:"column:password;size:255"`
	Namespace string `gorm:"column:namespace;size:128"`
	Region    string `gorm:"column:region;size:32"`
	Enabled   bool   `gorm:"column:enabled"`
}

// TableName implements gorm's tabler interface.
func (Record) TableName() string {
	return TableName
}

// Entry converts the row into a validated tenant entry.
func (r Record) Entry() (Entry, error) {
	kind, err := storage.ParseKind(r.Backend)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{
		Backend: kind,
		Config: storage.Config{
			Tenant:    r.Tenant,
			URL:       r.URL,
			UserName:  r.UserName,
			Password:  r.Password,
			Namespace: r.Namespace,
			Region:    r.Region,
		},
	}
	return e, e.Validate()
}

// DBSource reads tenants from the database on every lookup.
type DBSource struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBSource verifies the tenant table schema before returning a source.
func NewDBSource(db *gorm.DB, logger *zap.Logger) (*DBSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := database.RequireColumns(db, TableName, "tenant", "backend", "url", "user_name", "password", "namespace", "region", "enabled"); err != nil {
		return nil, err
	}
	return &DBSource{db: db, logger: logger}, nil
}

func (s *DBSource) Lookup(ctx context.Context, tenantID string) (Entry, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("tenant = ? AND enabled = ?", tenantID, true).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, tenantID)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("lookup tenant %s: %w", tenantID, err)
	}
	return rec.Entry()
}

// List returns every enabled tenant; rows that fail validation are skipped and logged.
func (s *DBSource) List(ctx context.Context) ([]Entry, error) {
	var recs []Record
	if err := s.db.WithContext(ctx).Where("enabled = ?", true).Order("tenant").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		e, err := rec.Entry()
		if err != nil {
			s.logger.Warn("Skipping invalid tenant row", zap.String("tenant", rec.Tenant), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
