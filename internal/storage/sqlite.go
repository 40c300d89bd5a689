package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/rechnung-app/rechnung/internal/models"
)

// kvRecord is one persisted blob. The whole collection is the value; keys
// are the fixed storage keys above.
type kvRecord struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

func (kvRecord) TableName() string { return "kv_records" }

// SQLiteGateway persists the key-value blobs in a local sqlite database.
type SQLiteGateway struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite store at path, migrates the
// kv table, and applies the schema-version check: on mismatch all data is
// wiped and the current version stamped.
func Open(path string) (*SQLiteGateway, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	g := &SQLiteGateway{db: db}
	if err := g.checkVersion(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *SQLiteGateway) checkVersion() error {
	v, ok, err := g.get(keyVersion)
	if err != nil {
		return err
	}
	if ok && v == dataVersion {
		return nil
	}
	if err := g.Clear(); err != nil {
		return err
	}
	return g.set(keyVersion, dataVersion)
}

func (g *SQLiteGateway) get(key string) (string, bool, error) {
	var rec kvRecord
	err := g.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (g *SQLiteGateway) set(key, value string) error {
	rec := kvRecord{Key: key, Value: value}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

func (g *SQLiteGateway) Settings() (models.BusinessSettings, error) {
	raw, ok, err := g.get(keySettings)
	if err != nil || !ok {
		return models.DefaultSettings(), err
	}
	// merge over defaults so fields added later keep their default values
	s := models.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

func (g *SQLiteGateway) SaveSettings(s models.BusinessSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return g.set(keySettings, string(raw))
}

func (g *SQLiteGateway) Invoices() ([]models.Invoice, error) {
	raw, ok, err := g.get(keyInvoices)
	if err != nil || !ok {
		return []models.Invoice{}, err
	}
	var invs []models.Invoice
	if err := json.Unmarshal([]byte(raw), &invs); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	return invs, nil
}

func (g *SQLiteGateway) SaveInvoices(invs []models.Invoice) error {
	if invs == nil {
		invs = []models.Invoice{}
	}
	raw, err := json.Marshal(invs)
	if err != nil {
		return err
	}
	return g.set(keyInvoices, string(raw))
}

func (g *SQLiteGateway) Clients() ([]models.Client, error) {
	raw, ok, err := g.get(keyClients)
	if err != nil || !ok {
		return []models.Client{}, err
	}
	var cs []models.Client
	if err := json.Unmarshal([]byte(raw), &cs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return cs, nil
}

func (g *SQLiteGateway) SaveClients(cs []models.Client) error {
	if cs == nil {
		cs = []models.Client{}
	}
	raw, err := json.Marshal(cs)
	if err != nil {
		return err
	}
	return g.set(keyClients, string(raw))
}

func (g *SQLiteGateway) Clear() error {
	return g.db.Where("key IN ?", []string{keySettings, keyInvoices, keyClients}).Delete(&kvRecord{}).Error
}
