package services

import (
	"github.com/rechnung-app/rechnung/internal/models"
	"github.com/rechnung-app/rechnung/internal/storage"
)

// SettingsService owns the singleton settings record. The store does no
// business-rule validation; completeness checks (is the issuer address
// complete enough to invoice) belong to the caller before save/download.
type SettingsService struct {
	gw       storage.Gateway
	settings models.BusinessSettings
}

func NewSettingsService(gw storage.Gateway) *SettingsService {
	return &SettingsService{gw: gw, settings: models.DefaultSettings()}
}

func (s *SettingsService) Load() error {
	set, err := s.gw.Settings()
	if err != nil {
		return err
	}
	s.settings = set
	return nil
}

func (s *SettingsService) Get() models.BusinessSettings {
	return s.settings
}

// Update replaces the whole record.
func (s *SettingsService) Update(set models.BusinessSettings) error {
	if err := s.gw.SaveSettings(set); err != nil {
		return err
	}
	s.settings = set
	return nil
}

// Reset restores the built-in defaults.
func (s *SettingsService) Reset() error {
	def := models.DefaultSettings()
	if err := s.gw.SaveSettings(def); err != nil {
		return err
	}
	s.settings = def
	return nil
}
