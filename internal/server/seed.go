package server

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Al-Faravi/Stock-Viewer/internal/models"
)

// SeedFromFile bulk-imports records from a JSON array file. Records whose
// key already exists are skipped, not overwritten. Returns how many were
// added.
func (s *Server) SeedFromFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var records []models.StockRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	added := 0
	for _, rec := range records {
		if err := rec.Key().Validate(); err != nil {
			s.Logger.Warn("seed_record_skipped", zap.Error(err))
			continue
		}
		if err := s.Repo.Insert(rec); err == nil {
			added++
		}
	}
	if added > 0 {
		s.Cache.Invalidate()
	}
	s.Logger.Info("seeded", zap.String("file", path), zap.Int("added", added), zap.Int("total", len(records)))
	return added, nil
}
