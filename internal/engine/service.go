package engine

import (
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

// Service wires the pure schedule/metric core to the sqlite repos. All
// derived values (streaks, proof score) are recomputed from committed ledger
// state, never from in-flight writes.
type Service struct {
	db          *sql.DB
	rituals     *storage.RitualRepo
	overrides   *storage.OverrideRepo
	completions *storage.CompletionRepo
	profiles    *storage.ProfileRepo
	resolver    *schedule.Resolver
	profileKey  string
	log         *zap.Logger
}

func NewService(db *sql.DB, profileKey string, log *zap.Logger) *Service {
	if profileKey == "" {
		profileKey = storage.MainProfileKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		db:          db,
		rituals:     storage.NewRitualRepo(db),
		overrides:   storage.NewOverrideRepo(db),
		completions: storage.NewCompletionRepo(db),
		profiles:    storage.NewProfileRepo(db),
		resolver:    schedule.NewResolver(log),
		profileKey:  profileKey,
		log:         log,
	}
}

func (s *Service) RitualRepo() *storage.RitualRepo         { return s.rituals }
func (s *Service) OverrideRepo() *storage.OverrideRepo     { return s.overrides }
func (s *Service) CompletionRepo() *storage.CompletionRepo { return s.completions }
func (s *Service) ProfileRepo() *storage.ProfileRepo       { return s.profiles }

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}
