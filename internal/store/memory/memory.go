// Package memory implements the stores on mutex-guarded maps. It backs the
// development mode and the package tests; nothing survives a restart, which
// is acceptable for challenges (clients re-request) and for dev data.
package memory

import (
	"sync"

	"github.com/afritok/afritok/internal/models"
)

type Store struct {
	mu sync.Mutex

	challenges map[string]models.Challenge
	users      map[string]models.User // keyed by phone
	videos     map[string]models.Video
	comments   map[string]models.Comment
	likes      map[string]map[string]struct{} // videoID -> set of userIDs
	reports    map[string]models.Report
	shares     map[string]models.Share
	checkouts  map[string]models.CheckoutSession
	presets    []models.FilterPreset
}

func NewStore() *Store {
	return &Store{
		challenges: make(map[string]models.Challenge),
		users:      make(map[string]models.User),
		videos:     make(map[string]models.Video),
		comments:   make(map[string]models.Comment),
		likes:      make(map[string]map[string]struct{}),
		reports:    make(map[string]models.Report),
		shares:     make(map[string]models.Share),
		checkouts:  make(map[string]models.CheckoutSession),
		presets:    models.DefaultFilterPresets(),
	}
}
