package orchestrator

import (
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/creator-ratecard/internal/session"
)

// Entry связывает гейт сессии и машину анализа одной пользовательской ленты.
type Entry struct {
	Gate         *session.Gate
	Orchestrator *Orchestrator
}

// Registry выдает Entry по идентификатору ленты, создавая его лениво.
// На одну ленту — ровно одна машина и один гейт.
type Registry struct {
	gateway Gateway
	log     *slog.Logger

	mu      sync.Mutex
	entries map[string]*Entry
}

// NewRegistry создает пустой реестр лент.
func NewRegistry(gateway Gateway, log *slog.Logger) *Registry {
	return &Registry{
		gateway: gateway,
		log:     log,
		entries: make(map[string]*Entry),
	}
}

// GetOrCreate возвращает Entry ленты, создавая его при первом обращении.
func (r *Registry) GetOrCreate(timelineID string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[timelineID]; ok {
		return entry
	}

	gate := session.NewGate()
	entry := &Entry{
		Gate:         gate,
		Orchestrator: New(r.gateway, gate, r.log),
	}
	r.entries[timelineID] = entry
	return entry
}

// Get возвращает Entry ленты, если лента уже известна.
func (r *Registry) Get(timelineID string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[timelineID]
	return entry, ok
}
