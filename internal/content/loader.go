package content

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/meur/harborline/internal/models"
	"github.com/meur/harborline/internal/storage"
)

// ErrSuperseded is returned by Load when a later load was applied first.
var ErrSuperseded = errors.New("content: load superseded by a newer load")

// View is a consistent snapshot of the content collections and the derived selection.
type View struct {
	GameModes          []models.GameMode   `json:"game_modes"`
	Rules              []models.ServerRule `json:"rules"`
	SocialLinks        []models.SocialLink `json:"social_links"`
	SelectedGameModeID string              `json:"selected_game_mode_id"`
	FilteredRules      []models.ServerRule `json:"filtered_rules"`
	Loaded             bool                `json:"loaded"`
	LoadedAt           time.Time           `json:"loaded_at,omitzero"`
}

// WithSelection returns a copy of the view with gameModeID selected.
func (v View) WithSelection(gameModeID string) View {
	out := v.clone()
	out.SelectedGameModeID = gameModeID
	out.FilteredRules = FilterRules(v.Rules, gameModeID)
	return out
}

func (v View) clone() View {
	out := v
	out.GameModes = cloneSlice(v.GameModes)
	out.Rules = cloneRules(v.Rules)
	out.SocialLinks = cloneSlice(v.SocialLinks)
	out.FilteredRules = cloneRules(v.FilteredRules)
	return out
}

// Loader fetches the read-only content collections and keeps the latest snapshot.
type Loader struct {
	client *storage.Client
	logger *zap.Logger
	now    func() time.Time

	seq atomic.Uint64

	mu       sync.RWMutex
	applied  uint64
	modes    []models.GameMode
	social   []models.SocialLink
	selector *Selector
	loadedAt time.Time
}

// NewLoader creates a Loader reading through client
func NewLoader(client *storage.Client, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		client:   client,
		logger:   logger.Named("content"),
		now:      time.Now,
		modes:    []models.GameMode{},
		social:   []models.SocialLink{},
		selector: NewSelector(nil, ""),
	}
}

type fetched struct {
	modes  []models.GameMode
	rules  []models.ServerRule
	social []models.SocialLink
}

// Load reads all three collections concurrently and, if every read succeeds,
// replaces the snapshot and resets the selection to the first game mode.
// On failure the previous snapshot is kept and the error is logged and returned.
func (l *Loader) Load(ctx context.Context) error {
	seq := l.seq.Add(1)

	data, err := l.fetch(ctx)
	if err != nil {
		l.logger.Warn("failed to load content", zap.Uint64("seq", seq), zap.Error(err))
		return err
	}

	modes := SortGameModes(data.modes)
	rules := ActiveRules(data.rules)
	social := SortSocialLinks(data.social)

	selected := ""
	if len(modes) > 0 {
		selected = modes[0].ID
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq < l.applied {
		l.logger.Debug("discarding stale content load", zap.Uint64("seq", seq), zap.Uint64("applied", l.applied))
		return ErrSuperseded
	}
	l.applied = seq
	l.modes = modes
	l.social = social
	l.selector.SetRules(rules)
	l.selector.Select(selected)
	l.loadedAt = l.now()

	l.logger.Info("content loaded",
		zap.Int("game_modes", len(modes)),
		zap.Int("active_rules", len(rules)),
		zap.Int("social_links", len(social)),
		zap.String("selected_game_mode", selected),
	)
	return nil
}

func (l *Loader) fetch(ctx context.Context) (fetched, error) {
	var data fetched
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := storage.ListRecords[models.GameMode](gctx, l.client, models.CollectionGameModes)
		data.modes = page.Items
		return err
	})
	g.Go(func() error {
		page, err := storage.ListRecords[models.ServerRule](gctx, l.client, models.CollectionServerRules)
		data.rules = page.Items
		return err
	})
	g.Go(func() error {
		page, err := storage.ListRecords[models.SocialLink](gctx, l.client, models.CollectionSocialLinks)
		data.social = page.Items
		return err
	})

	if err := g.Wait(); err != nil {
		return fetched{}, err
	}
	return data, nil
}

// Run loads the content every interval until ctx is done. Failures are logged
// by Load and do not stop the loop.
func (l *Loader) Run(ctx context.Context, interval, timeout time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			loadCtx, cancel := context.WithTimeout(ctx, timeout)
			_ = l.Load(loadCtx)
			cancel()
		}
	}
}

// Select changes the selected game mode and returns the resulting view.
func (l *Loader) Select(gameModeID string) View {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selector.Select(gameModeID)
	return l.viewLocked()
}

// View returns a copy of the current snapshot.
func (l *Loader) View() View {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.viewLocked()
}

func (l *Loader) viewLocked() View {
	return View{
		GameModes:          cloneSlice(l.modes),
		Rules:              l.selector.Rules(),
		SocialLinks:        cloneSlice(l.social),
		SelectedGameModeID: l.selector.Selected(),
		FilteredRules:      l.selector.FilteredRules(),
		Loaded:             l.applied > 0,
		LoadedAt:           l.loadedAt,
	}
}

// Loaded reports whether at least one load has been applied.
func (l *Loader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.applied > 0
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}
