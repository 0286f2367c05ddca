package garden

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// Store is the single owner of the view State. Mutations are serialised;
// readers get copies.
type Store struct {
	mu      sync.RWMutex
	st      State
	confirm Confirmer

	// chiamata fuori dal lock quando cambia l'elenco dei giardini
	onGardens func([]entities.Garden)
	notifyMu  sync.Mutex
}

func NewStore(initial State, confirm Confirmer) *Store {
	if confirm == nil {
		confirm = ContextConfirmer
	}
	if initial.Plants == nil {
		initial.Plants = map[int][]entities.Plant{}
	}
	return &Store{st: initial.clone(), confirm: confirm}
}

// OnGardensChanged registers fn, called with the current gardens after every
// change to the garden list or a sensor config. Set it before serving; fn
// must not call back into the Store.
func (s *Store) OnGardensChanged(fn func([]entities.Garden)) {
	s.mu.Lock()
	s.onGardens = fn
	s.mu.Unlock()
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.clone()
}

func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.View()
}

func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.LoggedIn
}

func (s *Store) Gardens() []entities.Garden {
	return s.Snapshot().Gardens
}

func (s *Store) Garden(id int) (entities.Garden, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Garden(id)
}

func (s *Store) PlantsOf(gardenID int) ([]entities.Plant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.PlantsOf(gardenID)
}

// apply runs a transition under the write lock and commits it on success.
func (s *Store) apply(gardensChanged bool, fn func(State) (State, error)) error {
	s.mu.Lock()
	next, err := fn(s.st)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.st = next
	notify := s.onGardens
	var gardens []entities.Garden
	if gardensChanged {
		gardens = next.clone().Gardens
	}
	if !gardensChanged || notify == nil {
		s.mu.Unlock()
		return nil
	}
	// notifyMu preso prima di rilasciare mu: le notifiche seguono l'ordine dei commit
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()
	notify(gardens)
	return nil
}

func (s *Store) Login(username, password string) error {
	return s.apply(false, func(st State) (State, error) { return st.Login(username, password) })
}

func (s *Store) Logout() {
	_ = s.apply(false, func(st State) (State, error) { return st.Logout(), nil })
}

func (s *Store) SelectGarden(id int) error {
	return s.apply(false, func(st State) (State, error) { return st.SelectGarden(id) })
}

func (s *Store) SelectPlant(id int) error {
	return s.apply(false, func(st State) (State, error) { return st.SelectPlant(id) })
}

func (s *Store) GoBack() View {
	var v View
	_ = s.apply(false, func(st State) (State, error) {
		next := st.GoBack()
		v = next.View()
		return next, nil
	})
	return v
}

func (s *Store) AddGarden(name string) (entities.Garden, error) {
	var g entities.Garden
	err := s.apply(true, func(st State) (next State, err error) {
		next, g, err = st.AddGarden(name)
		return next, err
	})
	return g, err
}

func (s *Store) UpdateGarden(g entities.Garden) (entities.Garden, error) {
	var out entities.Garden
	err := s.apply(true, func(st State) (next State, err error) {
		next, out, err = st.UpdateGarden(g)
		return next, err
	})
	return out, err
}

func (s *Store) ConfigureSensor(id int, f entities.SensorConfigForm) (entities.Garden, error) {
	var out entities.Garden
	err := s.apply(true, func(st State) (next State, err error) {
		next, out, err = st.ConfigureSensor(id, f)
		return next, err
	})
	return out, err
}

// DeleteGarden asks for confirmation before removing the garden and its
// plants. A declined prompt returns ErrNotConfirmed and changes nothing.
func (s *Store) DeleteGarden(ctx context.Context, id int) error {
	g, ok := s.Garden(id)
	if !ok {
		return fmt.Errorf("garden %d: %w", id, ErrNotFound)
	}
	prompt := fmt.Sprintf("Are you sure you want to delete %q and all its plants?", g.Name)
	if !s.confirm.Confirm(ctx, prompt) {
		return ErrNotConfirmed
	}
	if err := s.apply(true, func(st State) (State, error) { return st.DeleteGarden(id) }); err != nil {
		return err
	}
	log.Printf("garden: deleted garden %d (%s)", id, g.Name)
	return nil
}

func (s *Store) AddPlant(f entities.NewPlantForm) (entities.Plant, error) {
	var p entities.Plant
	err := s.apply(false, func(st State) (next State, err error) {
		next, p, err = st.AddPlant(f)
		return next, err
	})
	return p, err
}

// DeletePlant asks for confirmation, then removes the plant from the selected
// garden. removed is false when the garden had no such plant.
func (s *Store) DeletePlant(ctx context.Context, id int) (removed bool, err error) {
	if s.Snapshot().SelectedGarden == nil {
		return false, ErrNoGardenSelected
	}
	if !s.confirm.Confirm(ctx, "Are you sure you want to delete this plant?") {
		return false, ErrNotConfirmed
	}
	err = s.apply(false, func(st State) (next State, err error) {
		next, removed, err = st.DeletePlant(id)
		return next, err
	})
	return removed, err
}
