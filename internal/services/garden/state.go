// Package garden holds the view state of the app (login, gardens, plants and
// the current selection) and serves it over HTTP.
package garden

import (
	"fmt"
	"strings"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

const (
	DefaultPlantImage = "https://images.unsplash.com/photo-1466781783364-36c955e42a7f?w=400&h=400&fit=crop"
	DefaultSensorName = "Room Alert Sensor"
)

// View is the screen the state currently maps to.
type View string

const (
	ViewLogin   View = "login"
	ViewGardens View = "gardens"
	ViewPlants  View = "plants"
	ViewPlant   View = "plant"
)

// State is an immutable value: every transition returns a new State and
// leaves the receiver untouched.
type State struct {
	LoggedIn bool
	Gardens  []entities.Garden
	// indice garden id -> piante, in ordine di inserimento
	Plants map[int][]entities.Plant

	SelectedGarden *entities.Garden
	SelectedPlant  *entities.Plant
}

func NewState(gardens []entities.Garden, plants map[int][]entities.Plant) State {
	s := State{Plants: map[int][]entities.Plant{}}
	for _, g := range gardens {
		s.Gardens = append(s.Gardens, g.Clone())
		s.Plants[g.ID] = append([]entities.Plant(nil), plants[g.ID]...)
	}
	return s.recount()
}

func (s State) clone() State {
	out := State{LoggedIn: s.LoggedIn, Plants: make(map[int][]entities.Plant, len(s.Plants))}
	out.Gardens = make([]entities.Garden, len(s.Gardens))
	for i, g := range s.Gardens {
		out.Gardens[i] = g.Clone()
	}
	for id, ps := range s.Plants {
		out.Plants[id] = append([]entities.Plant(nil), ps...)
	}
	if s.SelectedGarden != nil {
		g := s.SelectedGarden.Clone()
		out.SelectedGarden = &g
	}
	if s.SelectedPlant != nil {
		p := *s.SelectedPlant
		out.SelectedPlant = &p
	}
	return out
}

// recount keeps plantCount in line with the index.
func (s State) recount() State {
	for i := range s.Gardens {
		s.Gardens[i].PlantCount = len(s.Plants[s.Gardens[i].ID])
	}
	if s.SelectedGarden != nil {
		if g, ok := s.Garden(s.SelectedGarden.ID); ok {
			s.SelectedGarden = &g
		} else {
			s.SelectedGarden = nil
			s.SelectedPlant = nil
		}
	}
	return s
}

func (s State) View() View {
	switch {
	case !s.LoggedIn:
		return ViewLogin
	case s.SelectedPlant != nil:
		return ViewPlant
	case s.SelectedGarden != nil:
		return ViewPlants
	default:
		return ViewGardens
	}
}

// Garden returns a copy of the garden with the given id.
func (s State) Garden(id int) (entities.Garden, bool) {
	for _, g := range s.Gardens {
		if g.ID == id {
			return g.Clone(), true
		}
	}
	return entities.Garden{}, false
}

// PlantsOf returns a copy of the plants of a garden.
func (s State) PlantsOf(gardenID int) ([]entities.Plant, error) {
	if _, ok := s.Garden(gardenID); !ok {
		return nil, fmt.Errorf("garden %d: %w", gardenID, ErrNotFound)
	}
	return append([]entities.Plant{}, s.Plants[gardenID]...), nil
}

func (s State) Login(username, password string) (State, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return s, fmt.Errorf("username and password are required: %w", ErrInvalidInput)
	}
	out := s.clone()
	out.LoggedIn = true
	return out, nil
}

func (s State) Logout() State {
	out := s.clone()
	out.LoggedIn = false
	out.SelectedGarden = nil
	out.SelectedPlant = nil
	return out
}

func (s State) SelectGarden(id int) (State, error) {
	g, ok := s.Garden(id)
	if !ok {
		return s, fmt.Errorf("garden %d: %w", id, ErrNotFound)
	}
	out := s.clone()
	out.SelectedGarden = &g
	out.SelectedPlant = nil
	return out, nil
}

func (s State) SelectPlant(id int) (State, error) {
	if s.SelectedGarden == nil {
		return s, ErrNoGardenSelected
	}
	for _, p := range s.Plants[s.SelectedGarden.ID] {
		if p.ID == id {
			out := s.clone()
			out.SelectedPlant = &p
			return out, nil
		}
	}
	return s, fmt.Errorf("plant %d in garden %d: %w", id, s.SelectedGarden.ID, ErrNotFound)
}

func (s State) GoBack() State {
	switch {
	case s.SelectedPlant != nil:
		out := s.clone()
		out.SelectedPlant = nil
		return out
	case s.SelectedGarden != nil:
		out := s.clone()
		out.SelectedGarden = nil
		return out
	}
	return s
}

func (s State) nextGardenID() int {
	max := 0
	for _, g := range s.Gardens {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}

func (s State) nextPlantID() int {
	max := 0
	for _, ps := range s.Plants {
		for _, p := range ps {
			if p.ID > max {
				max = p.ID
			}
		}
	}
	return max + 1
}

func (s State) AddGarden(name string) (State, entities.Garden, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, entities.Garden{}, fmt.Errorf("garden name is required: %w", ErrInvalidInput)
	}
	g := entities.Garden{ID: s.nextGardenID(), Name: name}
	out := s.clone()
	out.Gardens = append(out.Gardens, g)
	out.Plants[g.ID] = []entities.Plant{}
	return out, g, nil
}

// DeleteGarden removes the garden and its plants. Confirmation is the
// caller's job.
func (s State) DeleteGarden(id int) (State, error) {
	if _, ok := s.Garden(id); !ok {
		return s, fmt.Errorf("garden %d: %w", id, ErrNotFound)
	}
	out := s.clone()
	kept := out.Gardens[:0]
	for _, g := range out.Gardens {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	out.Gardens = kept
	delete(out.Plants, id)
	return out.recount(), nil
}

// UpdateGarden replaces the garden with the same id. PlantCount is taken from
// the index, never from the argument.
func (s State) UpdateGarden(g entities.Garden) (State, entities.Garden, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return s, entities.Garden{}, fmt.Errorf("garden name is required: %w", ErrInvalidInput)
	}
	if _, ok := s.Garden(g.ID); !ok {
		return s, entities.Garden{}, fmt.Errorf("garden %d: %w", g.ID, ErrNotFound)
	}
	out := s.clone()
	for i := range out.Gardens {
		if out.Gardens[i].ID == g.ID {
			out.Gardens[i] = g.Clone()
		}
	}
	out = out.recount()
	updated, _ := out.Garden(g.ID)
	return out, updated, nil
}

// NormalizeSensorForm turns the raw form into a config; nil means "remove".
func NormalizeSensorForm(f entities.SensorConfigForm) *entities.SensorConfig {
	deviceID := strings.TrimSpace(f.DeviceID)
	if deviceID == "" {
		return nil
	}
	name := strings.TrimSpace(f.SensorName)
	if name == "" {
		name = DefaultSensorName
	}
	return &entities.SensorConfig{
		DeviceID:     deviceID,
		SensorName:   name,
		Model:        strings.TrimSpace(f.Model),
		SerialNumber: strings.TrimSpace(f.SerialNumber),
	}
}

func (s State) ConfigureSensor(id int, f entities.SensorConfigForm) (State, entities.Garden, error) {
	g, ok := s.Garden(id)
	if !ok {
		return s, entities.Garden{}, fmt.Errorf("garden %d: %w", id, ErrNotFound)
	}
	g.SensorConfig = NormalizeSensorForm(f)
	return s.UpdateGarden(g)
}

func (s State) AddPlant(f entities.NewPlantForm) (State, entities.Plant, error) {
	if s.SelectedGarden == nil {
		return s, entities.Plant{}, ErrNoGardenSelected
	}
	name, typ := strings.TrimSpace(f.Name), strings.TrimSpace(f.Type)
	if name == "" || typ == "" {
		return s, entities.Plant{}, fmt.Errorf("plant name and type are required: %w", ErrInvalidInput)
	}
	img := strings.TrimSpace(f.Image)
	if img == "" {
		img = DefaultPlantImage
	}
	p := entities.Plant{
		ID:               s.nextPlantID(),
		Name:             name,
		Type:             typ,
		Temperature:      72,
		Humidity:         60,
		Light:            "Medium",
		WaterLevel:       "Good",
		LastWateredLabel: "Just now",
		Health:           entities.HealthGood,
		ImageURL:         img,
	}
	out := s.clone()
	gid := out.SelectedGarden.ID
	out.Plants[gid] = append(out.Plants[gid], p)
	return out.recount(), p, nil
}

// DeletePlant removes a plant from the selected garden and clears the plant
// selection. removed is false when no plant matched; the lists stay as they are.
func (s State) DeletePlant(id int) (out State, removed bool, err error) {
	if s.SelectedGarden == nil {
		return s, false, ErrNoGardenSelected
	}
	out = s.clone()
	gid := out.SelectedGarden.ID
	list := out.Plants[gid]
	kept := make([]entities.Plant, 0, len(list))
	for _, p := range list {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if _, ok := out.Plants[gid]; ok {
		out.Plants[gid] = kept
	}
	out.SelectedPlant = nil
	return out.recount(), removed, nil
}
