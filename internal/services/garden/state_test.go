package garden

import (
	"errors"
	"testing"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

func TestAddGardenIDs(t *testing.T) {
	st := NewState(nil, nil)
	st, patio, err := st.AddGarden("Patio")
	if err != nil {
		t.Fatal(err)
	}
	if patio.ID != 1 || patio.PlantCount != 0 || patio.Name != "Patio" {
		t.Errorf("unexpected first garden %+v", patio)
	}
	st, balcony, err := st.AddGarden("  Balcony ")
	if err != nil {
		t.Fatal(err)
	}
	if balcony.ID != 2 || balcony.Name != "Balcony" {
		t.Errorf("unexpected second garden %+v", balcony)
	}
	if plants, err := st.PlantsOf(2); err != nil || len(plants) != 0 {
		t.Errorf("expected empty plant list, got %v %v", plants, err)
	}
}

func TestAddGardenBlankIgnored(t *testing.T) {
	st := NewState(nil, nil)
	next, _, err := st.AddGarden("   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(next.Gardens) != 0 {
		t.Errorf("blank name must not add a garden")
	}
}

func TestAddPlantDefaults(t *testing.T) {
	st, err := SampleState().SelectGarden(3)
	if err != nil {
		t.Fatal(err)
	}
	next, p, err := st.AddPlant(entities.NewPlantForm{Name: "Fern", Type: "Tropical"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 16 {
		t.Errorf("expected id 16, got %d", p.ID)
	}
	if p.Health != entities.HealthGood || p.Temperature != 72 || p.Humidity != 60 {
		t.Errorf("unexpected defaults %+v", p)
	}
	if p.Light != "Medium" || p.WaterLevel != "Good" || p.LastWateredLabel != "Just now" {
		t.Errorf("unexpected care defaults %+v", p)
	}
	if p.ImageURL != DefaultPlantImage {
		t.Errorf("expected default image, got %q", p.ImageURL)
	}
	g, _ := next.Garden(3)
	if g.PlantCount != 4 {
		t.Errorf("expected plantCount 4, got %d", g.PlantCount)
	}
	if next.SelectedGarden.PlantCount != 4 {
		t.Errorf("selection not refreshed: %+v", next.SelectedGarden)
	}
	// receiver untouched
	if g, _ := st.Garden(3); g.PlantCount != 3 {
		t.Errorf("transition mutated the receiver")
	}
}

func TestAddPlantRequiresGardenAndFields(t *testing.T) {
	st := SampleState()
	if _, _, err := st.AddPlant(entities.NewPlantForm{Name: "Fern", Type: "Tropical"}); !errors.Is(err, ErrNoGardenSelected) {
		t.Errorf("expected ErrNoGardenSelected, got %v", err)
	}
	st, _ = st.SelectGarden(1)
	for _, f := range []entities.NewPlantForm{{Name: "Fern"}, {Type: "Tropical"}, {Name: " ", Type: "x"}} {
		next, _, err := st.AddPlant(f)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", f, err)
		}
		if g, _ := next.Garden(1); g.PlantCount != 8 {
			t.Errorf("%+v: blank form must not add a plant", f)
		}
	}
}

func TestDeletePlant(t *testing.T) {
	st, _ := SampleState().SelectGarden(2)
	st, _ = st.SelectPlant(10)

	next, removed, err := st.DeletePlant(10)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
	if g, _ := next.Garden(2); g.PlantCount != 3 {
		t.Errorf("expected plantCount 3, got %d", g.PlantCount)
	}
	if next.SelectedPlant != nil {
		t.Error("plant selection must be cleared")
	}

	again, removed, err := next.DeletePlant(999)
	if err != nil || removed {
		t.Fatalf("expected no-op, got %v %v", removed, err)
	}
	plants, _ := again.PlantsOf(2)
	if len(plants) != 3 {
		t.Errorf("list changed on unknown id: %v", plants)
	}
	if g, _ := again.Garden(2); g.PlantCount != 3 {
		t.Errorf("plantCount changed on unknown id: %d", g.PlantCount)
	}
}

func TestDeletePlantOnlyInSelectedGarden(t *testing.T) {
	st, _ := SampleState().SelectGarden(1)
	next, removed, _ := st.DeletePlant(13) // lives in garden 3
	if removed {
		t.Error("plant from another garden must not be removed")
	}
	if g, _ := next.Garden(3); g.PlantCount != 3 {
		t.Errorf("other garden touched: %+v", g)
	}
	if _, _, err := SampleState().DeletePlant(1); !errors.Is(err, ErrNoGardenSelected) {
		t.Errorf("expected ErrNoGardenSelected, got %v", err)
	}
}

func TestDeleteGardenCascades(t *testing.T) {
	st, _ := SampleState().SelectGarden(2)
	next, err := st.DeleteGarden(2)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.Garden(2); ok {
		t.Error("garden still present")
	}
	if _, ok := next.Plants[2]; ok {
		t.Error("plant index entry still present")
	}
	if next.SelectedGarden != nil {
		t.Error("selection pointing at the deleted garden must be cleared")
	}
	if _, err := next.DeleteGarden(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	// new ids keep counting from the max
	_, g, _ := next.AddGarden("Patio")
	if g.ID != 4 {
		t.Errorf("expected id 4, got %d", g.ID)
	}
}

func TestUpdateGarden(t *testing.T) {
	st, _ := SampleState().SelectGarden(1)
	next, g, err := st.UpdateGarden(entities.Garden{ID: 1, Name: "Living Room", PlantCount: 99})
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "Living Room" || g.PlantCount != 8 {
		t.Errorf("unexpected update %+v", g)
	}
	if next.SelectedGarden.Name != "Living Room" {
		t.Errorf("selection not refreshed: %+v", next.SelectedGarden)
	}
	if _, _, err := st.UpdateGarden(entities.Garden{ID: 42, Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := st.UpdateGarden(entities.Garden{ID: 1, Name: " "}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestConfigureSensor(t *testing.T) {
	st := SampleState()
	next, g, err := st.ConfigureSensor(1, entities.SensorConfigForm{DeviceID: "  RA3E-A46074 ", SensorName: " ", Model: "  ", SerialNumber: " SN1 "})
	if err != nil {
		t.Fatal(err)
	}
	want := entities.SensorConfig{DeviceID: "RA3E-A46074", SensorName: DefaultSensorName, SerialNumber: "SN1"}
	if g.SensorConfig == nil || *g.SensorConfig != want {
		t.Fatalf("unexpected config %+v", g.SensorConfig)
	}

	cleared, g, err := next.ConfigureSensor(1, entities.SensorConfigForm{DeviceID: "  ", SensorName: "kept?"})
	if err != nil {
		t.Fatal(err)
	}
	if g.SensorConfig != nil || g.HasSensor() {
		t.Errorf("blank device id must remove the config, got %+v", g.SensorConfig)
	}
	if g, _ := cleared.Garden(1); g.SensorConfig != nil {
		t.Error("config still stored")
	}
}

func TestNavigation(t *testing.T) {
	st := SampleState()
	if st.View() != ViewLogin {
		t.Fatalf("expected login view, got %s", st.View())
	}
	if _, err := st.Login("ada", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	st, err := st.Login("ada", "secret")
	if err != nil || st.View() != ViewGardens {
		t.Fatalf("login: %v %s", err, st.View())
	}
	st, _ = st.SelectGarden(1)
	st, _ = st.SelectPlant(3)
	if st.View() != ViewPlant || st.SelectedPlant.Name != "Pothos" {
		t.Fatalf("unexpected selection %s %+v", st.View(), st.SelectedPlant)
	}
	if _, err := st.SelectPlant(9); !errors.Is(err, ErrNotFound) {
		t.Errorf("plant of another garden: expected ErrNotFound, got %v", err)
	}

	st = st.GoBack()
	if st.View() != ViewPlants || st.SelectedGarden == nil {
		t.Errorf("expected plants view, got %s", st.View())
	}
	st = st.GoBack()
	if st.View() != ViewGardens || st.SelectedGarden != nil {
		t.Errorf("expected gardens view, got %s", st.View())
	}
	if again := st.GoBack(); again.View() != ViewGardens {
		t.Errorf("goBack at the top must be a no-op")
	}

	st, _ = st.SelectGarden(2)
	st, _ = st.SelectPlant(9)
	st, _ = st.SelectGarden(3)
	if st.SelectedPlant != nil {
		t.Error("selecting a garden must clear the plant")
	}

	st = st.Logout()
	if st.LoggedIn || st.SelectedGarden != nil || st.SelectedPlant != nil || st.View() != ViewLogin {
		t.Errorf("logout left state behind: %+v", st)
	}
}

func TestSampleStateCounts(t *testing.T) {
	st := SampleState()
	want := map[int]int{1: 8, 2: 4, 3: 3}
	for _, g := range st.Gardens {
		if g.PlantCount != want[g.ID] || len(st.Plants[g.ID]) != want[g.ID] {
			t.Errorf("garden %d: plantCount %d, plants %d", g.ID, g.PlantCount, len(st.Plants[g.ID]))
		}
	}
	if st.nextPlantID() != 16 {
		t.Errorf("expected next plant id 16, got %d", st.nextPlantID())
	}
}
