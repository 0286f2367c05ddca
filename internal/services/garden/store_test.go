package garden

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

func TestStoreDeleteGardenConfirmation(t *testing.T) {
	var prompts []string
	answer := false
	confirm := ConfirmFunc(func(_ context.Context, prompt string) bool {
		prompts = append(prompts, prompt)
		return answer
	})
	s := NewStore(SampleState(), confirm)

	if err := s.DeleteGarden(context.Background(), 1); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if _, ok := s.Garden(1); !ok {
		t.Fatal("declined delete must not mutate")
	}
	if len(prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(prompts))
	}

	answer = true
	if err := s.DeleteGarden(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Garden(1); ok {
		t.Fatal("garden still present after confirmed delete")
	}
	if err := s.DeleteGarden(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(prompts) != 2 {
		t.Errorf("unknown garden must not prompt, got %d prompts", len(prompts))
	}
}

func TestStoreDeletePlantConfirmation(t *testing.T) {
	s := NewStore(SampleState(), ContextConfirmer)
	if err := s.SelectGarden(1); err != nil {
		t.Fatal(err)
	}

	if _, err := s.DeletePlant(context.Background(), 1); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if plants, _ := s.PlantsOf(1); len(plants) != 8 {
		t.Fatal("declined delete must not mutate")
	}

	ctx := WithConfirmation(context.Background(), true)
	removed, err := s.DeletePlant(ctx, 1)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
	if g, _ := s.Garden(1); g.PlantCount != 7 {
		t.Errorf("expected plantCount 7, got %d", g.PlantCount)
	}
}

func TestStoreDeletePlantWithoutGarden(t *testing.T) {
	called := false
	s := NewStore(SampleState(), ConfirmFunc(func(context.Context, string) bool {
		called = true
		return true
	}))
	if _, err := s.DeletePlant(context.Background(), 1); !errors.Is(err, ErrNoGardenSelected) {
		t.Errorf("expected ErrNoGardenSelected, got %v", err)
	}
	if called {
		t.Error("must not prompt without a selected garden")
	}
}

func TestStoreGardenNotifications(t *testing.T) {
	s := NewStore(NewState(nil, nil), AlwaysConfirm)
	var got [][]entities.Garden
	s.OnGardensChanged(func(gs []entities.Garden) { got = append(got, gs) })

	_, _ = s.AddGarden("Patio")
	_, _ = s.ConfigureSensor(1, entities.SensorConfigForm{DeviceID: "dev-1"})
	_ = s.SelectGarden(1)
	_, _ = s.AddPlant(entities.NewPlantForm{Name: "Fern", Type: "Tropical"})
	_ = s.DeleteGarden(context.Background(), 1)
	_, _ = s.AddGarden(" ") // rejected

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if len(got[1]) != 1 || !got[1][0].HasSensor() {
		t.Errorf("expected sensor config in second notification: %+v", got[1])
	}
	if len(got[2]) != 0 {
		t.Errorf("expected no gardens after delete: %+v", got[2])
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore(SampleState(), AlwaysConfirm)
	snap := s.Snapshot()
	snap.Gardens[0].Name = "changed"
	snap.Plants[1][0].Name = "changed"
	if g, _ := s.Garden(1); g.Name != "Indoor Garden" {
		t.Error("snapshot shares gardens with the store")
	}
	if ps, _ := s.PlantsOf(1); ps[0].Name != "Monstera Deliciosa" {
		t.Error("snapshot shares plants with the store")
	}
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore(NewState(nil, nil), AlwaysConfirm)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddGarden("g")
		}()
	}
	wg.Wait()
	seen := map[int]bool{}
	for _, g := range s.Gardens() {
		if seen[g.ID] {
			t.Fatalf("duplicate id %d", g.ID)
		}
		seen[g.ID] = true
	}
	if len(seen) != 50 {
		t.Errorf("expected 50 gardens, got %d", len(seen))
	}
}

func TestStoreLoginLogout(t *testing.T) {
	s := NewStore(SampleState(), nil)
	if err := s.Login("", "x"); !errors.Is(err, ErrInvalidInput) || s.LoggedIn() {
		t.Errorf("blank username must fail, got %v", err)
	}
	if err := s.Login("demo", "demo"); err != nil || s.View() != ViewGardens {
		t.Fatalf("login: %v %s", err, s.View())
	}
	_ = s.SelectGarden(2)
	if v := s.GoBack(); v != ViewGardens {
		t.Errorf("expected gardens after back, got %s", v)
	}
	s.Logout()
	if s.LoggedIn() || s.View() != ViewLogin {
		t.Errorf("expected logged out")
	}
}
