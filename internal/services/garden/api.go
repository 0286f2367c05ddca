package garden

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenthumb/greenthumb/internal/model/entities"
)

// API serves the view state over JSON.
type API struct {
	store *Store
	board *Board
	now   func() time.Time

	// health e readiness, montati così come sono
	Health http.Handler
	Ready  http.Handler
}

func NewAPI(store *Store, board *Board) *API {
	return &API{store: store, board: board, now: time.Now}
}

type plantTones struct {
	Health      Tone `json:"health"`
	Temperature Tone `json:"temperature"`
	Humidity    Tone `json:"humidity"`
}

type plantView struct {
	entities.Plant
	Tones plantTones `json:"tones"`
}

func toPlantView(p entities.Plant) plantView {
	return plantView{Plant: p, Tones: plantTones{
		Health:      HealthTone(p.Health),
		Temperature: TemperatureTone(p.Temperature),
		Humidity:    HumidityTone(p.Humidity),
	}}
}

type viewResponse struct {
	View           View             `json:"view"`
	LoggedIn       bool             `json:"loggedIn"`
	SelectedGarden *entities.Garden `json:"selectedGarden"`
	SelectedPlant  *plantView       `json:"selectedPlant"`
}

type environmentView struct {
	GardenID    int        `json:"gardenId"`
	Status      string     `json:"status"` // unconfigured | loading | ok | error
	DeviceID    string     `json:"deviceId,omitempty"`
	SensorName  string     `json:"sensorName,omitempty"`
	Temperature *float64   `json:"temperature,omitempty"`
	Humidity    *float64   `json:"humidity,omitempty"`
	TempTone    Tone       `json:"temperatureTone,omitempty"`
	HumTone     Tone       `json:"humidityTone,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	LastUpdated string     `json:"lastUpdated,omitempty"`
	Source      string     `json:"source,omitempty"`
	Error       string     `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoGardenSelected):
		return http.StatusConflict
	case errors.Is(err, ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, ErrNotLoggedIn):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func writeStoreErr(w http.ResponseWriter, err error) {
	writeErr(w, statusOf(err), err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// confirmed reads the answer to the delete prompt from the request.
func confirmed(r *http.Request) bool {
	for _, v := range []string{r.Header.Get("X-Confirm"), r.URL.Query().Get("confirm")} {
		if ok, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil && ok {
			return true
		}
	}
	return false
}

func (a *API) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.store.LoggedIn() {
			writeStoreErr(w, ErrNotLoggedIn)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		apiDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// Routes builds the router. corsOrigins empty means any origin.
func (a *API) Routes(corsOrigins []string) http.Handler {
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Confirm"},
		MaxAge:         300,
	}))

	if a.Health != nil {
		r.Method(http.MethodGet, "/healthz", a.Health)
	}
	if a.Ready != nil {
		r.Method(http.MethodGet, "/readyz", a.Ready)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", a.handleLogin)
		r.Delete("/session", a.handleLogout)
		r.Get("/view", a.handleView)
		r.Post("/back", a.handleBack)

		r.Group(func(r chi.Router) {
			r.Use(a.requireLogin)

			r.Get("/gardens", a.handleListGardens)
			r.Post("/gardens", a.handleAddGarden)
			r.Put("/gardens/{id}", a.handleUpdateGarden)
			r.Put("/gardens/{id}/sensor", a.handleConfigureSensor)
			r.Delete("/gardens/{id}", a.handleDeleteGarden)
			r.Post("/gardens/{id}/select", a.handleSelectGarden)
			r.Get("/gardens/{id}/plants", a.handleListPlants)
			r.Get("/gardens/{id}/environment", a.handleEnvironment)

			r.Post("/plants", a.handleAddPlant)
			r.Post("/plants/{id}/select", a.handleSelectPlant)
			r.Delete("/plants/{id}", a.handleDeletePlant)
		})
	})
	return r
}

func (a *API) viewOf(st State) viewResponse {
	out := viewResponse{View: st.View(), LoggedIn: st.LoggedIn, SelectedGarden: st.SelectedGarden}
	if st.SelectedPlant != nil {
		pv := toPlantView(*st.SelectedPlant)
		out.SelectedPlant = &pv
	}
	return out
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &in) {
		return
	}
	if err := a.store.Login(in.Username, in.Password); err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(a.store.Snapshot()))
}

func (a *API) handleLogout(w http.ResponseWriter, _ *http.Request) {
	a.store.Logout()
	writeJSON(w, http.StatusOK, a.viewOf(a.store.Snapshot()))
}

func (a *API) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.viewOf(a.store.Snapshot()))
}

func (a *API) handleBack(w http.ResponseWriter, _ *http.Request) {
	a.store.GoBack()
	writeJSON(w, http.StatusOK, a.viewOf(a.store.Snapshot()))
}

func (a *API) handleListGardens(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Gardens())
}

func (a *API) handleAddGarden(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &in) {
		return
	}
	g, err := a.store.AddGarden(in.Name)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (a *API) handleUpdateGarden(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in entities.Garden
	if !decode(w, r, &in) {
		return
	}
	in.ID = id
	g, err := a.store.UpdateGarden(in)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (a *API) handleConfigureSensor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in entities.SensorConfigForm
	if !decode(w, r, &in) {
		return
	}
	g, err := a.store.ConfigureSensor(id, in)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (a *API) handleDeleteGarden(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := WithConfirmation(r.Context(), confirmed(r))
	if err := a.store.DeleteGarden(ctx, id); err != nil {
		writeStoreErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSelectGarden(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.store.SelectGarden(id); err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(a.store.Snapshot()))
}

func (a *API) handleListPlants(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	plants, err := a.store.PlantsOf(id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	out := make([]plantView, 0, len(plants))
	for _, p := range plants {
		out = append(out, toPlantView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleAddPlant(w http.ResponseWriter, r *http.Request) {
	var in entities.NewPlantForm
	if !decode(w, r, &in) {
		return
	}
	p, err := a.store.AddPlant(in)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPlantView(p))
}

func (a *API) handleSelectPlant(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.store.SelectPlant(id); err != nil {
		writeStoreErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.viewOf(a.store.Snapshot()))
}

func (a *API) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := WithConfirmation(r.Context(), confirmed(r))
	removed, err := a.store.DeletePlant(ctx, id)
	if err != nil {
		writeStoreErr(w, err)
		return
	}
	if !removed {
		writeErr(w, http.StatusNotFound, "plant not found in the selected garden")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	g, found := a.store.Garden(id)
	if !found {
		writeErr(w, http.StatusNotFound, "garden not found")
		return
	}
	writeJSON(w, http.StatusOK, a.environmentOf(g))
}

func (a *API) environmentOf(g entities.Garden) environmentView {
	out := environmentView{GardenID: g.ID, Status: "unconfigured"}
	if !g.HasSensor() {
		return out
	}
	out.DeviceID = g.SensorConfig.DeviceID
	out.SensorName = g.SensorConfig.SensorName

	e, ok := a.board.Get(g.ID)
	switch {
	case !ok:
		out.Status = "loading"
		return out
	case e.Reading == nil:
		out.Status = "error"
		out.Error = e.LastError
		return out
	}

	rd := e.Reading
	out.Status = "ok"
	if e.LastError != "" {
		out.Status = "error"
		out.Error = e.LastError
	}
	if rd.SensorName != "" {
		out.SensorName = rd.SensorName
	}
	temp, hum, ts := rd.Temperature, rd.Humidity, rd.Timestamp
	out.Temperature, out.Humidity, out.Timestamp = &temp, &hum, &ts
	out.TempTone = TemperatureTone(temp)
	out.HumTone = HumidityTone(hum)
	out.LastUpdated = RelativeAge(ts, a.now())
	out.Source = e.Source
	return out
}
