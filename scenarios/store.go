// Package scenarios persists named staffing scenarios in SQLite.
//
// A scenario stores the flat numeric inputs of a calculation plus the most
// recently computed flat result, so saved what-if cases can be reloaded,
// re-run and compared later. The engine itself never touches the store;
// persistence is strictly a caller-side concern.
package scenarios

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"

	"staffing-calculator/models"
)

// ErrNotFound is returned when a scenario id does not exist.
var ErrNotFound = errors.New("scenario not found")

// Scenario is a named, persisted calculation setup. Result is nil when the
// scenario has never been run (or its last run was unachievable).
type Scenario struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Model     models.ModelID             `json:"model"`
	Workload  models.WorkloadParameters  `json:"workload"`
	Target    models.ServiceTarget       `json:"target"`
	Patience  *models.PatienceParameters `json:"patience,omitempty"`
	Result    *models.StaffingResult     `json:"result,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Store manages SQLite persistence for scenarios.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		model             TEXT NOT NULL,
		volume            REAL NOT NULL,
		aht_seconds       REAL NOT NULL,
		interval_seconds  REAL NOT NULL,
		service_level     REAL NOT NULL,
		threshold_seconds REAL NOT NULL,
		max_occupancy     REAL NOT NULL,
		shrinkage         REAL NOT NULL,
		patience_seconds  REAL,
		required_agents   INTEGER,
		achieved_sl       REAL,
		asa_seconds       REAL,
		occupancy         REAL,
		fte_required      REAL,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_name ON scenarios(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or updates a scenario. A missing ID is assigned; CreatedAt
// is preserved on update.
func (s *Store) Save(sc *Scenario) error {
	if sc == nil {
		return errors.New("nil scenario")
	}
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = now
	}
	sc.UpdatedAt = now

	var patience any
	if sc.Patience != nil {
		patience = sc.Patience.AveragePatienceSeconds
	}
	var agents, achievedSL, asa, occupancy, fte any
	if sc.Result != nil {
		agents = sc.Result.RequiredAgents
		achievedSL = sc.Result.AchievedServiceLevel
		asa = sc.Result.AverageSpeedOfAnswerSeconds
		occupancy = sc.Result.Occupancy
		fte = sc.Result.FTERequired
	}

	_, err := s.db.Exec(`
		INSERT INTO scenarios (
			id, name, model,
			volume, aht_seconds, interval_seconds,
			service_level, threshold_seconds, max_occupancy, shrinkage,
			patience_seconds,
			required_agents, achieved_sl, asa_seconds, occupancy, fte_required,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			model = excluded.model,
			volume = excluded.volume,
			aht_seconds = excluded.aht_seconds,
			interval_seconds = excluded.interval_seconds,
			service_level = excluded.service_level,
			threshold_seconds = excluded.threshold_seconds,
			max_occupancy = excluded.max_occupancy,
			shrinkage = excluded.shrinkage,
			patience_seconds = excluded.patience_seconds,
			required_agents = excluded.required_agents,
			achieved_sl = excluded.achieved_sl,
			asa_seconds = excluded.asa_seconds,
			occupancy = excluded.occupancy,
			fte_required = excluded.fte_required,
			updated_at = excluded.updated_at`,
		sc.ID, sc.Name, string(sc.Model),
		sc.Workload.Volume, sc.Workload.AHTSeconds, sc.Workload.IntervalSeconds,
		sc.Target.ServiceLevel, sc.Target.ThresholdSeconds, sc.Target.MaxOccupancy, sc.Target.Shrinkage,
		patience,
		agents, achievedSL, asa, occupancy, fte,
		sc.CreatedAt.Format(time.RFC3339Nano), sc.UpdatedAt.Format(time.RFC3339Nano),
	)
	return errors.Wrap(err, "save scenario")
}

const scenarioColumns = `id, name, model,
	volume, aht_seconds, interval_seconds,
	service_level, threshold_seconds, max_occupancy, shrinkage,
	patience_seconds,
	required_agents, achieved_sl, asa_seconds, occupancy, fte_required,
	created_at, updated_at`

// Get retrieves a scenario by ID.
func (s *Store) Get(id string) (*Scenario, error) {
	row := s.db.QueryRow(`SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`, id)
	sc, err := scanScenario(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get scenario")
	}
	return sc, nil
}

// List returns all scenarios ordered by name, then creation time.
func (s *Store) List() ([]Scenario, error) {
	rows, err := s.db.Query(`SELECT ` + scenarioColumns + ` FROM scenarios ORDER BY name, created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "list scenarios")
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "scan scenario")
		}
		out = append(out, *sc)
	}
	return out, errors.Wrap(rows.Err(), "list scenarios")
}

// Delete removes a scenario by ID.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete scenario")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete scenario")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanScenario(scan func(dest ...any) error) (*Scenario, error) {
	var sc Scenario
	var model string
	var patience, achievedSL, asa, occupancy, fte sql.NullFloat64
	var agents sql.NullInt64
	var createdAt, updatedAt string

	err := scan(
		&sc.ID, &sc.Name, &model,
		&sc.Workload.Volume, &sc.Workload.AHTSeconds, &sc.Workload.IntervalSeconds,
		&sc.Target.ServiceLevel, &sc.Target.ThresholdSeconds, &sc.Target.MaxOccupancy, &sc.Target.Shrinkage,
		&patience,
		&agents, &achievedSL, &asa, &occupancy, &fte,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sc.Model = models.ModelID(model)
	if patience.Valid {
		sc.Patience = &models.PatienceParameters{AveragePatienceSeconds: patience.Float64}
	}
	if agents.Valid {
		sc.Result = &models.StaffingResult{
			Model:                       sc.Model,
			RequiredAgents:              int(agents.Int64),
			AchievedServiceLevel:        achievedSL.Float64,
			AverageSpeedOfAnswerSeconds: asa.Float64,
			Occupancy:                   occupancy.Float64,
			FTERequired:                 fte.Float64,
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		sc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		sc.UpdatedAt = t
	}
	return &sc, nil
}
