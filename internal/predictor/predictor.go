package predictor

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/example/flashdeck/internal/features"
	"github.com/example/flashdeck/pkg/models"
)

const (
	// MinTrainingSamples is the minimum number of assembled (card, set)
	// samples required before a model can be trained.
	MinTrainingSamples = 10

	// retrainGrowth is the history growth ratio that triggers a retrain.
	retrainGrowth = 1.2

	metadataFile  = "metadata.json"
	regressorFile = "regressor.json"
	scalerFile    = "scaler.json"
)

// Metadata describes a persisted model for diagnostics and validation.
type Metadata struct {
	Version          int                `json:"version"`
	TrainedAt        string             `json:"trained_at"`
	LastTrainingSize int                `json:"last_training_size"`
	Features         []string           `json:"features"`
	MinDataPoints    int                `json:"min_data_points"`
	Importances      map[string]float64 `json:"importances"`
}

// Predictor maps feature vectors to a predicted review delay in hours.
// It is either untrained (version 0, Predict refuses) or trained; training
// happens lazily from history and the fitted model is persisted under dir.
type Predictor struct {
	dir       string
	extractor *features.Extractor

	trained bool
	meta    Metadata
	scaler  *scaler
	model   *regressor
}

// New creates a predictor persisting its artifacts under dir and loads any
// previously trained model. Corrupt or missing artifacts degrade to the
// untrained state rather than failing.
func New(dir string) *Predictor {
	p := &Predictor{
		dir:       dir,
		extractor: features.NewExtractor(),
	}
	p.Load()
	return p
}

// WithClock overrides the clock used during training-time feature
// extraction. Used in tests.
func (p *Predictor) WithClock(now func() time.Time) *Predictor {
	p.extractor.WithClock(now)
	return p
}

// Trained reports whether a model is active.
func (p *Predictor) Trained() bool {
	return p.trained
}

// Version returns the model version, 0 when untrained.
func (p *Predictor) Version() int {
	return p.meta.Version
}

// Meta returns a copy of the current model metadata.
func (p *Predictor) Meta() Metadata {
	return p.meta
}

// MaybeRetrain trains inline when no model is active, or when the history
// has grown past the retrain threshold since the last fit. Called on the
// scheduling read path; failures are absorbed.
func (p *Predictor) MaybeRetrain(hist []models.SessionRecord) {
	if p.trained {
		if len(hist) < MinTrainingSamples {
			return
		}
		if float64(len(hist)) <= float64(p.meta.LastTrainingSize)*retrainGrowth {
			return
		}
	}
	p.Train(hist)
}

// Train fits a new model from history. Returns false, leaving the current
// state untouched, when fewer than MinTrainingSamples samples can be
// assembled. On success the new model replaces the active one, the version
// is bumped and all artifacts are persisted.
func (p *Predictor) Train(hist []models.SessionRecord) bool {
	if err := p.train(hist); err != nil {
		log.Printf("predictor: training skipped: %v", err)
		return false
	}
	return true
}

func (p *Predictor) train(hist []models.SessionRecord) error {
	X, y := p.assemble(hist)
	if len(X) < MinTrainingSamples {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(X), MinTrainingSamples)
	}

	sc := fitScaler(X)
	model := fitRegressor(sc.transformAll(X), y)

	p.scaler = sc
	p.model = model
	p.trained = true
	p.meta = Metadata{
		Version:          p.meta.Version + 1,
		TrainedAt:        time.Now().Format(time.RFC3339),
		LastTrainingSize: len(hist),
		Features:         features.Names,
		MinDataPoints:    MinTrainingSamples,
		Importances:      model.importances(features.Names),
	}

	if err := p.persist(); err != nil {
		log.Printf("predictor: failed to persist model v%d: %v", p.meta.Version, err)
	}
	return nil
}

// assemble builds the training matrix: one sample per (set, card) pair with
// at least one positive interval. The target is the mean gap in hours
// between a correct review and the next review of the same card, excluding
// same-session (zero-length) gaps.
func (p *Predictor) assemble(hist []models.SessionRecord) ([][]float64, []float64) {
	setSeen := make(map[string]bool)
	wordSeen := make(map[string]bool)
	for _, rec := range hist {
		setSeen[rec.Set] = true
		for w := range rec.Results {
			wordSeen[w] = true
		}
	}

	sets := make([]string, 0, len(setSeen))
	for s := range setSeen {
		sets = append(sets, s)
	}
	sort.Strings(sets)

	words := make([]string, 0, len(wordSeen))
	for w := range wordSeen {
		words = append(words, w)
	}
	sort.Strings(words)

	var X [][]float64
	var y []float64

	for _, set := range sets {
		for _, word := range words {
			v := p.extractor.Extract(hist, word, set)
			if v == nil {
				continue
			}

			rows := features.CardRows(hist, word)
			var sum float64
			var n int
			for i := 0; i < len(rows)-1; i++ {
				if rows[i].Results[word] != 1 {
					continue
				}
				gap := rows[i+1].Timestamp.Sub(rows[i].Timestamp).Hours()
				if gap > 0 {
					sum += gap
					n++
				}
			}
			if n == 0 {
				continue
			}

			X = append(X, v)
			y = append(y, sum/float64(n))
		}
	}

	return X, y
}

// Predict returns the recommended delay in hours for a feature vector.
// The output is floored at one hour. Returns ErrUntrained when no model
// is active.
func (p *Predictor) Predict(v features.Vector) (float64, error) {
	if !p.trained {
		return 0, ErrUntrained
	}

	hours := p.model.predict(p.scaler.transform(v))
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

// Load reads the persisted model. Any missing, unreadable or mismatched
// artifact resets the predictor to the untrained state with version 0;
// the process keeps running on the ladder fallback.
func (p *Predictor) Load() bool {
	var meta Metadata
	if err := readJSON(filepath.Join(p.dir, metadataFile), &meta); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("predictor: resetting to untrained: %v", err)
		}
		p.reset()
		return false
	}

	var sc scaler
	var model regressor
	if err := readJSON(filepath.Join(p.dir, scalerFile), &sc); err != nil {
		log.Printf("predictor: resetting to untrained: %v", err)
		p.reset()
		return false
	}
	if err := readJSON(filepath.Join(p.dir, regressorFile), &model); err != nil {
		log.Printf("predictor: resetting to untrained: %v", err)
		p.reset()
		return false
	}

	if !sameManifest(meta.Features, features.Names) {
		log.Printf("predictor: resetting to untrained: persisted feature manifest %v does not match %v", meta.Features, features.Names)
		p.reset()
		return false
	}
	if len(model.Weights) != len(features.Names) || len(sc.Mean) != len(features.Names) || len(sc.Std) != len(features.Names) {
		log.Printf("predictor: resetting to untrained: artifact dimensions do not match %d features", len(features.Names))
		p.reset()
		return false
	}

	p.meta = meta
	p.scaler = &sc
	p.model = &model
	p.trained = true
	return true
}

func (p *Predictor) reset() {
	p.trained = false
	p.meta = Metadata{}
	p.scaler = nil
	p.model = nil
}

// persist writes the regressor, scaler and metadata. Each file lands via a
// temp-file rename; metadata goes last so a crash mid-write leaves either a
// consistent model or one that Load rejects.
func (p *Predictor) persist() error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %v", err)
	}

	if err := writeJSON(filepath.Join(p.dir, regressorFile), p.model); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(p.dir, scalerFile), p.scaler); err != nil {
		return err
	}
	return writeJSON(filepath.Join(p.dir, metadataFile), p.meta)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %v", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %v", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %v", filepath.Base(path), err)
	}
	return nil
}

func sameManifest(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
