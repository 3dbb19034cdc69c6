// internal/services/detection/simulator.go
package detection

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/evn/guard_backendl/internal/models"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/evn/guard_backendl/internal/services/ws"
)

// Simulator имитирует поток распознавания номеров: реальных камер у
// стенда нет, консоль получает правдоподобные события на случайных
// интервалах вокруг базового.
type Simulator struct {
	detections *repositories.DetectionRepository
	cameras    *repositories.CameraRepository
	manager    *ws.Manager
	interval   time.Duration
	rng        *rand.Rand
}

func NewSimulator(detections *repositories.DetectionRepository, cameras *repositories.CameraRepository,
	manager *ws.Manager, interval time.Duration) *Simulator {
	return &Simulator{
		detections: detections,
		cameras:    cameras,
		manager:    manager,
		interval:   interval,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Буквы, разрешённые в российских регистрационных знаках.
var plateLetters = []rune("АВЕКМНОРСТУХ")

var regionCodes = []string{"77", "97", "99", "177", "197", "199", "50", "90"}

func (s *Simulator) randomPlate() string {
	l := func() rune { return plateLetters[s.rng.Intn(len(plateLetters))] }
	return fmt.Sprintf("%c%03d%c%c%s",
		l(), s.rng.Intn(1000), l(), l(),
		regionCodes[s.rng.Intn(len(regionCodes))])
}

// Generate создаёт одно событие, пишет его в базу и рассылает консолям.
func (s *Simulator) Generate(now time.Time) (*models.Detection, error) {
	ids, err := s.cameras.ListEnabledIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil // реестр камер пуст — событий нет
	}

	direction := "entry"
	if s.rng.Intn(2) == 1 {
		direction = "exit"
	}

	d := &models.Detection{
		CameraID:   ids[s.rng.Intn(len(ids))],
		Plate:      s.randomPlate(),
		Direction:  direction,
		Confidence: 0.75 + s.rng.Float64()*0.24,
		DetectedAt: now,
	}

	id, err := s.detections.Create(d)
	if err != nil {
		return nil, err
	}
	d.ID = id

	if cam, err := s.cameras.GetByID(d.CameraID); err == nil {
		d.CameraName = cam.Name
	}
	s.manager.BroadcastEvent("vehicle_detected", d)
	return d, nil
}

// Run крутит генератор с дрожащим интервалом (0.5x..1.5x базового),
// чтобы поток не выглядел метрономом.
func (s *Simulator) Run() {
	log.Println("✅ Vehicle detection simulator started")
	for {
		jitter := time.Duration(float64(s.interval) * (0.5 + s.rng.Float64()))
		time.Sleep(jitter)

		if _, err := s.Generate(time.Now()); err != nil {
			log.Printf("❌ Detection simulator failed: %v", err)
		}
	}
}
