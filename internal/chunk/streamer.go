package chunk

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"github.com/annel0/zoneworld/internal/world/zone"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/annel0/zoneworld/internal/chunk"

// Entry хранит опубликованный чанк. Mesh равен nil для пустого чанка.
type Entry struct {
	LOD  zone.LOD
	Mesh *Mesh
}

// Scene хранит набор опубликованных чанков, который читает рендерер.
// Меняется только целиком под блокировкой.
type Scene struct {
	mu      sync.RWMutex
	entries map[Coord]Entry
	version uint64
}

// NewScene создаёт пустую сцену
func NewScene() *Scene {
	return &Scene{entries: make(map[Coord]Entry)}
}

// Get возвращает опубликованный чанк
func (s *Scene) Get(c Coord) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[c]
	return e, ok
}

// Len возвращает количество опубликованных чанков
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Version возвращает номер последней публикации
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot возвращает копию содержимого сцены
func (s *Scene) Snapshot() map[Coord]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Coord]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// SyncResult содержит итог одной синхронизации
type SyncResult struct {
	Visible   int  `json:"visible"`
	Built     int  `json:"built"`
	Evicted   int  `json:"evicted"`
	Pending   int  `json:"pending"`
	Published bool `json:"published"`
}

// Streamer подгружает видимые чанки пачками ограниченного размера.
// Построение идёт параллельно, публикация атомарна и только для актуального снимка наблюдателя.
type Streamer struct {
	mesher     *Mesher
	visibility *Visibility
	scene      *Scene
	workers    int
	budget     int
	generation atomic.Uint64
	tracer     trace.Tracer
	logger     *logging.Logger

	// planMu упорядочивает пересчёт видимости и отметку wanted.
	// wanted растёт при каждом пересчёте набора, published хранит
	// последнюю отметку, дошедшую до сцены.
	planMu    sync.Mutex
	wanted    uint64
	published atomic.Uint64
}

// NewStreamer создаёт подгрузчик чанков
func NewStreamer(m *Mesher, v *Visibility, cfg config.StreamConfig) *Streamer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	budget := cfg.BudgetPerSync
	if budget <= 0 {
		budget = 1
	}
	return &Streamer{
		mesher:     m,
		visibility: v,
		scene:      NewScene(),
		workers:    workers,
		budget:     budget,
		tracer:     otel.Tracer(tracerName),
		logger:     logging.GetChunkLogger(),
	}
}

// Scene возвращает публикуемую сцену
func (s *Streamer) Scene() *Scene { return s.scene }

// Visibility возвращает менеджер видимости
func (s *Streamer) Visibility() *Visibility { return s.visibility }

// Sync берёт снимок наблюдателя, строит до budget недостающих чанков и публикует их.
// Если контекст отменён или за время построения начался более новый Sync, результаты отбрасываются.
func (s *Streamer) Sync(ctx context.Context, viewer Viewer) (SyncResult, error) {
	gen := s.generation.Add(1)

	ctx, span := s.tracer.Start(ctx, "chunk.Sync")
	defer span.End()

	p := s.prepare(viewer)
	visible, todo := p.visible, p.todo
	res := SyncResult{Visible: len(visible), Pending: p.pending}
	span.SetAttributes(
		attribute.Int("chunk.visible", len(visible)),
		attribute.Int("chunk.todo", len(todo)),
		attribute.Bool("chunk.recomputed", p.recomputed),
	)

	// Пересчитанный набор, не дошедший до сцены, публикуется даже без новых чанков:
	// иначе выгрузка потерялась бы вместе с отброшенной синхронизацией.
	if len(todo) == 0 && p.mark <= s.published.Load() {
		syncTotal.WithLabelValues(syncIdle).Inc()
		return res, nil
	}

	built := make([]*Mesh, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, d := range todo {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			built[i] = s.build(gctx, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		syncTotal.WithLabelValues(syncCancelled).Inc()
		s.logger.Debug("Синхронизация %d отменена: %v", gen, err)
		return res, err
	}
	if err := ctx.Err(); err != nil {
		syncTotal.WithLabelValues(syncCancelled).Inc()
		return res, err
	}

	s.scene.mu.Lock()
	defer s.scene.mu.Unlock()

	if s.generation.Load() != gen {
		syncTotal.WithLabelValues(syncStale).Inc()
		s.logger.Debug("Синхронизация %d устарела, результаты отброшены", gen)
		return res, nil
	}

	wanted := make(map[Coord]struct{}, len(visible))
	for _, d := range visible {
		wanted[d.Coord] = struct{}{}
	}
	for c := range s.scene.entries {
		if _, ok := wanted[c]; !ok {
			delete(s.scene.entries, c)
			res.Evicted++
		}
	}
	for i, d := range todo {
		s.scene.entries[d.Coord] = Entry{LOD: d.LOD, Mesh: built[i]}
	}
	s.scene.version++
	if p.mark > s.published.Load() {
		s.published.Store(p.mark)
	}
	loadedChunks.Set(float64(len(s.scene.entries)))
	syncTotal.WithLabelValues(syncPublished).Inc()

	res.Built = len(todo)
	res.Published = true
	s.logger.Trace("Синхронизация %d: видимо=%d построено=%d выгружено=%d осталось=%d",
		gen, res.Visible, res.Built, res.Evicted, res.Pending)
	return res, nil
}

type syncPlan struct {
	visible    []Descriptor
	todo       []Descriptor
	pending    int
	recomputed bool
	mark       uint64
}

// prepare снимает набор видимости и план построения одной синхронизации
func (s *Streamer) prepare(viewer Viewer) syncPlan {
	s.planMu.Lock()
	defer s.planMu.Unlock()

	visible, recomputed := s.visibility.Update(viewer)
	if recomputed {
		s.wanted++
	}
	todo, pending := s.plan(visible)
	return syncPlan{
		visible:    visible,
		todo:       todo,
		pending:    pending,
		recomputed: recomputed,
		mark:       s.wanted,
	}
}

// plan выбирает ближайшие чанки, которых нет в сцене или которые опубликованы с другим LOD
func (s *Streamer) plan(visible []Descriptor) ([]Descriptor, int) {
	s.scene.mu.RLock()
	defer s.scene.mu.RUnlock()

	var todo []Descriptor
	pending := 0
	for _, d := range visible {
		if e, ok := s.scene.entries[d.Coord]; ok && e.LOD == d.LOD {
			continue
		}
		if len(todo) < s.budget {
			todo = append(todo, d)
		} else {
			pending++
		}
	}
	return todo, pending
}

func (s *Streamer) build(ctx context.Context, d Descriptor) *Mesh {
	_, span := s.tracer.Start(ctx, "chunk.Build", trace.WithAttributes(
		attribute.Int("chunk.x", d.X),
		attribute.Int("chunk.z", d.Z),
		attribute.String("chunk.lod", d.LOD.String()),
	))
	defer span.End()

	start := time.Now()
	mesh := s.mesher.Build(d.Coord, d.LOD)
	buildDuration.WithLabelValues(d.LOD.String()).Observe(time.Since(start).Seconds())

	if mesh != nil {
		instanceCount.WithLabelValues("solid").Observe(float64(len(mesh.Solid)))
		instanceCount.WithLabelValues("liquid").Observe(float64(len(mesh.Liquid)))
	}
	span.SetAttributes(attribute.Int("chunk.instances", mesh.Count()))
	return mesh
}
