package api

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/entity"
	"github.com/annel0/zoneworld/internal/physics"
	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// maxStepDuration наибольший промежуток, который можно продвинуть одним запросом
const maxStepDuration = 5.0

// ErrAgentNotFound возвращается для неизвестного ID сессии
var ErrAgentNotFound = errors.New("агент не найден")

// session владеет агентом и его интегратором; шаги сериализуются мьютексом
type session struct {
	mu         sync.Mutex
	agent      *entity.Agent
	integrator *entity.Integrator
}

// SessionStore хранит сессии агентов, которыми управляют через API
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	solidity physics.Solidity
	cfg      config.PhysicsConfig
}

// NewSessionStore создаёт хранилище сессий поверх предиката твёрдости мира
func NewSessionStore(solidity physics.Solidity, cfg config.PhysicsConfig) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		solidity: solidity,
		cfg:      cfg,
	}
}

// Create создаёт агента в позиции pos или в точке возрождения
func (s *SessionStore) Create(pos *mgl64.Vec3) entity.Snapshot {
	it := entity.NewIntegrator(s.cfg, s.solidity)
	start := it.Spawn()
	if pos != nil {
		start = *pos
	}
	sess := &session{
		agent:      entity.NewAgent(uuid.NewString(), start),
		integrator: it,
	}

	s.mu.Lock()
	s.sessions[sess.agent.ID] = sess
	s.mu.Unlock()

	return sess.agent.Snapshot()
}

// Get возвращает снимок агента
func (s *SessionStore) Get(id string) (entity.Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return entity.Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.agent.Snapshot(), nil
}

// Step продвигает агента на dt секунд и возвращает новый снимок и число шагов
func (s *SessionStore) Step(id string, in entity.Input, dt float64) (entity.Snapshot, int, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return entity.Snapshot{}, 0, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	n := sess.integrator.Advance(sess.agent, in, dt)
	return sess.agent.Snapshot(), n, nil
}

// Delete удаляет сессию
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	sess, exists := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !exists {
		return ErrAgentNotFound
	}

	sess.mu.Lock()
	sess.integrator.Close()
	sess.mu.Unlock()
	return nil
}

// List возвращает снимки всех агентов, упорядоченные по ID
func (s *SessionStore) List() []entity.Snapshot {
	s.mu.RLock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	out := make([]entity.Snapshot, 0, len(all))
	for _, sess := range all {
		sess.mu.Lock()
		out = append(out, sess.agent.Snapshot())
		sess.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len возвращает число сессий
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrAgentNotFound
	}
	return sess, nil
}

// CreateAgentRequest описывает тело POST /api/agents; позиция необязательна
type CreateAgentRequest struct {
	Position *mgl64.Vec3 `json:"position"`
}

// StepRequest описывает тело POST /api/agents/:id/step
type StepRequest struct {
	Input entity.Input `json:"input"`
	Dt    float64      `json:"dt"`
}

func (rs *RestServer) handleCreateAgent(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}

	snap := rs.agents.Create(req.Position)
	rs.logger.Info("🧍 Агент %s создан в %v", snap.ID, snap.Position)
	c.JSON(http.StatusCreated, GenericResponse{
		Success: true,
		Message: "Агент создан",
		Data:    snap,
	})
}

func (rs *RestServer) handleListAgents(c *gin.Context) {
	agents := rs.agents.List()
	ok(c, "Список агентов", gin.H{
		"agents": agents,
		"total":  len(agents),
	})
}

func (rs *RestServer) handleGetAgent(c *gin.Context) {
	snap, err := rs.agents.Get(c.Param("id"))
	if err != nil {
		rs.agentError(c, err)
		return
	}
	ok(c, "Агент найден", snap)
}

// handleStepAgent продвигает агента: dt в секундах, от 0 до maxStepDuration
func (rs *RestServer) handleStepAgent(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	if req.Dt <= 0 || req.Dt > maxStepDuration {
		fail(c, http.StatusBadRequest, "dt должен быть в (0, 5] секунд")
		return
	}

	snap, steps, err := rs.agents.Step(c.Param("id"), req.Input, req.Dt)
	if err != nil {
		rs.agentError(c, err)
		return
	}
	ok(c, "Шаг выполнен", gin.H{
		"agent": snap,
		"steps": steps,
	})
}

func (rs *RestServer) handleDeleteAgent(c *gin.Context) {
	if err := rs.agents.Delete(c.Param("id")); err != nil {
		rs.agentError(c, err)
		return
	}
	ok(c, "Агент удалён", nil)
}

func (rs *RestServer) agentError(c *gin.Context, err error) {
	if errors.Is(err, ErrAgentNotFound) {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	fail(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
}
