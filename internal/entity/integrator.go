package entity

import (
	"math"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"github.com/annel0/zoneworld/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Integrator продвигает агентов по миру: ввод, опора, гравитация и
// поосевое разрешение столкновений со ступенькой.
// Один интегратор обслуживает агентов последовательно.
type Integrator struct {
	cfg      config.PhysicsConfig
	collider *physics.Collider
	solidity physics.Solidity
	cache    *physics.CachedSolidity
	steps    int
	logger   *logging.Logger
}

// NewIntegrator создаёт интегратор поверх предиката твёрдости.
// При включённом кэше предикат оборачивается в CachedSolidity.
func NewIntegrator(cfg config.PhysicsConfig, solidity physics.Solidity) *Integrator {
	it := &Integrator{
		cfg:      cfg,
		collider: physics.NewCollider(cfg.PlayerRadius, cfg.PlayerHeight),
		solidity: solidity,
		logger:   logging.GetPhysicsLogger(),
	}
	if cfg.SolidityCache {
		it.solidity = physics.NewCachedSolidity(solidity, 0)
		it.cache, _ = it.solidity.(*physics.CachedSolidity)
	}
	return it
}

// Collider возвращает коллайдер агента
func (it *Integrator) Collider() *physics.Collider { return it.collider }

// Spawn возвращает точку возрождения
func (it *Integrator) Spawn() mgl64.Vec3 {
	return mgl64.Vec3{it.cfg.SpawnX, it.cfg.SpawnY, it.cfg.SpawnZ}
}

// CacheStats возвращает счётчики кэша твёрдости, если он включён
func (it *Integrator) CacheStats() (physics.CacheStats, bool) {
	if it.cache == nil {
		return physics.CacheStats{}, false
	}
	return it.cache.Stats(), true
}

// Close освобождает кэш твёрдости
func (it *Integrator) Close() {
	if it.cache != nil {
		it.cache.Close()
	}
}

// Advance продвигает агента на dt секунд шагами не длиннее FixedStep.
// Возвращает число выполненных шагов.
func (it *Integrator) Advance(agent *Agent, in Input, dt float64) int {
	if dt <= 0 {
		return 0
	}
	n := 1
	if it.cfg.FixedStep > 0 {
		n = int(math.Ceil(dt/it.cfg.FixedStep - 1e-9))
	}
	step := dt / float64(n)
	for i := 0; i < n; i++ {
		it.Step(agent, in, step)
	}
	return n
}

// Step выполняет один шаг симуляции
func (it *Integrator) Step(agent *Agent, in Input, dt float64) {
	if dt <= 0 {
		return
	}
	it.tick()

	it.applyInput(agent, in, dt)

	agent.Update(Env{
		Grounded:  it.collider.Grounded(it.solidity, agent.Position),
		Jump:      in.Jump,
		Dt:        dt,
		Gravity:   it.cfg.Gravity,
		JumpForce: it.cfg.JumpForce,
	})

	it.moveHorizontal(agent, 0, agent.Velocity.X()*dt)
	it.moveHorizontal(agent, 2, agent.Velocity.Z()*dt)
	it.moveVertical(agent, agent.Velocity.Y()*dt)

	if agent.Position.Y() < it.cfg.VoidY {
		it.logger.Debug("Агент %s упал ниже %.1f, возврат на точку возрождения", agent.ID, it.cfg.VoidY)
		agent.Position = it.Spawn()
		agent.Velocity = mgl64.Vec3{}
		agent.SetState(AirborneState{})
	}
}

// tick сбрасывает кэш твёрдости с заданной периодичностью
func (it *Integrator) tick() {
	it.steps++
	if it.cache != nil && it.cfg.CacheClearEvery > 0 && it.steps%it.cfg.CacheClearEvery == 0 {
		it.cache.Clear()
	}
}

func (it *Integrator) applyInput(agent *Agent, in Input, dt float64) {
	dir := in.Direction()
	if dir.Len() == 0 {
		k := math.Max(0, 1-it.cfg.Friction*dt)
		agent.Velocity[0] *= k
		agent.Velocity[2] *= k
		return
	}

	speed := it.cfg.MoveSpeed
	if in.Sprint {
		speed *= it.cfg.SprintMultiplier
	}
	agent.Velocity[0] = dir.X() * speed
	agent.Velocity[2] = dir.Z() * speed
}

// moveHorizontal сдвигает агента вдоль оси X (0) или Z (2).
// При столкновении пробует подняться на ступеньку, иначе откатывает смещение и гасит скорость по оси.
func (it *Integrator) moveHorizontal(agent *Agent, axis int, d float64) {
	if d == 0 {
		return
	}
	next := agent.Position
	next[axis] += d
	if !it.collider.Collides(it.solidity, next) {
		agent.Position = next
		return
	}

	if it.cfg.StepHeight > 0 {
		raised := next
		raised[1] += it.cfg.StepHeight
		if !it.collider.Collides(it.solidity, raised) && it.collider.SolidBelow(it.solidity, agent.Position) {
			agent.Position = raised
			return
		}
	}
	agent.Velocity[axis] = 0
}

func (it *Integrator) moveVertical(agent *Agent, d float64) {
	switch {
	case d < 0:
		y, hit := it.collider.SweepDown(it.solidity, agent.Position, agent.Position.Y()+d)
		agent.Position[1] = y
		if hit {
			agent.Velocity[1] = 0
			if _, grounded := agent.State.(GroundedState); !grounded {
				agent.SetState(GroundedState{})
			}
		}
	case d > 0:
		y, hit := it.collider.SweepUp(it.solidity, agent.Position, agent.Position.Y()+d)
		agent.Position[1] = y
		if hit {
			agent.Velocity[1] = 0
		}
	}
}
