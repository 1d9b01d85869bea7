package entity

// State представляет состояние конечного автомата опоры
type State interface {
	Name() string
	Enter(agent *Agent)
	Update(agent *Agent, env Env) State
	Exit(agent *Agent)
}

// Env содержит условия одного шага, которые видит состояние
type Env struct {
	Grounded  bool    // Под ногами есть опора
	Jump      bool    // Запрошен прыжок
	Dt        float64 // Длительность шага в секундах
	Gravity   float64
	JumpForce float64
}

// Имена состояний
const (
	StateGrounded = "grounded"
	StateAirborne = "airborne"
)

// === Конкретные состояния ===

// GroundedState: агент стоит на опоре
type GroundedState struct{}

// Name возвращает имя состояния
func (GroundedState) Name() string { return StateGrounded }

// Enter гасит остаток скорости падения при приземлении
func (GroundedState) Enter(agent *Agent) {
	agent.Grounded = true
	if agent.Velocity[1] < 0 {
		agent.Velocity[1] = 0
	}
}

// Update обрабатывает прыжок и сход с опоры
func (s GroundedState) Update(agent *Agent, env Env) State {
	if env.Jump {
		agent.Velocity[1] = env.JumpForce
		return AirborneState{}
	}
	if !env.Grounded {
		return AirborneState{}
	}
	if agent.Velocity[1] < 0 {
		agent.Velocity[1] = 0
	}
	return s
}

func (GroundedState) Exit(agent *Agent) {
	agent.Grounded = false
}

// AirborneState: агент в воздухе, действует гравитация
type AirborneState struct{}

// Name возвращает имя состояния
func (AirborneState) Name() string { return StateAirborne }

func (AirborneState) Enter(agent *Agent) {
	agent.Grounded = false
}

// Update применяет гравитацию; прыжок в воздухе игнорируется
func (s AirborneState) Update(agent *Agent, env Env) State {
	if env.Grounded && agent.Velocity[1] <= 0 {
		return GroundedState{}
	}
	agent.Velocity[1] -= env.Gravity * env.Dt
	return s
}

func (AirborneState) Exit(agent *Agent) {
	// Ничего не делаем при выходе
}
