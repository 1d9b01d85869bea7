package entity

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Agent хранит кинематическое состояние агента от первого лица.
// Position задаёт уровень глаз, ноги на высоту роста ниже.
// Меняется только интегратором; читатели получают копию через Snapshot.
type Agent struct {
	ID       string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
	State    State
}

// Snapshot содержит неизменяемую копию состояния агента
type Snapshot struct {
	ID       string     `json:"id"`
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	Grounded bool       `json:"grounded"`
	State    string     `json:"state"`
}

// NewAgent создаёт агента в воздухе в указанной позиции
func NewAgent(id string, pos mgl64.Vec3) *Agent {
	a := &Agent{ID: id, Position: pos}
	a.SetState(AirborneState{})
	return a
}

// Update продвигает конечный автомат на один шаг
func (a *Agent) Update(env Env) {
	if a.State == nil {
		a.SetState(AirborneState{})
	}
	newState := a.State.Update(a, env)
	if newState != a.State {
		a.State.Exit(a)
		a.State = newState
		a.State.Enter(a)
	}
}

// SetState устанавливает новое состояние агента
func (a *Agent) SetState(state State) {
	if a.State != nil {
		a.State.Exit(a)
	}

	a.State = state

	if a.State != nil {
		a.State.Enter(a)
	}
}

// StateName возвращает имя текущего состояния
func (a *Agent) StateName() string {
	if a.State == nil {
		return ""
	}
	return a.State.Name()
}

// Snapshot возвращает копию состояния
func (a *Agent) Snapshot() Snapshot {
	return Snapshot{
		ID:       a.ID,
		Position: a.Position,
		Velocity: a.Velocity,
		Grounded: a.Grounded,
		State:    a.StateName(),
	}
}

// Input описывает состояние управления на один шаг
type Input struct {
	Forward  bool       `json:"forward"`
	Backward bool       `json:"backward"`
	Left     bool       `json:"left"`
	Right    bool       `json:"right"`
	Jump     bool       `json:"jump"`
	Sprint   bool       `json:"sprint"`
	Facing   mgl64.Vec3 `json:"facing"` // Направление камеры; вертикальная составляющая не учитывается
}

// Direction возвращает единичное направление движения в мировых координатах
// или нулевой вектор, если клавиши движения не нажаты
func (in Input) Direction() mgl64.Vec3 {
	forward := mgl64.Vec3{in.Facing.X(), 0, in.Facing.Z()}
	if forward.Len() < 1e-9 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right := mgl64.Vec3{-forward.Z(), 0, forward.X()}

	var f, r float64
	if in.Forward {
		f++
	}
	if in.Backward {
		f--
	}
	if in.Right {
		r++
	}
	if in.Left {
		r--
	}

	dir := forward.Mul(f).Add(right.Mul(r))
	if dir.Len() < 1e-9 {
		return mgl64.Vec3{}
	}
	return dir.Normalize()
}
