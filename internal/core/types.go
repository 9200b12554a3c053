package core

// Sim defines the minimal contract an interactive simulation must implement so
// the app can drive it one tick at a time.
type Sim interface {
	Name() string
	Reset(seed int64)
	// Step advances exactly one tick. On error the simulation state is
	// unchanged and the caller may keep presenting the previous frame.
	Step() error
	Tick() int
}
