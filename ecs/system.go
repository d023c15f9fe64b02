package ecs

// System is one step of a frame. Systems may declare Query and Singleton
// fields; the Scheduler wires them on Register and refreshes every query
// before the system runs. Any other fields are left alone and keep their
// values between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during one Scheduler.Once call.
// Structural changes (spawns, deletes) must go through Commands; they are
// applied after the last system returns.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  &Commands{},
		Storage:   storage,
	}
}
