package sim

type EventType int

const (
	EventCountdown EventType = iota // Value: digit shown
	EventGo
	EventLapCompleted // Value: lap number, Time: lap time
	EventBestLap      // Time: new best
	EventCollision    // X/Z: contact point
	EventGearShift    // Value: new gear
	EventOffTrack
	EventRaceFinished // Value: final position, Time: total time
	EventReset
)

type Event struct {
	Type    EventType
	Vehicle VehicleID
	X, Z    float64
	Value   int
	Time    float64
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
