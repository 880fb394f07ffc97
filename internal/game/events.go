package game

// EventType discriminates the events a session emits.
type EventType int

const (
	EventRoundStarted EventType = iota
	EventTilePlaced
	EventTileRemoved
	EventHintRevealed
	EventSolveCorrect
	EventSolveIncorrect
	EventBankRefilled
)

// Event is the tagged union of everything a session can announce.
// Consumers type-switch on the concrete event after registering for its
// type; producers never know who is listening.
type Event interface {
	Type() EventType
}

// RoundStarted is emitted when a new word is dealt.
type RoundStarted struct {
	Word      string
	Scrambled string
}

// TilePlaced is emitted after a tile lands in a slot.
type TilePlaced struct {
	TileID int
	Slot   int
	Letter rune
}

// TileRemoved is emitted after a slot is cleared back to the pool.
type TileRemoved struct {
	TileID int
	Slot   int
}

// HintRevealed is emitted when the first letter is given away.
type HintRevealed struct {
	Hint Hint
}

// SolveCorrect is emitted on a winning answer check.
type SolveCorrect struct {
	Word     string
	Points   int
	Total    int
	HintUsed bool
}

// SolveIncorrect is emitted when a complete answer does not match.
type SolveIncorrect struct {
	Word   string
	Answer string
}

// BankRefilled is emitted when a draw exhausted the bank and the pool
// was restocked from the full list.
type BankRefilled struct {
	Size int
}

func (RoundStarted) Type() EventType   { return EventRoundStarted }
func (TilePlaced) Type() EventType     { return EventTilePlaced }
func (TileRemoved) Type() EventType    { return EventTileRemoved }
func (HintRevealed) Type() EventType   { return EventHintRevealed }
func (SolveCorrect) Type() EventType   { return EventSolveCorrect }
func (SolveIncorrect) Type() EventType { return EventSolveIncorrect }
func (BankRefilled) Type() EventType   { return EventBankRefilled }

// Handler receives events of the type it subscribed for.
type Handler func(Event)

// Dispatcher is a per-type dispatch table. Handlers run synchronously in
// registration order on the caller's goroutine.
type Dispatcher struct {
	handlers map[EventType][]Handler
}

// NewDispatcher creates an empty dispatch table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for one event type.
func (d *Dispatcher) Subscribe(t EventType, h Handler) {
	d.handlers[t] = append(d.handlers[t], h)
}

func (d *Dispatcher) publish(e Event) {
	for _, h := range d.handlers[e.Type()] {
		h(e)
	}
}
