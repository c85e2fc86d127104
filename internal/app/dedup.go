package app

// Slot selects which remembered message a notification is compared against.
type Slot int

const (
	SlotStatus Slot = iota
	SlotError
)

// DedupMode decides whether status and error messages share one slot.
type DedupMode string

const (
	DedupSingle DedupMode = "single"
	DedupSplit  DedupMode = "split"
)

// Deduper remembers the last message sent per slot. In single mode both
// slots alias the same value, so an error can suppress an identical later
// error but never an unrelated status message.
type Deduper struct {
	mode        DedupMode
	lastStatus  string
	lastFailure string
}

func NewDeduper(mode DedupMode) *Deduper {
	if mode != DedupSplit {
		mode = DedupSingle
	}
	return &Deduper{mode: mode}
}

// ShouldSend reports whether msg differs from what the slot last held.
func (d *Deduper) ShouldSend(slot Slot, msg string) bool {
	return *d.slot(slot) != msg
}

// Remember stores msg as the last message of the slot.
func (d *Deduper) Remember(slot Slot, msg string) {
	*d.slot(slot) = msg
}

// Last returns the remembered status and error messages.
// In single mode both values are the same.
func (d *Deduper) Last() (status, failure string) {
	return *d.slot(SlotStatus), *d.slot(SlotError)
}

// Restore loads remembered messages, e.g. from a checkpoint.
func (d *Deduper) Restore(status, failure string) {
	d.lastStatus = status
	if d.mode == DedupSplit {
		d.lastFailure = failure
	}
}

func (d *Deduper) Mode() DedupMode { return d.mode }

func (d *Deduper) slot(s Slot) *string {
	if s == SlotError && d.mode == DedupSplit {
		return &d.lastFailure
	}
	return &d.lastStatus
}
