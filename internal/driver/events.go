package driver

// Status отражает стадию обработки одного файла внутри прогона fmt.
type Status uint8

const (
	StatusQueued Status = iota
	StatusFormatting
	StatusUnchanged
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusFormatting:
		return "formatting"
	case StatusUnchanged:
		return "unchanged"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event is emitted on every status change of a file during formatting.
// Consumers receive events over a channel; the producer closes it when
// the whole run is finished.
type Event struct {
	Path   string
	Status Status
}
