package wave

// State is the lifecycle state of the wave director.
type State int32

const (
	StateIdle State = iota
	StateWaveActive
	StateWaveComplete
	StateRestCountdown
	StateNextWaveCountdown
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWaveActive:
		return "WAVE_ACTIVE"
	case StateWaveComplete:
		return "WAVE_COMPLETE"
	case StateRestCountdown:
		return "REST_COUNTDOWN"
	case StateNextWaveCountdown:
		return "NEXT_WAVE_COUNTDOWN"
	default:
		return "UNKNOWN"
	}
}
