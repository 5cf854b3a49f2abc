package orchestrator

// Record is everything derived for one audio file.
type Record struct {
	File          string  // relative path, e.g. wav/03a01Wa.wav
	Speaker       int     // actor id
	Transcription string  // text code, e.g. a01
	Emotion       string  // label, e.g. anger
	Confidence    float64 // share of listeners recognising Emotion, 0..1
}

type Summary struct {
	OutputDir  string
	Fetched    bool // corpus was downloaded during this run
	Files      int
	Speakers   int
	Emotions   map[string]int
	Sentences  map[string]int
	Confidence struct {
		Min, Mean, Max float64
	}
	MediaMismatches int
}
