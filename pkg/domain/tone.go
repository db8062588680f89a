package domain

// Tone is the categorical attribute of a guide that selects its welcome message.
type Tone string

const (
	ToneWarm       Tone = "warm"
	TonePoetic     Tone = "poetic"
	ToneStoic      Tone = "stoic"
	TonePlayful    Tone = "playful"
	ToneMysterious Tone = "mysterious"
)

// Tones returns the closed set of known tones in a stable order.
func Tones() []Tone {
	return []Tone{ToneWarm, TonePoetic, ToneStoic, TonePlayful, ToneMysterious}
}

// Valid reports whether t belongs to the closed set of known tones.
func (t Tone) Valid() bool {
	for _, known := range Tones() {
		if t == known {
			return true
		}
	}
	return false
}

// Message is the fixed title/body pair shown at reveal time.
type Message struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// IsZero reports whether the message has no content.
func (m Message) IsZero() bool {
	return m.Title == "" && m.Body == ""
}
