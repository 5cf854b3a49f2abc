package corpus

// Source is the download location of the distribution archive.
const Source = "http://emodb.bilderbar.info/download/download.zip"

// PaperURL points at the paper describing the recordings.
const PaperURL = "http://citeseerx.ist.psu.edu/viewdoc/download?doi=10.1.1.130.8506&rep=rep1&type=pdf"

// Language is the ISO 639-3 code shared by every speaker.
const Language = "deu"

const Description = "Berlin Database of Emotional Speech. " +
	"A German database of emotional utterances " +
	"spoken by actors " +
	"recorded as a part of the DFG funded research project " +
	"SE462/3-1 in 1997 and 1999. " +
	"Recordings took place in the anechoic chamber " +
	"of the Technical University Berlin, " +
	"department of Technical Acoustics. " +
	"It contains about 500 utterances " +
	"from ten different actors " +
	"expressing basic six emotions and neutral."

// Character offsets of the codes inside a file name such as 03a01Wa.
const (
	speakerFrom, speakerTo             = 0, 2
	transcriptionFrom, transcriptionTo = 2, 5
	emotionFrom, emotionTo             = 5, 6
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Genders lists the gender labels in scheme order.
var Genders = []string{string(Female), string(Male)}

type Speaker struct {
	ID       int
	Age      int
	Gender   Gender
	Language string
}

// SpeakerTable is ordered by speaker id.
var SpeakerTable = []Speaker{
	{ID: 3, Age: 31, Gender: Male, Language: Language},
	{ID: 8, Age: 34, Gender: Female, Language: Language},
	{ID: 9, Age: 21, Gender: Female, Language: Language},
	{ID: 10, Age: 32, Gender: Male, Language: Language},
	{ID: 11, Age: 26, Gender: Male, Language: Language},
	{ID: 12, Age: 30, Gender: Male, Language: Language},
	{ID: 13, Age: 32, Gender: Female, Language: Language},
	{ID: 14, Age: 35, Gender: Female, Language: Language},
	{ID: 15, Age: 25, Gender: Male, Language: Language},
	{ID: 16, Age: 31, Gender: Female, Language: Language},
}

func knownSpeaker(id int) bool {
	for _, s := range SpeakerTable {
		if s.ID == id {
			return true
		}
	}
	return false
}

type Code struct {
	Key   string
	Value string
}

// EmotionMapping maps the single letter emotion code (German initial) to its
// English label. Order is the order of the emotion scheme labels.
var EmotionMapping = []Code{
	{"W", "anger"},
	{"L", "boredom"},
	{"E", "disgust"},
	{"A", "fear"},
	{"F", "happiness"},
	{"T", "sadness"},
	{"N", "neutral"},
}

// TranscriptionMapping maps the three character text code to the sentence
// the actor produced.
var TranscriptionMapping = []Code{
	{"a01", "Der Lappen liegt auf dem Eisschrank."},
	{"a02", "Das will sie am Mittwoch abgeben."},
	{"a04", "Heute abend könnte ich es ihm sagen."},
	{"a05", "Das schwarze Stück Papier befindet sich da oben neben dem Holzstück."},
	{"a07", "In sieben Stunden wird es soweit sein."},
	{"b01", "Was sind denn das für Tüten, die da unter dem Tisch stehen."},
	{"b02", "Sie haben es gerade hochgetragen und jetzt gehen sie wieder runter."},
	{"b03", "An den Wochenenden bin ich jetzt immer nach Hause gefahren und habe Agnes besucht."},
	{"b09", "Ich will das eben wegbringen und dann mit Karl was trinken gehen."},
	{"b10", "Die wird auf dem Platz sein, wo wir sie immer hinlegen."},
}

func lookup(codes []Code) map[string]string {
	m := make(map[string]string, len(codes))
	for _, c := range codes {
		m[c.Key] = c.Value
	}
	return m
}

// Values returns the mapped values in declaration order.
func Values(codes []Code) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.Value)
	}
	return out
}
