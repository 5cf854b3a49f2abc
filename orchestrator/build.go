package orchestrator

import (
	"fmt"

	"github.com/beltrewilton/audeeremodb/audformat"
	cfg "github.com/beltrewilton/audeeremodb/config"
	"github.com/beltrewilton/audeeremodb/corpus"
)

const (
	tableFiles   = "files"
	tableEmotion = "emotion"
	tableSpeaker = "speaker"

	colSpeaker       = "speaker"
	colTranscription = "transcription"
	colEmotion       = "emotion"
	colConfidence    = "emotion.confidence"

	raterGold = "gold"
)

const speakerDescription = "The actors could produce each sentence as often as " +
	"they liked and were asked to remember a real " +
	"situation from their past when they had felt this " +
	"emotion."

// buildDatabase declares media, rater and schemes and fills the speaker,
// files and emotion tables from records.
func buildDatabase(records []Record, c *cfg.Root) (*audformat.Database, error) {
	db := audformat.New(c.Pipeline.Name, c.Source.URL, audformat.UsageUnrestricted, corpus.Language)
	db.Description = corpus.Description
	db.Meta["pdf"] = corpus.PaperURL

	db.Media["microphone"] = audformat.Media{
		Type:         "audio",
		Format:       c.Media.Format,
		SamplingRate: c.Media.SampleRate,
		Channels:     c.Media.Channels,
	}
	db.Raters[raterGold] = audformat.Rater{Type: audformat.RaterHuman}

	texts := make(map[string]string, len(corpus.TranscriptionMapping))
	textCodes := make([]string, 0, len(corpus.TranscriptionMapping))
	for _, t := range corpus.TranscriptionMapping {
		texts[t.Key] = t.Value
		textCodes = append(textCodes, t.Key)
	}
	db.Schemes["emotion"] = &audformat.Scheme{
		Dtype:       audformat.DtypeStr,
		Labels:      audformat.LabelList(corpus.Values(corpus.EmotionMapping)...),
		Description: "Six basic emotions and neutral.",
	}
	db.Schemes["confidence"] = &audformat.Scheme{
		Dtype:       audformat.DtypeFloat,
		Minimum:     audformat.Bound(0),
		Maximum:     audformat.Bound(1),
		Description: "Confidence of emotion ratings.",
	}
	db.Schemes["age"] = &audformat.Scheme{
		Dtype:       audformat.DtypeInt,
		Minimum:     audformat.Bound(0),
		Description: "Age of speaker",
	}
	db.Schemes["gender"] = &audformat.Scheme{
		Dtype:       audformat.DtypeStr,
		Labels:      audformat.LabelList(corpus.Genders...),
		Description: "Gender of speaker",
	}
	db.Schemes["language"] = &audformat.Scheme{
		Dtype:       audformat.DtypeStr,
		Description: "Language of speaker",
	}
	db.Schemes["transcription"] = &audformat.Scheme{
		Dtype:       audformat.DtypeStr,
		Labels:      audformat.LabelDict(textCodes, texts),
		Description: "Sentence produced by actor.",
	}
	db.Schemes["speaker"] = &audformat.Scheme{
		Dtype:       audformat.DtypeInt,
		Labels:      audformat.LabelTable(tableSpeaker),
		Description: speakerDescription,
	}

	speaker, err := speakerTable()
	if err != nil {
		return nil, err
	}
	if err := db.AddMiscTable(tableSpeaker, speaker); err != nil {
		return nil, err
	}

	files := make([]string, len(records))
	speakers := make([]int, len(records))
	transcriptions := make([]string, len(records))
	emotions := make([]string, len(records))
	confidences := make([]float64, len(records))
	for i, r := range records {
		files[i] = r.File
		speakers[i] = r.Speaker
		transcriptions[i] = r.Transcription
		emotions[i] = r.Emotion
		confidences[i] = r.Confidence
	}

	filesTable := audformat.NewFilewiseTable(files)
	if _, err := filesTable.AddColumn(colSpeaker, "speaker", "", audformat.Values(speakers)); err != nil {
		return nil, err
	}
	if _, err := filesTable.AddColumn(colTranscription, "transcription", "", audformat.Values(transcriptions)); err != nil {
		return nil, err
	}
	if err := db.AddTable(tableFiles, filesTable); err != nil {
		return nil, err
	}

	emotionTable := audformat.NewFilewiseTable(files)
	if _, err := emotionTable.AddColumn(colEmotion, "emotion", raterGold, audformat.Values(emotions)); err != nil {
		return nil, err
	}
	if _, err := emotionTable.AddColumn(colConfidence, "confidence", raterGold, audformat.Values(confidences)); err != nil {
		return nil, err
	}
	if err := db.AddTable(tableEmotion, emotionTable); err != nil {
		return nil, err
	}

	if err := db.Validate(); err != nil {
		return nil, fmt.Errorf("assemble database: %w", err)
	}
	return db, nil
}

func speakerTable() (*audformat.Table, error) {
	n := len(corpus.SpeakerTable)
	ids := make([]int, 0, n)
	ages := make([]int, 0, n)
	genders := make([]string, 0, n)
	languages := make([]string, 0, n)
	for _, s := range corpus.SpeakerTable {
		ids = append(ids, s.ID)
		ages = append(ages, s.Age)
		genders = append(genders, string(s.Gender))
		languages = append(languages, s.Language)
	}
	t := audformat.NewMiscTable(tableSpeaker, audformat.DtypeInt, audformat.Values(ids))
	for _, col := range []struct {
		id     string
		values []any
	}{
		{"age", audformat.Values(ages)},
		{"gender", audformat.Values(genders)},
		{"language", audformat.Values(languages)},
	} {
		if _, err := t.AddColumn(col.id, col.id, "", col.values); err != nil {
			return nil, err
		}
	}
	return t, nil
}
