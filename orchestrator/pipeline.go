package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/beltrewilton/audeeremodb/audformat"
	"github.com/beltrewilton/audeeremodb/clients"
	cfg "github.com/beltrewilton/audeeremodb/config"
	"github.com/beltrewilton/audeeremodb/corpus"
)

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	log  logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		cfg:  c,
		http: clients.NewHTTP(cfg.DurSeconds(c.Source.Timeout), log),
		log:  log,
	}
}

// HTTP exposes the download client, e.g. to silence its progress bar.
func (p *Pipeline) HTTP() *clients.HTTP { return p.http }

// Run acquires the corpus, derives every annotation, and writes the
// database into the output directory. Any inconsistency aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	fetched, err := p.http.Acquire(ctx, clients.Source{
		URL:     p.cfg.Source.URL,
		Archive: p.cfg.Source.Archive,
		Dir:     p.cfg.Source.Dir,
	})
	if err != nil {
		return nil, fmt.Errorf("acquire corpus: %w", err)
	}

	records, err := p.collect()
	if err != nil {
		return nil, err
	}
	p.log.WithField("files", len(records)).Info("annotations derived")

	mismatches := 0
	if p.cfg.Media.Verify {
		if mismatches, err = p.verifyMedia(records); err != nil {
			return nil, err
		}
	}

	db, err := buildDatabase(records, p.cfg)
	if err != nil {
		return nil, err
	}
	if err := p.persist(ctx, db); err != nil {
		return nil, err
	}

	sum, err := Summarize(db)
	if err != nil {
		return nil, err
	}
	sum.OutputDir = p.cfg.Paths.Outputs
	sum.Fetched = fetched
	sum.MediaMismatches = mismatches
	p.log.WithFields(logrus.Fields{
		"dir":      sum.OutputDir,
		"files":    sum.Files,
		"speakers": sum.Speakers,
	}).Info("database written")
	return sum, nil
}

// collect lists the audio files and derives speaker, text code, emotion and
// confidence for each of them.
func (p *Pipeline) collect() ([]Record, error) {
	files, err := corpus.ListFiles(p.cfg.Source.Dir, p.cfg.Source.Audio)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no audio files in corpus source")
	}
	names := corpus.Names(files)

	speakers, err := corpus.Speakers(names)
	if err != nil {
		return nil, err
	}
	texts, err := corpus.TranscriptionCodes(names)
	if err != nil {
		return nil, err
	}
	emotions, err := corpus.Emotions(names)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p.cfg.TableFile())
	if err != nil {
		return nil, fmt.Errorf("confidence table: %w", err)
	}
	defer f.Close()
	confidences, err := corpus.LoadConfidences(f, p.cfg.Source.Audio, files)
	if err != nil {
		return nil, fmt.Errorf("confidence table: %w", err)
	}

	records := make([]Record, len(files))
	for i, file := range files {
		records[i] = Record{
			File:          file,
			Speaker:       speakers[i],
			Transcription: texts[i],
			Emotion:       emotions[i],
			Confidence:    confidences[i],
		}
	}
	p.log.WithFields(logrus.Fields{
		"files": len(files),
		"table": p.cfg.TableFile(),
	}).Debug("confidence table aligned")
	return records, nil
}

// verifyMedia compares every file header with the declared media. Unreadable
// headers are fatal; format differences are reported and counted.
func (p *Pipeline) verifyMedia(records []Record) (int, error) {
	mismatches := 0
	for _, r := range records {
		info, err := clients.ProbeWAV(sourcePath(p.cfg.Source.Dir, r.File))
		if err != nil {
			return 0, err
		}
		if info.SampleRate != p.cfg.Media.SampleRate || info.Channels != p.cfg.Media.Channels {
			mismatches++
			p.log.WithFields(logrus.Fields{
				"file":        r.File,
				"sample_rate": info.SampleRate,
				"channels":    info.Channels,
			}).Warn("media format differs from declaration")
		}
	}
	return mismatches, nil
}

// Summarize counts what a database holds. It works on freshly built and on
// loaded databases alike.
func Summarize(db *audformat.Database) (*Summary, error) {
	emotion, ok := db.Tables[tableEmotion]
	if !ok {
		return nil, fmt.Errorf("database has no %s table", tableEmotion)
	}
	files, ok := db.Tables[tableFiles]
	if !ok {
		return nil, fmt.Errorf("database has no %s table", tableFiles)
	}
	labels, err := columnAs[string](emotion, colEmotion)
	if err != nil {
		return nil, err
	}
	confidences, err := columnAs[float64](emotion, colConfidence)
	if err != nil {
		return nil, err
	}
	speakers, err := columnAs[int](files, colSpeaker)
	if err != nil {
		return nil, err
	}
	texts, err := columnAs[string](files, colTranscription)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Files:     files.Len(),
		Speakers:  len(countInts(speakers)),
		Emotions:  countStrings(labels),
		Sentences: countStrings(texts),
	}
	sum.Confidence.Min, sum.Confidence.Mean, sum.Confidence.Max = spread(confidences)
	return sum, nil
}

func columnAs[T any](t *audformat.Table, id string) ([]T, error) {
	c := t.Column(id)
	if c == nil {
		return nil, fmt.Errorf("column %s missing", id)
	}
	out, err := audformat.As[T](c.Values)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", id, err)
	}
	return out, nil
}
