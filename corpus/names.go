package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ParseNames slices name[from:to] out of every name and converts it with
// conv. The first failure aborts the whole sequence: an unparsable name
// means the archive layout is not the one these tables describe.
func ParseNames[T any](names []string, field string, from, to int, conv func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, name := range names {
		if len(name) < to {
			return nil, &FieldError{Name: name, Field: field, Code: name, Err: ErrMalformedName}
		}
		key := name[from:to]
		v, err := conv(key)
		if err != nil {
			return nil, &FieldError{Name: name, Field: field, Code: key, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func mapped(codes []Code) func(string) (string, error) {
	m := lookup(codes)
	return func(key string) (string, error) {
		v, ok := m[key]
		if !ok {
			return "", ErrUnmappedCode
		}
		return v, nil
	}
}

func speakerID(key string) (int, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return 0, ErrMalformedName
	}
	if !knownSpeaker(id) {
		return 0, ErrUnmappedCode
	}
	return id, nil
}

// Speakers returns the speaker id of every name.
func Speakers(names []string) ([]int, error) {
	return ParseNames(names, "speaker", speakerFrom, speakerTo, speakerID)
}

// Emotions returns the emotion label of every name.
func Emotions(names []string) ([]string, error) {
	return ParseNames(names, "emotion", emotionFrom, emotionTo, mapped(EmotionMapping))
}

// TranscriptionCodes returns the text code of every name. The files table
// stores codes; the transcription scheme carries the sentences.
func TranscriptionCodes(names []string) ([]string, error) {
	m := lookup(TranscriptionMapping)
	return ParseNames(names, "transcription", transcriptionFrom, transcriptionTo, func(key string) (string, error) {
		if _, ok := m[key]; !ok {
			return "", ErrUnmappedCode
		}
		return key, nil
	})
}

// Transcriptions returns the sentence spoken in every name.
func Transcriptions(names []string) ([]string, error) {
	return ParseNames(names, "transcription", transcriptionFrom, transcriptionTo, mapped(TranscriptionMapping))
}

// Basename strips directory and extension: wav/03a01Wa.wav -> 03a01Wa.
func Basename(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Names returns Basename of every file.
func Names(files []string) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, Basename(f))
	}
	return names
}

// ListFiles returns the sorted relative paths (slash separated, prefixed
// with sub) of the regular files in root/sub.
func ListFiles(root, sub string) ([]string, error) {
	entries, err := readDir(filepath.Join(root, sub))
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, name := range entries {
		files = append(files, sub+"/"+name)
	}
	sort.Strings(files)
	return files, nil
}

func readDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
