package audio

import (
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/util/files"
)

// Allocator hands out scratch file paths for chunk output. Satisfied by
// tempfile.Store.
type Allocator interface {
	Allocate(baseName, ext string) (string, error)
}

// WavSeconds reads the duration of a WAV file from its header, without
// shelling out to ffprobe.
func WavSeconds(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	dur, err := d.Duration()
	if err != nil {
		return 0, apperrors.Wrapf(err, "failed to read wav duration of %s", path)
	}
	return dur.Seconds(), nil
}

// SplitWav cuts a WAV file into sequential chunks of at most maxSeconds
// each, writing them through alloc, and returns the chunk paths in temporal
// order. The last chunk may be shorter. Chunks already written are removed
// when splitting fails partway.
func SplitWav(path string, maxSeconds int, alloc Allocator) ([]string, error) {
	if maxSeconds <= 0 {
		return nil, apperrors.Newf("invalid chunk length %d", maxSeconds)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, apperrors.Newf("%s is not a valid wav file", path)
	}

	format := d.Format()
	bitDepth := int(d.BitDepth)
	samplesPerChunk := maxSeconds * format.SampleRate * format.NumChannels
	base := files.SanitizeBaseName(path) + "_chunk"

	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, samplesPerChunk),
	}

	var paths []string
	cleanup := func() {
		for _, p := range paths {
			os.Remove(p)
		}
	}

	for {
		n, err := d.PCMBuffer(buf)
		if err != nil {
			cleanup()
			return nil, apperrors.Wrapf(err, "failed to decode %s", path)
		}
		if n == 0 {
			break
		}

		chunkPath, err := writeChunk(alloc, base, format, bitDepth, buf.Data[:n])
		if err != nil {
			cleanup()
			return nil, err
		}
		paths = append(paths, chunkPath)
	}

	if len(paths) == 0 {
		return nil, apperrors.Newf("%s contains no audio samples", path)
	}
	return paths, nil
}

func writeChunk(alloc Allocator, base string, format *goaudio.Format, bitDepth int, samples []int) (string, error) {
	path, err := alloc.Allocate(base, ".wav")
	if err != nil {
		return "", err
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		os.Remove(path)
		return "", err
	}
	defer out.Close()

	enc := wav.NewEncoder(out, format.SampleRate, bitDepth, format.NumChannels, 1)
	chunk := &goaudio.IntBuffer{
		Format:         format,
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(chunk); err != nil {
		enc.Close()
		os.Remove(path)
		return "", apperrors.Wrap(err, "failed to write wav chunk")
	}
	if err := enc.Close(); err != nil {
		os.Remove(path)
		return "", apperrors.Wrap(err, "failed to finalize wav chunk")
	}
	return path, nil
}
