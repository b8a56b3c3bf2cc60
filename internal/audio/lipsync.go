package audio

import (
	"context"

	"airportbot/internal/process"
)

// LipSync wraps the ffmpeg and rhubarb binaries used to turn TTS output into
// mouth cues.
type LipSync struct {
	FFmpegBin  string
	RhubarbBin string
	Runner     process.Runner
}

func NewLipSync(ffmpegBin, rhubarbBin string) LipSync {
	return LipSync{FFmpegBin: ffmpegBin, RhubarbBin: rhubarbBin, Runner: process.ExecRunner{}}
}

func (l LipSync) runner() process.Runner {
	if l.Runner != nil {
		return l.Runner
	}
	return process.ExecRunner{}
}

func (l LipSync) ffmpeg() string {
	if l.FFmpegBin != "" {
		return l.FFmpegBin
	}
	return "ffmpeg"
}

func (l LipSync) rhubarb() string {
	if l.RhubarbBin != "" {
		return l.RhubarbBin
	}
	return "./bin/rhubarb"
}

// MP3ToWAV transcodes mp3 into wav, overwriting an existing file.
func (l LipSync) MP3ToWAV(ctx context.Context, mp3Path, wavPath string) error {
	_, err := l.runner().Run(ctx, nil, l.ffmpeg(), "-y", "-i", mp3Path, wavPath)
	return err
}

// WAVToJSON writes rhubarb's phonetic mouth cues for wav into jsonPath.
func (l LipSync) WAVToJSON(ctx context.Context, wavPath, jsonPath string) error {
	_, err := l.runner().Run(ctx, nil, l.rhubarb(), "-f", "json", "-o", jsonPath, wavPath, "-r", "phonetic")
	return err
}
