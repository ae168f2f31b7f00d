//go:build !js

// Package encoder records a canvas to a video file by reading back each
// rendered frame and piping it to ffmpeg.
package encoder

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/richinsley/goshadercanvas/graphics"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Settings describes one recording.
type Settings struct {
	Width      int
	Height     int
	FPS        int
	Duration   float64
	OutputFile string
	Codec      string // "h264" or "hevc"
	FFmpegPath string
}

// Recorder is a Scheduler and Clock that advances time by exactly one frame
// per rendered frame, so recordings are independent of wall-clock speed. It
// is also the Surface: the drawable is always the recording size, whatever
// window the context belongs to.
type Recorder struct {
	settings Settings
	frames   graphics.FrameQueue
	tasks    graphics.TaskQueue
	frame    int64
	width    int
	height   int

	// AfterFrame runs once each frame has been read back, e.g. to poll
	// window events.
	AfterFrame func()

	// start launches the encoder and returns the raw frame sink and the
	// channel its exit status is delivered on.
	start func(s Settings) (io.WriteCloser, <-chan error)
}

var (
	_ graphics.Scheduler = (*Recorder)(nil)
	_ graphics.Clock     = (*Recorder)(nil)
	_ graphics.Surface   = (*Recorder)(nil)
)

func NewRecorder(s Settings) (*Recorder, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d", s.Width, s.Height)
	}
	if s.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", s.FPS)
	}
	if s.Duration <= 0 {
		return nil, fmt.Errorf("invalid duration %v", s.Duration)
	}
	if s.OutputFile == "" {
		return nil, fmt.Errorf("no output file")
	}
	return &Recorder{settings: s, start: startFFmpeg}, nil
}

// WindowSize is the recording size.
func (r *Recorder) WindowSize() (int, int) {
	return r.settings.Width, r.settings.Height
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) SetSize(width, height int) { r.width, r.height = width, height }

// OnResize never fires; the recording size is fixed.
func (r *Recorder) OnResize(func()) {}

func (r *Recorder) RequestFrame(f graphics.FrameFunc) { r.frames.RequestFrame(f) }

// Post is safe to call from any goroutine. Tasks run before the next frame.
func (r *Recorder) Post(task func()) { r.tasks.Post(task) }

// Now is the presentation time of the frame being rendered.
func (r *Recorder) Now() float64 {
	return float64(r.frame) / float64(r.settings.FPS)
}

// TotalFrames is the number of frames Run renders.
func (r *Recorder) TotalFrames() int64 {
	return int64(r.settings.Duration * float64(r.settings.FPS))
}

// Run renders TotalFrames frames, reading each back from pixels and sending
// it to the encoder. pixels must read the target the canvas draws into,
// sized like the recording. It returns when the encoder exits.
func (r *Recorder) Run(pixels graphics.PixelReader) error {
	w, h := r.settings.Width, r.settings.Height
	buf := make([]byte, w*h*4)

	sink, done := r.start(r.settings)
	total := r.TotalFrames()
	log.Printf("Recording %d frames at %dx%d to %s", total, w, h, r.settings.OutputFile)

	var writeErr error
	for r.frame = 0; r.frame < total; r.frame++ {
		r.tasks.Drain()
		if r.frames.Tick(r.Now()) == 0 {
			writeErr = fmt.Errorf("render loop stopped at frame %d", r.frame)
			break
		}
		pixels.ReadPixels(w, h, buf)
		if _, err := sink.Write(buf); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to encoder: %w", r.frame, err)
			break
		}
		if r.AfterFrame != nil {
			r.AfterFrame()
		}
	}
	sink.Close()

	encErr := <-done
	if writeErr != nil {
		return writeErr
	}
	if encErr != nil {
		return fmt.Errorf("ffmpeg failed: %w", encErr)
	}
	return nil
}

func getArgs(s Settings) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", s.Width, s.Height),
		"framerate": s.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		// GL reads rows bottom-up.
		"vf": "vflip",
	}
	if s.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(s.OutputFile, ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

func startFFmpeg(s Settings) (io.WriteCloser, <-chan error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(s)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(s.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if s.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(s.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()
	return pipeWriter, errc
}
