package server

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mgpai22/scribe/internal/library"
	"github.com/mgpai22/scribe/internal/transcript"
)

// segment as served to the display, with its list position and the
// whole-second playback offset used for seeking
type segmentView struct {
	transcript.Segment
	Index       int `json:"index"`
	SeekSeconds int `json:"seek_seconds"`
}

type transcriptView struct {
	Name     string        `json:"name"`
	Media    string        `json:"media,omitempty"`
	Segments []segmentView `json:"segments"`
}

// EditSegmentPayload identifies the segment being edited by its parsed
// fields and carries the replacement text.
type EditSegmentPayload struct {
	LineStart int    `json:"line_start" validate:"gte=0"`
	LineEnd   int    `json:"line_end" validate:"gtefield=LineStart"`
	Start     string `json:"start" validate:"required"`
	End       string `json:"end" validate:"required"`
	Text      string `json:"text" validate:"required"`
	NewText   string `json:"new_text" validate:"required"`
}

func (p EditSegmentPayload) segment() transcript.Segment {
	return transcript.Segment{
		LineStart: p.LineStart,
		LineEnd:   p.LineEnd,
		Text:      p.Text,
		Start:     p.Start,
		End:       p.End,
	}
}

func views(segments []transcript.Segment) []segmentView {
	out := make([]segmentView, len(segments))
	for i, seg := range segments {
		seek, _ := transcript.SeekSeconds(seg.Start)
		out[i] = segmentView{Segment: seg, Index: i, SeekSeconds: seek}
	}
	return out
}

// lists transcripts in the configured directory
// GET /api/v1/transcripts
func (s *Server) listTranscripts(c *fiber.Ctx) error {
	entries, err := library.Scan(s.dir)
	if err != nil {
		return err
	}
	return respondWithJSON(c, fiber.StatusOK, entries)
}

// GET /api/v1/transcripts/:name/segments
func (s *Server) getSegments(c *fiber.Ctx) error {
	entry, err := s.find(c)
	if err != nil {
		return err
	}

	segments, err := transcript.Parse(entry.Path)
	if err != nil {
		return s.transcriptError(err)
	}

	return respondWithJSON(c, fiber.StatusOK, transcriptView{
		Name:     entry.Name,
		Media:    entry.Media,
		Segments: views(segments),
	})
}

// reports the segment to highlight at a playback position
// GET /api/v1/transcripts/:name/active?position_ms=
func (s *Server) getActive(c *fiber.Ctx) error {
	entry, err := s.find(c)
	if err != nil {
		return err
	}

	raw := c.Query("position_ms")
	positionMS, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || positionMS < 0 {
		return respondWithError(c, fiber.StatusBadRequest, "position_ms must be a non-negative integer")
	}

	segments, err := transcript.Parse(entry.Path)
	if err != nil {
		return s.transcriptError(err)
	}

	index := transcript.ActiveIndex(segments, time.Duration(positionMS)*time.Millisecond)
	data := fiber.Map{"index": index, "segment": nil}
	if index >= 0 {
		data["segment"] = views(segments)[index]
	}
	return respondWithJSON(c, fiber.StatusOK, data)
}

// applies an edit to one segment and returns the re-parsed transcript
// PATCH /api/v1/transcripts/:name/segments
func (s *Server) editSegment(c *fiber.Ctx) error {
	entry, err := s.find(c)
	if err != nil {
		return err
	}

	var payload EditSegmentPayload
	if err := c.BodyParser(&payload); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, "cannot parse request body")
	}
	if err := s.validate.Struct(payload); err != nil {
		return respondWithValidationErrors(c, err)
	}

	if err := transcript.EditSegment(entry.Path, payload.segment(), payload.NewText); err != nil {
		switch {
		case errors.Is(err, transcript.ErrStaleSegment):
			return respondWithError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, transcript.ErrEmptyText),
			errors.Is(err, transcript.ErrBlankLineInText),
			errors.Is(err, transcript.ErrCueHeaderInText),
			errors.Is(err, transcript.ErrLineOutOfRange):
			return respondWithError(c, fiber.StatusBadRequest, err.Error())
		default:
			return s.transcriptError(err)
		}
	}

	s.logger.Infow("segment edited",
		"transcript", entry.Name,
		"line_start", payload.LineStart,
		"line_end", payload.LineEnd,
		"request_id", c.Locals(requestIDKey),
	)

	segments, err := transcript.Parse(entry.Path)
	if err != nil {
		return s.transcriptError(err)
	}
	return respondWithJSON(c, fiber.StatusOK, transcriptView{
		Name:     entry.Name,
		Media:    entry.Media,
		Segments: views(segments),
	})
}

// serves the media file paired with a transcript
// GET /api/v1/transcripts/:name/media
func (s *Server) getMedia(c *fiber.Ctx) error {
	entry, err := s.find(c)
	if err != nil {
		return err
	}
	if !entry.HasMedia() {
		return respondWithError(c, fiber.StatusNotFound, "no media paired with "+entry.Name)
	}
	return c.SendFile(entry.MediaPath)
}

func (s *Server) find(c *fiber.Ctx) (library.Entry, error) {
	entry, err := library.Find(s.dir, c.Params("name"))
	switch {
	case err == nil:
		return entry, nil
	case errors.Is(err, library.ErrInvalidName):
		return library.Entry{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, library.ErrNotFound):
		return library.Entry{}, fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return library.Entry{}, err
	}
}

func (s *Server) transcriptError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fiber.NewError(fiber.StatusNotFound, "transcript not found")
	case errors.Is(err, transcript.ErrInvalidUTF8):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
