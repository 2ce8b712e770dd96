package carousel

import "strings"

// maxLineLen bounds a command line; anything longer is cut off and reported as an
// unknown command
const maxLineLen = 32

// ByteSource is a non-blocking byte stream such as machine.Serial
type ByteSource interface {
	Buffered() int
	ReadByte() (byte, error)
}

// SerialLines splits a byte stream into command lines. It is both the LineReader and the
// StopInput: while the loop is busy moving, a line that is just 'e' or 'E' is taken out
// of the stream and reported as a stop request instead of waiting for dispatch.
type SerialLines struct {
	src     ByteSource
	partial []byte
	lines   []string
}

// NewSerialLines reads lines from src
func NewSerialLines(src ByteSource) *SerialLines {
	return &SerialLines{src: src, partial: make([]byte, 0, maxLineLen)}
}

// ReadLine returns the oldest complete line
func (s *SerialLines) ReadLine() (string, bool) {
	s.poll()
	for len(s.lines) > 0 {
		line := strings.TrimSpace(s.lines[0])
		s.lines = s.lines[1:]
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// StopRequested consumes a pending stop line, complete or not
func (s *SerialLines) StopRequested() bool {
	s.poll()

	if isStop(string(s.partial)) {
		s.partial = s.partial[:0]
		return true
	}
	for i, line := range s.lines {
		if isStop(line) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (s *SerialLines) poll() {
	for s.src.Buffered() > 0 {
		b, err := s.src.ReadByte()
		if err != nil {
			return
		}

		switch b {
		case '\r', '\n':
			if len(s.partial) > 0 {
				s.lines = append(s.lines, string(s.partial))
				s.partial = s.partial[:0]
			}
		default:
			if len(s.partial) < maxLineLen {
				s.partial = append(s.partial, b)
			}
		}
	}
}

func isStop(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "e")
}
