// ABOUTME: Parsers for transcript files: YouTube raw JSON, SubRip (SRT) and WebVTT
// ABOUTME: Each yields snippets with start and duration in seconds
package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/harper/tubescribe/internal/models"
)

var (
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	vttLanguageRe = regexp.MustCompile(`^Language:\s*(\S+)`)
)

// ParseJSON reads either a bare snippet array or a transcript object with a data array
func ParseJSON(data []byte) (*models.Transcript, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty transcript file")
	}

	t := &models.Transcript{}
	if data[0] == '[' {
		if err := json.Unmarshal(data, &t.Snippets); err != nil {
			return nil, fmt.Errorf("parse snippet array: %w", err)
		}
		return t, nil
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse transcript object: %w", err)
	}
	return t, nil
}

// cue is one timed block of an SRT or VTT file
type cue struct {
	start, end float64
	lines      []string
}

func (c cue) snippet() models.Snippet {
	return models.Snippet{
		Text:     strings.Join(c.lines, " "),
		Start:    c.start,
		Duration: c.end - c.start,
	}
}

// ParseSRT parses SubRip text
func ParseSRT(data []byte) ([]models.Snippet, error) {
	snippets, _, err := parseCues(data, false)
	return snippets, err
}

// ParseVTT parses WebVTT text and reports the Language header when present
func ParseVTT(data []byte) ([]models.Snippet, string, error) {
	return parseCues(data, true)
}

// parseCues walks blank-line separated blocks. A block contributes a snippet
// once its timing line has been seen; text before any timing line is ignored.
func parseCues(data []byte, vtt bool) ([]models.Snippet, string, error) {
	var (
		snippets []models.Snippet
		current  *cue
		language string
		lineNo   int
	)

	flush := func() {
		if current != nil && len(current.lines) > 0 {
			snippets = append(snippets, current.snippet())
		}
		current = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		if line == "" {
			flush()
			continue
		}

		if strings.Contains(line, "-->") {
			flush()
			start, end, err := parseTiming(line)
			if err != nil {
				return nil, "", fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = &cue{start: start, end: end}
			continue
		}

		if current == nil {
			if vtt {
				if m := vttLanguageRe.FindStringSubmatch(line); m != nil {
					language = m[1]
				}
			}
			// sequence numbers, cue ids, headers and NOTE blocks
			continue
		}

		if vtt {
			line = strings.TrimSpace(tagRe.ReplaceAllString(line, ""))
			if line == "" {
				continue
			}
		}
		current.lines = append(current.lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	flush()

	return snippets, language, nil
}

// parseTiming reads "start --> end", ignoring VTT cue settings after end
func parseTiming(line string) (float64, float64, error) {
	left, right, _ := strings.Cut(line, "-->")
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("missing end time in %q", line)
	}

	start, err := ParseClock(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(fields[0])
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("cue ends before it starts: %q", line)
	}
	return start, end, nil
}

// ParseClock converts "HH:MM:SS,mmm", "HH:MM:SS.mmm" or "MM:SS.mmm" to seconds
func ParseClock(s string) (float64, error) {
	s = strings.Replace(s, ",", ".", 1)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || secs >= 60 {
		return 0, fmt.Errorf("invalid seconds in %q", s)
	}

	total := secs
	mult := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		total += float64(n) * mult
		mult *= 60
	}
	return total, nil
}
