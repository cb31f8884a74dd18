package clut

// Reading and writing the text LUT format:
//
//   LUT_3D_SIZE 2
//   0 0 0
//   1 0 0
//   ...
//
// One size header, then one "r g b" line per entry. The reader also
// copes with the extra lines real-world .cube files carry (comments,
// TITLE, DOMAIN_MIN/DOMAIN_MAX).

import(
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const(
	header1D = "LUT_1D_SIZE"
	header3D = "LUT_3D_SIZE"

	maxSize1D = 65536
	maxSize3D = 256
)

// ErrLoadFailure is the one error kind a load can produce. A missing
// file also matches fs.ErrNotExist, which is as fine-grained as it gets.
var ErrLoadFailure = errors.New("clut load failure")

// A LoadError says which file (and line, if we got that far) broke.
type LoadError struct {
	Filename string
	Line     int
	Err      error
}

func (e *LoadError)Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load '%s' line %d: %v", e.Filename, e.Line, e.Err)
	}
	return fmt.Sprintf("load '%s': %v", e.Filename, e.Err)
}

func (e *LoadError)Unwrap() error { return e.Err }
func (e *LoadError)Is(target error) bool { return target == ErrLoadFailure }

// NameFromFilename strips the dir and extension, "luts/Teal.cube" -> "Teal"
func NameFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func LoadFromFile(filename string) (CLUT, error) {
	f, err := os.Open(filename)
	if err != nil {
		return CLUT{}, &LoadError{Filename: filename, Err: err}
	}
	defer f.Close()

	c, err := Read(NameFromFilename(filename), f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Filename = filename
		}
		return CLUT{}, err
	}
	return c, nil
}

// Read parses a table from r. It never returns a partial table; any
// problem at all is a *LoadError.
func Read(name string, r io.Reader) (CLUT, error) {
	c := CLUT{Name: name}
	fail := func(line int, format string, args ...interface{}) (CLUT, error) {
		return CLUT{}, &LoadError{Filename: name, Line: line, Err: fmt.Errorf(format, args...)}
	}

	want := -1 // number of triples, known once we've seen the header
	lineNum := 0
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case header1D, header3D:
			if want >= 0 {
				return fail(lineNum, "second size header %q", line)
			}
			if len(fields) != 2 {
				return fail(lineNum, "bad size header %q", line)
			}
			size, err := strconv.Atoi(fields[1])
			if err != nil {
				return fail(lineNum, "bad size %q: %v", fields[1], err)
			}
			c.Is3D = fields[0] == header3D
			max := maxSize1D
			if c.Is3D {
				max = maxSize3D
			}
			if size < 2 || size > max {
				return fail(lineNum, "size %d out of range [2,%d]", size, max)
			}
			c.Size = size
			want = c.NumEntries()
			c.Data = make([]float32, 0, want*3)
			continue

		case "TITLE":
			continue

		case "DOMAIN_MIN", "DOMAIN_MAX":
			dflt := float32(0.0)
			if fields[0] == "DOMAIN_MAX" {
				dflt = 1.0
			}
			vals, err := parseTriple(fields[1:])
			if err != nil {
				return fail(lineNum, "%s: %v", fields[0], err)
			}
			if vals[0] != dflt || vals[1] != dflt || vals[2] != dflt {
				return fail(lineNum, "%s %v not supported", fields[0], vals)
			}
			continue
		}

		if want < 0 {
			return fail(lineNum, "data before size header")
		}
		rgb, err := parseTriple(fields)
		if err != nil {
			return fail(lineNum, "%v", err)
		}
		if len(c.Data) == want*3 {
			return fail(lineNum, "more than the %d entries declared", want)
		}
		c.Data = append(c.Data, rgb[0], rgb[1], rgb[2])
	}

	if err := scanner.Err(); err != nil {
		return fail(lineNum, "read: %v", err)
	}
	if want < 0 {
		return fail(0, "no %s or %s header", header1D, header3D)
	}
	if got := len(c.Data) / 3; got != want {
		return fail(0, "got %d entries, %s size %d wants %d", got, c.Dims(), c.Size, want)
	}

	return c, nil
}

func parseTriple(fields []string) ([3]float32, error) {
	var rgb [3]float32
	if len(fields) != 3 {
		return rgb, fmt.Errorf("want 3 values, got %d", len(fields))
	}
	for i, s := range fields {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return rgb, fmt.Errorf("bad value %q: %v", s, err)
		}
		rgb[i] = float32(f)
	}
	return rgb, nil
}

// Write emits the table in the text format. Values are written as the
// shortest decimal that parses back to the exact same float32.
func (c CLUT)Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	hdr := header1D
	if c.Is3D {
		hdr = header3D
	}
	fmt.Fprintf(bw, "%s %d\n", hdr, c.Size)

	for i := 0; i+2 < len(c.Data); i += 3 {
		bw.WriteString(formatFloat(c.Data[i]))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(c.Data[i+1]))
		bw.WriteByte(' ')
		bw.WriteString(formatFloat(c.Data[i+2]))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func (c CLUT)SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write '%s': %w", filename, err)
	}
	return f.Close()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
