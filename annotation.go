package facecrop

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadAnnotation parses a landmark annotation. The first line holds
// whitespace separated integers: the number of landmarks followed by their
// interleaved x,y coordinates. The count itself is not trusted and only the
// coordinates are returned.
func ReadAnnotation(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("could not read the annotation: %w", err)
		}
		return nil, fmt.Errorf("%w: empty annotation", ErrMalformedLandmarks)
	}

	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty annotation", ErrMalformedLandmarks)
	}
	coords := make([]float64, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid coordinate %q", ErrMalformedLandmarks, f)
		}
		coords = append(coords, float64(v))
	}
	return coords, nil
}
