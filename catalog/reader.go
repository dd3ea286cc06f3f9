package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// skippedLines is the number of leading lines discarded before the header.
const skippedLines = 1

var errNonFinite = errors.New("value is not finite")

type options struct {
	schema Schema
}

// Option configures a Reader.
type Option func(*options)

// WithSchema overrides the default column names.
func WithSchema(s Schema) Option {
	return func(o *options) { o.schema = s }
}

// Reader decodes stars from a catalog export. It is not safe for concurrent use.
type Reader struct {
	src    io.Reader
	schema Schema
	csv    *csv.Reader
	cols   *columns
	err    error
}

// NewReader returns a Reader consuming r. Nothing is read until the first call
// to Read or ReadAll.
func NewReader(r io.Reader, opts ...Option) *Reader {
	o := options{schema: DefaultSchema()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Reader{src: r, schema: o.schema}
}

// Read returns the next star, or io.EOF once all rows were consumed. Any other
// error is sticky: subsequent calls return it again.
func (r *Reader) Read() (Star, error) {
	if r.err != nil {
		return Star{}, r.err
	}
	if r.csv == nil {
		if r.err = r.init(); r.err != nil {
			return Star{}, r.err
		}
	}
	record, err := r.csv.Read()
	if err == io.EOF {
		return Star{}, io.EOF
	}
	if err != nil {
		r.err = r.wrap(err)
		return Star{}, r.err
	}
	star, err := r.decode(record)
	if err != nil {
		r.err = err
		return Star{}, err
	}
	return star, nil
}

// ReadAll reads every remaining star. A header-only input yields an empty,
// non-nil slice.
func (r *Reader) ReadAll() ([]Star, error) {
	stars := make([]Star, 0)
	for {
		star, err := r.Read()
		if err == io.EOF {
			return stars, nil
		}
		if err != nil {
			return nil, err
		}
		stars = append(stars, star)
	}
}

// Parse reads all stars from r.
func Parse(r io.Reader, opts ...Option) ([]Star, error) {
	return NewReader(r, opts...).ReadAll()
}

// Load reads all stars from the file at path. Gzip, zstd and lz4 frames are
// detected from their magic bytes and decompressed transparently.
func Load(path string, opts ...Option) ([]Star, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	src, closeSrc, err := decompress(f)
	if err != nil {
		return nil, err
	}
	defer closeSrc()
	return Parse(src, opts...)
}

func (r *Reader) init() error {
	// BOMOverride strips a UTF-8 BOM and transcodes UTF-16 input that starts with one.
	decoded := transform.NewReader(r.src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	br := bufio.NewReader(decoded)
	for i := 0; i < skippedLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return fmt.Errorf("%w: missing header row", ErrSchema)
			}
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: missing header row", ErrSchema)
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return fmt.Errorf("%w: header: %w", ErrSchema, err)
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	cols, err := r.schema.resolve(header)
	if err != nil {
		return err
	}
	r.csv = cr
	r.cols = cols
	return nil
}

func (r *Reader) wrap(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		perr := &ParseError{Line: pe.Line + skippedLines, Err: pe.Err}
		if !errors.Is(pe.Err, csv.ErrFieldCount) {
			perr.Offset = pe.Column
		}
		return perr
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func (r *Reader) decode(record []string) (Star, error) {
	var (
		star Star
		err  error
	)
	if star.ObjID, err = r.parseID(record); err != nil {
		return Star{}, err
	}
	if star.RA, err = r.parseRequired(record, r.cols.ra); err != nil {
		return Star{}, err
	}
	if star.Dec, err = r.parseRequired(record, r.cols.dec); err != nil {
		return Star{}, err
	}
	for b, pos := range r.cols.bands {
		if pos < 0 || record[pos] == "" {
			continue
		}
		v, err := parseFinite(record[pos])
		if err != nil {
			return Star{}, r.fail(pos, record[pos], err)
		}
		star.Magnitudes[b] = Some(v)
	}
	return star, nil
}

func (r *Reader) parseID(record []string) (uint64, error) {
	pos := r.cols.id
	value := record[pos]
	if value == "" {
		return 0, r.fail(pos, value, errEmptyRequired)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, r.fail(pos, value, err)
	}
	return id, nil
}

func (r *Reader) parseRequired(record []string, pos int) (float64, error) {
	value := record[pos]
	if value == "" {
		return 0, r.fail(pos, value, errEmptyRequired)
	}
	v, err := parseFinite(value)
	if err != nil {
		return 0, r.fail(pos, value, err)
	}
	return v, nil
}

func (r *Reader) fail(pos int, value string, err error) error {
	line, _ := r.csv.FieldPos(pos)
	return &ParseError{
		Line:   line + skippedLines,
		Column: r.cols.names[pos],
		Value:  value,
		Err:    err,
	}
}

func parseFinite(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(v) {
		return 0, errNonFinite
	}
	return v, nil
}
