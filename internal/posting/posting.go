// Package posting turns raw job-posting text into a structured record.
//
// A Parser runs the cleaner, the section splitter and the record assembler
// in sequence. It holds no mutable state of its own and is safe for
// concurrent use; observers receive a summary of every parse.
package posting

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/jobpost/internal/cleaner"
	"github.com/dgallion1/jobpost/internal/parser"
	"github.com/dgallion1/jobpost/internal/record"
	"github.com/dgallion1/jobpost/internal/sections"
	"github.com/dgallion1/jobpost/internal/vocab"
)

// Outcome summarizes a single parse.
type Outcome struct {
	Duration        time.Duration
	Bytes           int
	Sections        int
	Headers         int
	UnknownHeadings int
	NoHeaders       bool
}

// Observer receives an Outcome after every parse. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveParse(Outcome)
}

// Parser parses job postings with a fixed vocabulary and cleaner.
type Parser struct {
	vocab     *vocab.Vocabulary
	cleaner   *cleaner.Cleaner
	log       *slog.Logger
	observers []Observer
	readers   parser.Options
}

// Option configures a Parser.
type Option func(*Parser)

// WithVocabulary replaces the default header vocabulary.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(p *Parser) {
		if v != nil {
			p.vocab = v
		}
	}
}

// WithCleaner replaces the default cleaner.
func WithCleaner(c *cleaner.Cleaner) Option {
	return func(p *Parser) {
		if c != nil {
			p.cleaner = c
		}
	}
}

// WithLogger sets the logger used for per-parse debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(p *Parser) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithReaderOptions configures the file readers used by ParseReader.
func WithReaderOptions(opts parser.Options) Option {
	return func(p *Parser) {
		p.readers = opts
	}
}

// New returns a Parser using the default vocabulary and cleaner unless
// overridden.
func New(opts ...Option) *Parser {
	p := &Parser{
		vocab:   vocab.Default(),
		cleaner: cleaner.New(cleaner.Options{}),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Vocabulary returns the vocabulary the parser matches headers against.
func (p *Parser) Vocabulary() *vocab.Vocabulary {
	return p.vocab
}

// Parse converts raw posting text into a record. It never fails; text it
// cannot structure ends up under the unknown-heading key.
func (p *Parser) Parse(raw string) record.Record {
	_, rec := p.Analyze(raw)
	return rec
}

// Analyze is Parse that also returns the intermediate split.
func (p *Parser) Analyze(raw string) (sections.Result, record.Record) {
	start := time.Now()
	res := sections.Split(p.cleaner.Clean(raw), p.vocab)
	rec := record.Assemble(res, p.vocab)

	o := Outcome{
		Duration:        time.Since(start),
		Bytes:           len(raw),
		Sections:        len(res.Sections),
		Headers:         res.HeaderCount(),
		UnknownHeadings: len(res.UnknownHeadings()),
		NoHeaders:       res.NoHeaders,
	}
	for _, obs := range p.observers {
		obs.ObserveParse(o)
	}
	p.log.Debug("posting parsed",
		"bytes", o.Bytes,
		"sections", o.Sections,
		"headers", o.Headers,
		"unknown_headings", o.UnknownHeadings,
		"no_headers", o.NoHeaders,
		"duration", o.Duration,
	)
	return res, rec
}

// ParseReader reads a posting document, choosing the reader by filename
// extension, and parses its text.
func (p *Parser) ParseReader(r io.Reader, filename string) (record.Record, error) {
	rd, err := parser.ForFile(filename, p.readers)
	if err != nil {
		return record.Record{}, err
	}
	tree, err := rd.Parse(r, filename)
	if err != nil {
		return record.Record{}, fmt.Errorf("read %s: %w", filename, err)
	}
	return p.Parse(tree.PostingText()), nil
}

// Parse parses raw with the default vocabulary and cleaner.
func Parse(raw string) record.Record {
	return New().Parse(raw)
}
