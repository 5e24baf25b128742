// Package export writes a roster session to disk: the edited roster
// document and per-group sheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/Xantino1997/flores/internal/models"
	"github.com/Xantino1997/flores/internal/publist"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"
)

const (
	RosterBaseName = "publicadores_editado"
	SheetPrefix    = "grupo"
)

type Service struct {
	logger    *zap.Logger
	now       func() time.Time
	recompute bool
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for file name timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRecomputedCount writes the number of publishers into Count instead
// of echoing the loaded value.
func WithRecomputedCount(on bool) Option {
	return func(s *Service) {
		s.recompute = on
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With returns a copy of s with opts applied.
func (s *Service) With(opts ...Option) *Service {
	c := *s
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// RecomputesCount reports whether ExportRoster rewrites Count.
func (s *Service) RecomputesCount() bool {
	return s.recompute
}

func (s *Service) timestamp() string {
	return s.now().Format("20060102_150405")
}

// ExportRoster writes the roster document into outputDir and returns the
// path of the new file.
func (s *Service) ExportRoster(meta models.RosterMetadata, pubs []models.PublisherRecord, outputDir string) (string, error) {
	var opts []publist.Option
	if s.recompute {
		opts = append(opts, publist.WithRecomputedCount())
	}
	filename := fmt.Sprintf("%s_%s.xml", RosterBaseName, s.timestamp())

	path, err := s.writeFile(outputDir, filename, func(w io.Writer) error {
		return publist.Encode(w, meta, pubs, opts...)
	})
	if err != nil {
		return "", fmt.Errorf("roster export failed: %w", err)
	}
	s.logger.Info("roster exported",
		zap.String("file", path),
		zap.Int("publishers", len(pubs)),
		zap.Bool("recomputed_count", s.recompute))
	return path, nil
}

// WriteGroupSheet writes the ordered sheet of group as CSV into outputDir.
func (s *Service) WriteGroupSheet(sheet []models.PublisherRecord, group, outputDir string) (string, error) {
	filename := fmt.Sprintf("%s_%s_%s.csv", SheetPrefix, SafeGroupName(group), s.timestamp())

	path, err := s.writeFile(outputDir, filename, func(w io.Writer) error {
		return EncodeGroupSheet(w, sheet, group)
	})
	if err != nil {
		return "", fmt.Errorf("group sheet export failed: %w", err)
	}
	s.logger.Info("group sheet exported",
		zap.String("file", path),
		zap.String("group", group),
		zap.Int("rows", len(sheet)))
	return path, nil
}

// EncodeGroupSheet writes the CSV for sheet to w. An empty sheet still
// gets a header line.
func EncodeGroupSheet(w io.Writer, sheet []models.PublisherRecord, group string) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(SheetRow{}); err != nil {
		return fmt.Errorf("failed to encode sheet header: %w", err)
	}
	if rows := SheetRows(sheet, group); len(rows) > 0 {
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("failed to encode sheet: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}
	return nil
}

func (s *Service) writeFile(outputDir, filename string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := write(file); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}

// SafeGroupName turns a group value into a file name fragment.
func SafeGroupName(group string) string {
	group = strings.TrimSpace(group)
	if group == "" {
		return "sin_grupo"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return '_'
	}, group)
}

// ValidateInputFile checks that filename looks like a roster document
// before it is read.
func ValidateInputFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open roster file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("cannot get file info: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("roster file is empty")
	}

	if extension := filepath.Ext(filename); !strings.EqualFold(extension, ".xml") {
		return fmt.Errorf("expected XML file but got %q", extension)
	}
	return nil
}
