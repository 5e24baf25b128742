package publist

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/Xantino1997/flores/internal/models"
)

// Document is the result of parsing a roster file: the header plus the
// publishers in document order.
type Document struct {
	Metadata   models.RosterMetadata
	Publishers []models.PublisherRecord
}

type Parser struct {
	r io.Reader
}

func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// Parse reads the whole input and parses it as a roster document.
func (p *Parser) Parse() (*Document, error) {
	data, err := io.ReadAll(p.r)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return Parse(data)
}

// ParseFile parses the roster document stored at filename.
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	return NewParser(file).Parse()
}

// Parse parses raw roster text. Publishers are looked up inside the Active
// container when present and across the whole document otherwise.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimFunc(data, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	if len(trimmed) == 0 {
		return nil, ErrEmptyInput
	}
	if !bytes.HasPrefix(trimmed, []byte("<?xml")) && trimmed[0] != '<' {
		return nil, ErrNotXMLLike
	}

	doc, err := buildTree(trimmed)
	if err != nil {
		return nil, newParseError(CodeMalformedXML, err)
	}

	scope := doc
	if active := doc.first(models.ActiveElement); active != nil {
		scope = active
	}
	pubElements := scope.descendants(models.PublisherElement)
	if len(pubElements) == 0 {
		return nil, ErrNoRecordsFound
	}

	out := &Document{
		Metadata:   parseMetadata(doc),
		Publishers: make([]models.PublisherRecord, 0, len(pubElements)),
	}
	for _, el := range pubElements {
		out.Publishers = append(out.Publishers, parsePublisher(el))
	}
	return out, nil
}

func parseMetadata(doc *element) models.RosterMetadata {
	var meta models.RosterMetadata
	if agent := doc.first(models.AgentElement); agent != nil {
		meta.Agent = agent.text()
		meta.AgentVersion = agent.attr(models.AgentVersionAttr)
	}
	meta.Date = doc.firstText(models.DateElement, "")
	meta.Count = doc.firstText(models.CountElement, "")
	return meta
}

func parsePublisher(el *element) models.PublisherRecord {
	var p models.PublisherRecord
	for _, f := range models.PublisherFields {
		def := ""
		if f == models.FieldStatus {
			def = models.DefaultStatus
		}
		*p.Field(f) = el.firstText(string(f), def)
	}

	for _, tag := range models.MonthTags {
		for _, monthEl := range el.descendants(tag) {
			year := monthEl.attr(models.YearAttr)
			if year == "" {
				continue
			}
			m := models.MonthRecord{Month: tag, Year: year}
			for _, f := range models.MonthFields {
				def := ""
				if f.IsMetric() {
					def = models.DefaultMetric
				}
				*m.Field(f) = monthEl.firstText(string(f), def)
			}
			p.Months = append(p.Months, m)
		}
	}
	return p
}
