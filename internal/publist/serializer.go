package publist

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/Xantino1997/flores/internal/models"
)

type encodeOptions struct {
	recomputeCount bool
}

// Option configures the serializer.
type Option func(*encodeOptions)

// WithRecomputedCount writes the live publisher count into Count instead of
// echoing the parsed metadata.
func WithRecomputedCount() Option {
	return func(o *encodeOptions) {
		o.recomputeCount = true
	}
}

// Marshal renders the roster in the external XML vocabulary.
func Marshal(meta models.RosterMetadata, pubs []models.PublisherRecord, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, meta, pubs, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the roster to w, one element per line, publishers in the
// order given. Text and attribute values are escaped by encoding/xml.
func Encode(w io.Writer, meta models.RosterMetadata, pubs []models.PublisherRecord, opts ...Option) error {
	var o encodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	count := meta.Count
	if o.recomputeCount {
		count = strconv.Itoa(len(pubs))
	}

	e := &lineEncoder{enc: xml.NewEncoder(w)}
	e.token(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)})
	e.newline()
	e.open(models.RootElement)
	e.openWithAttr(models.AgentElement, models.AgentVersionAttr, meta.AgentVersion)
	e.chars(meta.Agent)
	e.close(models.AgentElement)
	e.leaf(models.DateElement, meta.Date)
	e.leaf(models.CountElement, count)
	e.open(models.ActiveElement)

	for i := range pubs {
		p := &pubs[i]
		e.open(models.PublisherElement)
		for _, f := range models.PublisherFields {
			e.leaf(string(f), *p.Field(f))
		}
		for j := range p.Months {
			m := &p.Months[j]
			e.openWithAttr(m.Month, models.YearAttr, m.Year)
			e.newline()
			for _, f := range models.MonthFields {
				e.leaf(string(f), *m.Field(f))
			}
			e.close(m.Month)
		}
		e.close(models.PublisherElement)
	}

	e.close(models.ActiveElement)
	e.token(xml.EndElement{Name: xml.Name{Local: models.RootElement}})

	if e.err != nil {
		return fmt.Errorf("failed to encode roster: %w", e.err)
	}
	if err := e.enc.Flush(); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}
	return nil
}

// lineEncoder keeps the first error and turns later calls into no-ops.
type lineEncoder struct {
	enc *xml.Encoder
	err error
}

func (e *lineEncoder) token(t xml.Token) {
	if e.err != nil {
		return
	}
	e.err = e.enc.EncodeToken(t)
}

func (e *lineEncoder) newline() {
	e.token(xml.CharData("\n"))
}

func (e *lineEncoder) chars(s string) {
	if s != "" {
		e.token(xml.CharData(s))
	}
}

func (e *lineEncoder) open(name string) {
	e.token(xml.StartElement{Name: xml.Name{Local: name}})
	e.newline()
}

func (e *lineEncoder) openWithAttr(name, attr, value string) {
	e.token(xml.StartElement{
		Name: xml.Name{Local: name},
		Attr: []xml.Attr{{Name: xml.Name{Local: attr}, Value: value}},
	})
}

func (e *lineEncoder) close(name string) {
	e.token(xml.EndElement{Name: xml.Name{Local: name}})
	e.newline()
}

func (e *lineEncoder) leaf(name, value string) {
	e.token(xml.StartElement{Name: xml.Name{Local: name}})
	e.chars(value)
	e.close(name)
}
