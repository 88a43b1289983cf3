package driver

import (
	"fmt"
	"io"

	"github.com/Roybie/tigr/pkg/lexer"
	"github.com/Roybie/tigr/pkg/token"
)

// TokenRecord is the serialized form of a positioned token, as handed to an
// external parser.
type TokenRecord struct {
	Kind   string `json:"kind" yaml:"kind" msgpack:"kind"`
	Lit    string `json:"lit,omitempty" yaml:"lit,omitempty" msgpack:"lit,omitempty"`
	Line   int    `json:"line" yaml:"line" msgpack:"line"`
	Offset int    `json:"offset" yaml:"offset" msgpack:"offset"`
}

// NewTokenRecord converts a lexer item into its serialized form.
func NewTokenRecord(item token.Item) TokenRecord {
	rec := TokenRecord{
		Kind:   item.Token.Kind.String(),
		Line:   item.Line,
		Offset: item.Offset,
	}
	if item.Token.Kind.HasLiteral() {
		rec.Lit = item.Token.Lit
	}
	return rec
}

// Tokenize scans src and returns the serialized token stream. On a lexical
// error the records scanned so far are returned with the error.
func Tokenize(src string) ([]TokenRecord, error) {
	items, err := lexer.Scan(src)
	records := make([]TokenRecord, 0, len(items))
	for _, item := range items {
		records = append(records, NewTokenRecord(item))
	}
	if err != nil {
		return records, err
	}
	log.Debugf("[%s]: scanned %d tokens", TAG, len(records))
	return records, nil
}

// EncodeTokens writes the token stream in the given format.
func EncodeTokens(w io.Writer, records []TokenRecord, format Format) error {
	if records == nil {
		records = []TokenRecord{}
	}
	if err := encodeGeneric(w, records, format); err != nil {
		return fmt.Errorf("tokens: encode %s: %w", format, err)
	}
	return nil
}
