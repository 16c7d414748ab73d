package por

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// canonicalOf maps a translation-record position (0..255) to the canonical
// symbol byte assigned to it by the Portable file format (spec §4.D, §6).
// Position 0 means "no canonical symbol defined at this position" —
// reserved or undefined positions are left zero.
var canonicalOf = buildCanonicalTable()

func buildCanonicalTable() [256]byte {
	var t [256]byte

	for i, c := 0, byte('0'); i < 10; i, c = i+1, c+1 {
		t[64+i] = c
	}
	for i, c := 0, byte('A'); i < 26; i, c = i+1, c+1 {
		t[74+i] = c
	}
	for i, c := 0, byte('a'); i < 26; i, c = i+1, c+1 {
		t[100+i] = c
	}
	t[126] = ' '

	block1 := []byte(".<(+")
	for i, c := range block1 {
		t[127+i] = c
	}

	block2 := []byte("&[]!$*);^-/")
	for i, c := range block2 {
		t[132+i] = c
	}

	block3 := []byte(",%_>?`:")
	for i, c := range block3 {
		t[144+i] = c
	}

	block4 := []byte("@'=\"")
	for i, c := range block4 {
		t[152+i] = c
	}

	// The remaining printable positions up to the defined region's end
	// (188, per spec §4.D) are a "handful of additional printable
	// symbols" the distilled spec leaves unspecified; see DESIGN.md for
	// this table's derivation. The first of them (156-161) take the six
	// ASCII punctuation bytes not assigned above; positions 162-187 are
	// left undefined.
	rest := []byte("#{}\\~|")
	for i, c := range rest {
		pos := 156 + i
		if pos > 187 {
			break
		}
		t[pos] = c
	}

	return t
}

// TranslationTable is the bidirectional 256-entry byte map of component D.
// decode[fileByte] = canonicalByte; encode is its inverse. Entries with no
// mapping hold the identity (byte maps to itself), matching "if no
// translation is declared, both tables are identity".
type TranslationTable struct {
	decode [256]byte
	encode [256]byte
}

// NewIdentityTranslationTable returns a TranslationTable where every byte
// maps to itself.
func NewIdentityTranslationTable() *TranslationTable {
	t := &TranslationTable{}
	for i := range t.decode {
		t.decode[i] = byte(i)
		t.encode[i] = byte(i)
	}
	return t
}

// BuildDecodeTranslationTable builds decode[]/encode[] from a file's 256-byte
// translation record, per spec §4.D. fileTranslation[i] is the raw file byte
// the source declares for canonical position i; positions the file leaves
// "unused" are stored as the byte used for digit 0 (in_zero).
func BuildDecodeTranslationTable(fileTranslation [256]byte) *TranslationTable {
	t := NewIdentityTranslationTable()

	inZero := fileTranslation[64]

	for i := range t.decode {
		t.decode[i] = byte(i)
	}
	t.decode[inZero] = '0'

	for i := 64; i < 188; i++ {
		canon := canonicalOf[i]
		if canon == 0 {
			continue // reserved/undefined position: no mapping
		}
		in := fileTranslation[i]
		if in == inZero {
			continue // file marks this position unused
		}
		t.decode[in] = canon
	}

	for i := range t.encode {
		t.encode[i] = byte(i)
	}
	for fileByte := 0; fileByte < 256; fileByte++ {
		t.encode[t.decode[fileByte]] = byte(fileByte)
	}

	return t
}

// Decode translates a raw file byte to its canonical symbol.
func (t *TranslationTable) Decode(b byte) byte { return t.decode[b] }

// Encode translates a canonical symbol to the file byte that represents it.
func (t *TranslationTable) Encode(b byte) byte { return t.encode[b] }

// translationYAML is the on-disk shape of a translation-table fixture: a
// sparse map from translation-record position to the single raw file byte
// the source character set declares there. Positions not listed default to
// identity (position i declares byte i), matching an untranslated file.
type translationYAML struct {
	Positions map[int]string `yaml:"positions"`
}

// LoadTranslationYAML builds a TranslationTable from a YAML fixture in the
// translationYAML shape, e.g. testdata/cp1252-ascii.yaml.
func LoadTranslationYAML(data []byte) (*TranslationTable, error) {
	var doc translationYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing translation yaml: %w", err)
	}

	var raw [256]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	for pos, s := range doc.Positions {
		if pos < 0 || pos > 255 {
			return nil, fmt.Errorf("translation yaml: position %d out of range", pos)
		}
		if len(s) != 1 {
			return nil, fmt.Errorf("translation yaml: position %d: byte value must be a single character, got %q", pos, s)
		}
		raw[pos] = s[0]
	}

	return BuildDecodeTranslationTable(raw), nil
}
