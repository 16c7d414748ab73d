package por

// Config bundles the enumerated options of spec §6 into one YAML-loadable
// value, the way the teacher loads tocalls.yaml in deviceid.go.
type Config struct {
	Base                  int    `yaml:"base"`
	Digits                string `yaml:"digits,omitempty"`
	Precision             int    `yaml:"precision"`
	UseArbitraryPrecision bool   `yaml:"use_arbitrary_precision"`
	RoundingMode          string `yaml:"rounding_mode"`

	LineLength         int    `yaml:"line_length"`
	EOLStyle           string `yaml:"eol_style"`
	AllowLongerLines   bool   `yaml:"allow_longer_lines"`
	MaxStringLength    int    `yaml:"max_string_length"`
	AllowLongerStrings bool   `yaml:"allow_longer_strings"`
	TextEncoding       string `yaml:"text_encoding"`
	StreamBufferSize   int    `yaml:"istream_buffer_size"`
}

// DefaultConfig returns the POR file format's own defaults: base 30,
// 80-byte lines, CRLF, 16 KiB read buffer.
func DefaultConfig() Config {
	return Config{
		Base:             30,
		Precision:        0, // 0 means "derive from base"
		RoundingMode:     "half_even",
		LineLength:       DefaultLineLength,
		EOLStyle:         "crlf",
		MaxStringLength:  DefaultMaxStringLength,
		TextEncoding:     "latin1",
		StreamBufferSize: DefaultStreamBufSize,
	}
}

func (c Config) rounding() RoundingMode {
	switch c.RoundingMode {
	case "half_up":
		return RoundHalfUp
	case "toward_zero":
		return RoundTowardZero
	default:
		return RoundHalfEven
	}
}

func (c Config) eol() EOLStyle {
	if c.EOLStyle == "lf" {
		return EOLLF
	}
	return EOLCRLF
}

// BuildRadix constructs the RadixSystem this config describes.
func (c Config) BuildRadix() (*RadixSystem, error) {
	var digits []byte
	if c.Digits != "" {
		digits = []byte(c.Digits)
	}
	r, err := NewRadixSystem(c.Base, digits)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildNumericContext constructs the NumericContext this config describes.
func (c Config) BuildNumericContext() *NumericContext {
	return NewNumericContext(c.UseArbitraryPrecision, c.rounding())
}

// BuildLineReaderConfig and BuildLineWriterConfig translate the shared
// Config into the component-specific config structs E and F expect.
func (c Config) BuildLineReaderConfig() LineReaderConfig {
	return LineReaderConfig{
		LineLength:         c.LineLength,
		AllowLongerLines:   c.AllowLongerLines,
		MaxStringLength:    c.MaxStringLength,
		AllowLongerStrings: c.AllowLongerStrings,
		StreamBufferSize:   c.StreamBufferSize,
	}
}

func (c Config) BuildLineWriterConfig() LineWriterConfig {
	return LineWriterConfig{
		LineLength:      c.LineLength,
		EOL:             c.eol(),
		MaxStringLength: c.MaxStringLength,
	}
}
