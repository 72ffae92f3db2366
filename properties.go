package tilegrid

import "strconv"

// Properties are free-form typed values attached to a tilemap and saved
// with its metadata. Setting a key under one type removes it from the
// others.
type Properties struct {
	ints    map[string]int
	strings map[string]string
	bools   map[string]bool
}

// propertiesBlock is the on-disk shape of Properties.
type propertiesBlock struct {
	I map[string]int    `yaml:"ints,omitempty"`
	S map[string]string `yaml:"strings,omitempty"`
	B map[string]bool   `yaml:"bools,omitempty"`
}

// NewProperties returns an empty properties
func NewProperties() *Properties {
	return &Properties{
		ints:    map[string]int{},
		strings: map[string]string{},
		bools:   map[string]bool{},
	}
}

// Merge properties `o` into this properties
func (p *Properties) Merge(o *Properties) *Properties {
	if o == nil {
		return p
	}
	for k, v := range o.ints {
		p.SetInt(k, v)
	}
	for k, v := range o.strings {
		p.SetString(k, v)
	}
	for k, v := range o.bools {
		p.SetBool(k, v)
	}
	return p
}

// Len is the total number of keys set.
func (p *Properties) Len() int {
	return len(p.ints) + len(p.strings) + len(p.bools)
}

func (p *Properties) String(key string) (string, bool) {
	v, ok := p.strings[key]
	return v, ok
}

func (p *Properties) SetString(key, value string) {
	p.strings[key] = value
	delete(p.ints, key)
	delete(p.bools, key)
}

func (p *Properties) Int(key string) (int, bool) {
	v, ok := p.ints[key]
	return v, ok
}

func (p *Properties) SetInt(key string, value int) {
	p.ints[key] = value
	delete(p.strings, key)
	delete(p.bools, key)
}

func (p *Properties) Bool(key string) (bool, bool) {
	v, ok := p.bools[key]
	return v, ok
}

func (p *Properties) SetBool(key string, value bool) {
	p.bools[key] = value
	delete(p.strings, key)
	delete(p.ints, key)
}

// MarshalYAML implements yaml.Marshaler
func (p *Properties) MarshalYAML() (interface{}, error) {
	return propertiesBlock{I: p.ints, S: p.strings, B: p.bools}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Properties) UnmarshalYAML(unmarshal func(interface{}) error) error {
	blk := propertiesBlock{}
	if err := unmarshal(&blk); err != nil {
		return err
	}
	*p = *NewProperties()
	for k, v := range blk.I {
		p.ints[k] = v
	}
	for k, v := range blk.S {
		p.strings[k] = v
	}
	for k, v := range blk.B {
		p.bools[k] = v
	}
	return nil
}

// ParseProperties reads loosely typed key/value pairs, as given on a
// command line: "true" and "false" become bools, anything parsing as an
// integer becomes an int and the rest are strings.
func ParseProperties(in map[string]string) *Properties {
	p := NewProperties()

	for k, v := range in {
		if v == "true" {
			p.SetBool(k, true)
			continue
		} else if v == "false" {
			p.SetBool(k, false)
			continue
		}

		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			p.SetInt(k, int(i))
		} else {
			p.SetString(k, v)
		}
	}

	return p
}
