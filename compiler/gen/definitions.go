package gen

// Definitions is an insertion-ordered map of top-level definitions: helper
// functions, imports, variable declarations and user procedures. Replacing
// a key keeps its original position.
type Definitions struct {
	keys []string
	code map[string]string
}

// NewDefinitions returns an empty table.
func NewDefinitions() *Definitions {
	return &Definitions{code: make(map[string]string)}
}

// Set stores code under key.
func (d *Definitions) Set(key, code string) {
	if _, ok := d.code[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.code[key] = code
}

// Get returns the code stored under key.
func (d *Definitions) Get(key string) (string, bool) {
	code, ok := d.code[key]
	return code, ok
}

// Has reports whether key is defined.
func (d *Definitions) Has(key string) bool {
	_, ok := d.code[key]
	return ok
}

// Keys returns the keys in insertion order.
func (d *Definitions) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Values returns the definitions in insertion order.
func (d *Definitions) Values() []string {
	values := make([]string, 0, len(d.keys))
	for _, k := range d.keys {
		values = append(values, d.code[k])
	}
	return values
}

// Len returns the number of definitions.
func (d *Definitions) Len() int {
	return len(d.keys)
}
