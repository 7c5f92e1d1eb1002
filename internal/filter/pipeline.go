package filter

import "fmt"

// Pipeline represents an ordered filter sequence.
type Pipeline struct {
	filters []Filter
}

// NewPipeline creates a pipeline from filter names in encode order.
// elemSize is the payload element width, used by the shuffle filter.
func NewPipeline(names []string, elemSize int) (*Pipeline, error) {
	p := &Pipeline{
		filters: make([]Filter, 0, len(names)),
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("filter %q listed twice", name)
		}
		seen[name] = true

		f, err := New(name, elemSize)
		if err != nil {
			return nil, err
		}
		p.filters = append(p.filters, f)
	}

	return p, nil
}

// Encode applies the filters in order.
func (p *Pipeline) Encode(input []byte) ([]byte, error) {
	data := input
	for _, f := range p.filters {
		var err error
		data, err = f.Encode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s encode: %w", f.Name(), err)
		}
	}
	return data, nil
}

// Decode applies the filters in reverse order (last filter first).
func (p *Pipeline) Decode(input []byte) ([]byte, error) {
	data := input
	for i := len(p.filters) - 1; i >= 0; i-- {
		var err error
		data, err = p.filters[i].Decode(data)
		if err != nil {
			return nil, fmt.Errorf("filter %s decode: %w", p.filters[i].Name(), err)
		}
	}
	return data, nil
}

// Names returns the filter names in encode order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.filters))
	for i, f := range p.filters {
		names[i] = f.Name()
	}
	return names
}

// Empty returns true if the pipeline has no filters.
func (p *Pipeline) Empty() bool {
	return len(p.filters) == 0
}
