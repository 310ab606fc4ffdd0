package mock

import "github.com/fwojciec/medium2md"

var _ medium2md.Converter = (*Converter)(nil)

// Converter is a mock implementation of medium2md.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
