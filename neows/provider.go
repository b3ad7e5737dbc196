package neows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planetdefense/orbits"
)

// FileProvider serves elements from <Dir>/<id>.json files holding NeoWs objects.
type FileProvider struct {
	Dir string
}

// Load reads and decodes the object file of id.
func (p FileProvider) Load(id string) (Object, error) {
	name := strings.TrimSpace(id)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return Object{}, fmt.Errorf("neows: invalid id %q", id)
	}
	f, err := os.Open(filepath.Join(p.Dir, name+".json"))
	if err != nil {
		return Object{}, fmt.Errorf("neows: %s: %w", id, err)
	}
	defer f.Close()
	return Decode(f)
}

// Elements implements orbits.ElementsProvider.
func (p FileProvider) Elements(ctx context.Context, id string) (orbits.Elements, error) {
	if err := ctx.Err(); err != nil {
		return orbits.Elements{}, err
	}
	obj, err := p.Load(id)
	if err != nil {
		return orbits.Elements{}, err
	}
	return obj.Elements()
}
