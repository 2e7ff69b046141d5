package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"voltref/internal/modules/scale/domain"
	scaleout "voltref/internal/modules/scale/port/out"
	"voltref/internal/platform/slug"
)

type packFile struct {
	Pack       string `yaml:"pack"`
	Electrodes []struct {
		Name        string  `yaml:"name"`
		OffsetVolts float64 `yaml:"offset_volts"`
	} `yaml:"electrodes"`
}

// YAMLPackSource reads lab-defined electrode packs from <dir>/*.yaml.
// A missing directory means no packs; a malformed file is an error so a
// typo never silently drops a lab's electrodes.
type YAMLPackSource struct {
	dir string
}

func NewYAMLPackSource(dir string) scaleout.ElectrodeSource {
	return &YAMLPackSource{dir: dir}
}

func (s *YAMLPackSource) List(_ context.Context) ([]domain.Electrode, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read packs dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var out []domain.Electrode
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pack %s: %w", name, err)
		}
		var pf packFile
		if err := yaml.Unmarshal(b, &pf); err != nil {
			return nil, fmt.Errorf("unmarshal pack %s: %w", name, err)
		}
		packName := strings.TrimSpace(pf.Pack)
		if packName == "" {
			packName = strings.TrimSuffix(name, filepath.Ext(name))
		}
		for _, e := range pf.Electrodes {
			if strings.TrimSpace(e.Name) == "" {
				return nil, fmt.Errorf("pack %s: electrode name is required", name)
			}
			out = append(out, domain.Electrode{
				ID:          slug.Make(e.Name),
				Name:        e.Name,
				OffsetVolts: e.OffsetVolts,
				Pack:        packName,
			})
		}
	}
	return out, nil
}
