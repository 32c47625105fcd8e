package envi

import "fmt"

// Dataset is a spectral library keyed by spectrum name with a shared
// wavelength coordinate.
type Dataset struct {
	Wavelength []float64
	Names      []string
	Vars       map[string][]float64
	Attrs      map[string]string
}

// Dataset converts the library into one variable per spectrum.
func (l *Library) Dataset() (*Dataset, error) {
	ds := &Dataset{
		Wavelength: l.Wavelength,
		Names:      make([]string, 0, len(l.Names)),
		Vars:       make(map[string][]float64, len(l.Names)),
		Attrs:      make(map[string]string, len(l.Header.Fields)),
	}
	for i, name := range l.Names {
		if _, dup := ds.Vars[name]; dup {
			return nil, fmt.Errorf("duplicate spectrum name %q", name)
		}
		ds.Names = append(ds.Names, name)
		ds.Vars[name] = l.Spectra[i]
	}
	for _, key := range l.Header.Keys() {
		if key == "spectra names" || key == "wavelength" {
			continue
		}
		ds.Attrs[key] = l.Header.Fields[key]
	}
	return ds, nil
}

// ReadDataset opens the library at path and converts it to a Dataset.
func ReadDataset(path string) (*Dataset, error) {
	lib, err := Open(path)
	if err != nil {
		return nil, err
	}
	return lib.Dataset()
}

// Len returns the number of wavelength samples.
func (d *Dataset) Len() int {
	if d.Wavelength != nil {
		return len(d.Wavelength)
	}
	for _, v := range d.Vars {
		return len(v)
	}
	return 0
}
