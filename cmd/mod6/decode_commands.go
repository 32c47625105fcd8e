package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mod6/internal/acd"
	"mod6/internal/envi"
	"mod6/internal/record"
	"mod6/internal/tape7"
	"mod6/internal/unit"
)

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "decode",
		Short:       "Decode engine output files",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	cmd.AddCommand(newDecodeACDCommand())
	cmd.AddCommand(newDecodeTape7Command())
	cmd.AddCommand(newDecodeSLICommand())
	return cmd
}

type columnsView struct {
	Kind    string               `json:"kind"`
	Records int                  `json:"records"`
	Fields  []string             `json:"fields"`
	Columns map[string][]float64 `json:"columns"`
	Extra   map[string]any       `json:"extra,omitempty"`
}

func newDecodeACDCommand() *cobra.Command {
	var (
		textFormat bool
		noValidate bool
		combine    string
		limit      int
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "acd FILE",
		Short: "Decode an atmospheric correction data file",
		Long: `Decode an atmospheric correction data (ACD) file.

Binary files are read by default; --text reads the text rendering instead.
With --combine the weighted k sub-band values of FIELD are summed into one
value per spectral band.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			if textFormat {
				if combine != "" {
					return fmt.Errorf("--combine needs the binary file, which carries the k-index count")
				}
				table, err := acd.ReadText(path)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, tableView("acd text", table, limit, nil))
				}
				fmt.Fprintf(out, "Records: %d\n", table.Len())
				writeRecords(out, table, limit)
				return nil
			}

			bin, err := readACDBinary(path, !noValidate)
			if err != nil {
				return err
			}
			algo, algoErr := bin.Algorithm()
			algorithm := string(algo)
			if algoErr != nil {
				algorithm = "unknown"
			}

			if combine != "" {
				return writeCombined(cmd, bin, combine, jsonOut)
			}
			if jsonOut {
				return writeJSON(cmd, tableView("acd binary", bin.Records, limit, map[string]any{
					"k_count":   bin.KCount,
					"algorithm": algorithm,
				}))
			}
			fmt.Fprintf(out, "Records: %d\n", bin.Records.Len())
			fmt.Fprintf(out, "k-index count: %d (%s)\n", bin.KCount, algorithm)
			writeRecords(out, bin.Records, limit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&textFormat, "text", false, "Read the text rendering of the file")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip header, marker and k_int checks of binary files")
	cmd.Flags().StringVar(&combine, "combine", "", "Combine the k sub-bands of this field")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Records to print (0 prints all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func readACDBinary(path string, validate bool) (*acd.Binary, error) {
	if validate {
		return acd.ReadBinary(path)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read binary ACD: %w", err)
	}
	bin, err := acd.DecodeBinary(buf, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bin, nil
}

func writeCombined(cmd *cobra.Command, bin *acd.Binary, field string, jsonOut bool) error {
	combined, err := bin.CombineBands(field)
	if err != nil {
		return err
	}
	freq, _ := bin.Records.Float64(acd.FieldFreq)
	kInt, _ := bin.Records.Int32(acd.FieldKInt)
	bands := make([]float64, 0, len(combined))
	for i, k := range kInt {
		if k == 1 {
			bands = append(bands, freq[i])
		}
	}

	if jsonOut {
		return writeJSON(cmd, map[string][]float64{acd.FieldFreq: bands, field: combined})
	}
	rows := make([][]string, len(combined))
	for i := range combined {
		rows[i] = []string{formatFloat(bands[i]), formatFloat(combined[i])}
	}
	writeTable(cmd.OutOrStdout(), []string{acd.FieldFreq, field}, rows, []columnAlignment{alignRight, alignRight})
	return nil
}

func newDecodeTape7Command() *cobra.Command {
	var (
		wavelengthUnit string
		limit          int
		jsonOut        bool
	)

	cmd := &cobra.Command{
		Use:   "tape7 FILE",
		Short: "Decode a binary tape7 spectral file",
		Long: `Decode a binary tape7 file. The record layout (transmittance, radiance or
thermal-only radiance) is inferred from the file itself.

With --wavelength-unit the spectral coordinate, written by the engine in
wavenumbers (cm-1), is converted to wavelengths in the given unit (e.g. um, nm).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spectra, err := tape7.Read(args[0])
			if err != nil {
				return err
			}
			var override map[string][]float64
			if wavelengthUnit != "" {
				freq, _ := spectra.Records.Float64(tape7.FieldFreq)
				wl, err := unit.WavenumbersToWavelengths(freq, unit.PerCentimetre, unit.WavelengthUnit(wavelengthUnit))
				if err != nil {
					return err
				}
				override = map[string][]float64{tape7.FieldFreq: wl}
			}

			view := tableView(spectra.Kind.String(), spectra.Records, limit, nil)
			if override != nil {
				view.Columns["wavelength"] = truncate(override[tape7.FieldFreq], limit)
				view.Extra = map[string]any{"wavelength_unit": wavelengthUnit}
			}
			if jsonOut {
				return writeJSON(cmd, view)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Spectra: %s\n", spectra.Kind)
			fmt.Fprintf(out, "Records: %d\n", spectra.Len())
			headers, rows := recordRows(spectra.Records, limit)
			if override != nil {
				headers[0] = fmt.Sprintf("wavelength (%s)", wavelengthUnit)
				for i := range rows {
					rows[i][0] = formatFloat(override[tape7.FieldFreq][i])
				}
			}
			writeTable(out, headers, rows, rightAligned(len(headers)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&wavelengthUnit, "wavelength-unit", "u", "", "Convert the spectral coordinate to wavelengths in this unit")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Records to print (0 prints all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

type spectrumView struct {
	Name    string  `json:"name"`
	Samples int     `json:"samples"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type libraryView struct {
	Samples    int               `json:"samples"`
	Wavelength []float64         `json:"wavelength,omitempty"`
	Spectra    []spectrumView    `json:"spectra"`
	Attrs      map[string]string `json:"attrs"`
}

func newDecodeSLICommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sli FILE",
		Short: "Summarise an ENVI spectral library",
		Long:  "Summarise an ENVI spectral library given its header or data file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := envi.ReadDataset(args[0])
			if err != nil {
				return err
			}
			view := libraryView{Samples: ds.Len(), Wavelength: ds.Wavelength, Attrs: ds.Attrs}
			for _, name := range ds.Names {
				values := ds.Vars[name]
				sv := spectrumView{Name: name, Samples: len(values)}
				for i, v := range values {
					if i == 0 || v < sv.Min {
						sv.Min = v
					}
					if i == 0 || v > sv.Max {
						sv.Max = v
					}
				}
				view.Spectra = append(view.Spectra, sv)
			}
			if jsonOut {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Samples: %d\n", view.Samples)
			if n := len(ds.Wavelength); n > 0 {
				units := ds.Attrs["wavelength units"]
				fmt.Fprintf(out, "Wavelength: %s to %s %s\n", formatFloat(ds.Wavelength[0]), formatFloat(ds.Wavelength[n-1]), units)
			}
			rows := make([][]string, len(view.Spectra))
			for i, sv := range view.Spectra {
				rows[i] = []string{sv.Name, strconv.Itoa(sv.Samples), formatFloat(sv.Min), formatFloat(sv.Max)}
			}
			writeTable(out, []string{"Spectrum", "Samples", "Min", "Max"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight})
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func tableView(kind string, t *record.Table, limit int, extra map[string]any) columnsView {
	view := columnsView{
		Kind:    kind,
		Records: t.Len(),
		Fields:  t.Fields(),
		Columns: make(map[string][]float64, len(t.Fields())),
		Extra:   extra,
	}
	for _, field := range view.Fields {
		values, _ := t.Float64(field)
		view.Columns[field] = truncate(values, limit)
	}
	return view
}

func recordRows(t *record.Table, limit int) ([]string, [][]string) {
	headers := t.Fields()
	n := t.Len()
	if limit > 0 {
		n = min(n, limit)
	}
	rows := make([][]string, n)
	for i := range n {
		values := t.Row(i)
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = formatFloat(v)
		}
		rows[i] = row
	}
	return headers, rows
}

func writeRecords(w io.Writer, t *record.Table, limit int) {
	headers, rows := recordRows(t, limit)
	writeTable(w, headers, rows, rightAligned(len(headers)))
}

func rightAligned(n int) []columnAlignment {
	aligns := make([]columnAlignment, n)
	for i := range aligns {
		aligns[i] = alignRight
	}
	return aligns
}

func truncate(values []float64, limit int) []float64 {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 7, 64)
}
