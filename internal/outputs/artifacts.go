package outputs

// Artifact names one output file kind.
type Artifact string

const (
	ArtifactJSON           Artifact = "json"
	ArtifactSLIHeader      Artifact = "sli_header"
	ArtifactSLIData        Artifact = "sli_data"
	ArtifactSLIFluxHeader  Artifact = "sli_flux_header"
	ArtifactSLIFluxData    Artifact = "sli_flux_data"
	ArtifactSLIScanHeader  Artifact = "sli_scan_header"
	ArtifactSLIScanData    Artifact = "sli_scan_data"
	ArtifactSLICorrKHeader Artifact = "sli_corrk_header"
	ArtifactSLICorrKData   Artifact = "sli_corrk_data"
	ArtifactCSV            Artifact = "csv"
	ArtifactCSVFlux        Artifact = "csv_flux"
	ArtifactCSVScan        Artifact = "csv_scan"
	ArtifactCSVCorrK       Artifact = "csv_corrk"
	ArtifactACDText        Artifact = "acd_text"
	ArtifactACDBinary      Artifact = "acd_binary"
	ArtifactTape7Text      Artifact = "tape7_text"
	ArtifactTape7Binary    Artifact = "tape7_binary"
	ArtifactTape6          Artifact = "tape6"
	ArtifactScan           Artifact = "scan"
	ArtifactPth            Artifact = "pth"
	ArtifactPlotText       Artifact = "plt_text"
	ArtifactPlotBinary     Artifact = "plt_binary"
	ArtifactPlotScan       Artifact = "psc"
	ArtifactWarnings       Artifact = "wrn"
	ArtifactCorrKTransText Artifact = "corrk_trans_text"
	ArtifactCorrKTransBin  Artifact = "corrk_trans_binary"
	ArtifactCorrKRadText   Artifact = "corrk_rad_text"
	ArtifactCorrKRadBin    Artifact = "corrk_rad_binary"
)

type artifactEntry struct {
	name    Artifact
	resolve func(CaseFiles) string
}

var artifacts = []artifactEntry{
	{ArtifactJSON, CaseFiles.JSON},
	{ArtifactSLIHeader, CaseFiles.SLIHeader},
	{ArtifactSLIData, CaseFiles.SLIData},
	{ArtifactSLIFluxHeader, CaseFiles.SLIFluxHeader},
	{ArtifactSLIFluxData, CaseFiles.SLIFluxData},
	{ArtifactSLIScanHeader, CaseFiles.SLIScanHeader},
	{ArtifactSLIScanData, CaseFiles.SLIScanData},
	{ArtifactSLICorrKHeader, CaseFiles.SLICorrKHeader},
	{ArtifactSLICorrKData, CaseFiles.SLICorrKData},
	{ArtifactCSV, CaseFiles.CSV},
	{ArtifactCSVFlux, CaseFiles.CSVFlux},
	{ArtifactCSVScan, CaseFiles.CSVScan},
	{ArtifactCSVCorrK, CaseFiles.CSVCorrK},
	{ArtifactACDText, CaseFiles.ACDText},
	{ArtifactACDBinary, CaseFiles.ACDBinary},
	{ArtifactTape7Text, CaseFiles.Tape7Text},
	{ArtifactTape7Binary, CaseFiles.Tape7Binary},
	{ArtifactTape6, CaseFiles.Tape6},
	{ArtifactScan, CaseFiles.Scan},
	{ArtifactPth, CaseFiles.RefractPath},
	{ArtifactPlotText, CaseFiles.PlotText},
	{ArtifactPlotBinary, CaseFiles.PlotBinary},
	{ArtifactPlotScan, CaseFiles.PlotScan},
	{ArtifactWarnings, CaseFiles.Warnings},
	{ArtifactCorrKTransText, CaseFiles.CorrKTransText},
	{ArtifactCorrKTransBin, CaseFiles.CorrKTransBinary},
	{ArtifactCorrKRadText, CaseFiles.CorrKRadText},
	{ArtifactCorrKRadBin, CaseFiles.CorrKRadBinary},
}

// Artifacts lists every artifact in resolution order.
func Artifacts() []Artifact {
	out := make([]Artifact, len(artifacts))
	for i, a := range artifacts {
		out[i] = a.name
	}
	return out
}
