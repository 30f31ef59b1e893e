package driver

import (
	"go.uber.org/zap"

	"sonar/internal/analysis"
	"sonar/internal/diag"
	"sonar/internal/observ"
	"sonar/internal/source"
)

// DefaultExt is the extension of report files picked up in directory mode.
const DefaultExt = ".txt"

// Options содержит опции анализа отчётов.
type Options struct {
	Jobs            int    // 0 = GOMAXPROCS
	Ext             string // расширение файлов в режиме каталога
	MaxDiagnostics  int
	CheckInvariants bool
	EnableTimings   bool
	Cache           *DiskCache
	Progress        ProgressSink
	Logger          *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Extension returns the report extension used in directory mode, falling
// back to DefaultExt when Ext is empty.
func (o Options) Extension() string {
	if o.Ext == "" {
		return DefaultExt
	}
	return o.Ext
}

// Summary holds the figures of one report. It is what the disk cache stores.
type Summary struct {
	Count int
	Width int

	PowerOK      bool
	Gamma        string
	Epsilon      string
	GammaValue   uint64
	EpsilonValue uint64
	Power        analysis.Product

	LifeSupportOK bool
	Oxygen        string
	CO2           string
	OxygenValue   uint64
	CO2Value      uint64
	LifeSupport   analysis.Product
}

// FileResult is the outcome of analyzing one report file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Summary Summary
	Cached  bool

	// Detailed results; nil when the figure failed or came from the cache.
	Power       *analysis.Power
	LifeSupport *analysis.LifeSupport

	Timing *observ.Report
}

func summaryFromPayload(p *DiskPayload) Summary {
	return Summary{
		Count:         p.Count,
		Width:         p.Width,
		PowerOK:       true,
		Gamma:         p.Gamma,
		Epsilon:       p.Epsilon,
		GammaValue:    p.GammaValue,
		EpsilonValue:  p.EpsilonValue,
		Power:         p.Power,
		LifeSupportOK: true,
		Oxygen:        p.Oxygen,
		CO2:           p.CO2,
		OxygenValue:   p.OxygenValue,
		CO2Value:      p.CO2Value,
		LifeSupport:   p.LifeSupport,
	}
}

func payloadFromSummary(s *Summary) *DiskPayload {
	return &DiskPayload{
		Count:        s.Count,
		Width:        s.Width,
		Gamma:        s.Gamma,
		Epsilon:      s.Epsilon,
		GammaValue:   s.GammaValue,
		EpsilonValue: s.EpsilonValue,
		Power:        s.Power,
		Oxygen:       s.Oxygen,
		CO2:          s.CO2,
		OxygenValue:  s.OxygenValue,
		CO2Value:     s.CO2Value,
		LifeSupport:  s.LifeSupport,
	}
}
