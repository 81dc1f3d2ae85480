package main

import (
	"fmt"
	"io"
	"math"
	"text/template"
	"time"

	"github.com/plus3/orbitsim/orbit"
)

type Report struct {
	// Configuration
	Scenario string
	Policy   string
	TimeStep float64
	Steps    int
	Realtime bool

	// Results
	Completed     uint64
	FailedTicks   uint64
	SimulatedTime float64
	TotalTime     time.Duration
	StepTime      orbit.DurationStats
	Bodies        []BodyReport
	Systems       []orbit.SystemStats
	Failure       string
}

// BodyReport compares a body's orbit at the start and the end of a run.
type BodyReport struct {
	Name          string
	Scheme        string
	InitialRadius float64
	FinalRadius   float64
	InitialEnergy float64
	FinalEnergy   float64
}

// EnergyDrift is the relative change of specific energy over the run.
func (b BodyReport) EnergyDrift() float64 {
	if b.InitialEnergy == 0 {
		return math.NaN()
	}
	return (b.FinalEnergy - b.InitialEnergy) / math.Abs(b.InitialEnergy)
}

// RadiusDrift is the relative change of orbit radius over the run.
func (b BodyReport) RadiusDrift() float64 {
	if b.InitialRadius == 0 {
		return math.NaN()
	}
	return (b.FinalRadius - b.InitialRadius) / b.InitialRadius
}

// Compare fills Bodies from diagnostics taken before and after the run.
// Bodies are matched by name; a body missing from final is skipped.
func (r *Report) Compare(initial, final []orbit.BodyDiagnostics) {
	end := make(map[string]orbit.BodyDiagnostics, len(final))
	for _, d := range final {
		end[d.Name] = d
	}

	r.Bodies = r.Bodies[:0]
	for _, d := range initial {
		f, ok := end[d.Name]
		if !ok {
			continue
		}
		r.Bodies = append(r.Bodies, BodyReport{
			Name:          d.Name,
			Scheme:        d.Scheme.String(),
			InitialRadius: d.Radius,
			FinalRadius:   f.Radius,
			InitialEnergy: d.Energy,
			FinalEnergy:   f.Energy,
		})
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Orbit Drift Report

## Configuration
- **Scenario:** {{.Scenario}}
- **Policy:** {{.Policy}}
- **Time Step:** {{.TimeStep}}
- **Requested Steps:** {{.Steps}}{{if .Realtime}} (real time){{end}}

## Progress
- **Completed Ticks:** {{.Completed}}
- **Failed Ticks:** {{.FailedTicks}}
- **Simulated Time:** {{printf "%.2f" .SimulatedTime}}
- **Wall Time:** {{.TotalTime}}
{{- if .StepTime.Count}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
{{- end}}
{{if .Failure}}
**Stopped:** {{.Failure}}
{{end}}
## Orbits
| Body | Scheme | Radius (start -> end) | Radius drift | Energy (start -> end) | Energy drift |
| --- | --- | --- | --- | --- | --- |
{{- range .Bodies}}
| {{.Name}} | {{.Scheme}} | {{f4 .InitialRadius}} -> {{f4 .FinalRadius}} | {{pct .RadiusDrift}} | {{f6 .InitialEnergy}} -> {{f6 .FinalEnergy}} | {{pct .EnergyDrift}} |
{{- end}}

## Systems
{{- range .Systems}}
- {{.Name}}: {{.Count}} executions, avg {{.Avg}}, max {{.Max}}
{{- end}}
`

	fm := template.FuncMap{
		"f4": func(v float64) string {
			return fmt.Sprintf("%.4f", v)
		},
		"f6": func(v float64) string {
			return fmt.Sprintf("%.6f", v)
		},
		"pct": func(v float64) string {
			if math.IsNaN(v) {
				return "n/a"
			}
			return fmt.Sprintf("%+.3f%%", v*100)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
