package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/plus3/orbitsim/orbit"
	"github.com/plus3/orbitsim/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

type runOptions struct {
	Scenario    string
	Policy      string
	Steps       int
	Sample      int
	Realtime    bool
	MetricsAddr string
}

func newRunCommand(out io.Writer) *cobra.Command {
	o := &runOptions{
		Steps:  10000,
		Sample: 100,
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance a scenario and print a drift report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), out)
		},
	}

	o.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags binds the run options to flags.
func (o *runOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Scenario, "scenario", o.Scenario, "Scenario file (YAML or JSON); the reference scenario when empty")
	flags.StringVar(&o.Policy, "policy", o.Policy, "Override the degenerate geometry policy: reject, propagate or soften")
	flags.IntVar(&o.Steps, "steps", o.Steps, "Number of ticks to advance")
	flags.IntVar(&o.Sample, "sample", o.Sample, "Record diagnostics every N ticks")
	flags.BoolVar(&o.Realtime, "realtime", o.Realtime, "Tick on the wall clock, one time step per interval")
	flags.StringVar(&o.MetricsAddr, "metrics-addr", o.MetricsAddr, "Serve Prometheus metrics on this address")
}

func (o *runOptions) Validate() error {
	if o.Steps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", o.Steps)
	}
	if o.Sample <= 0 {
		return fmt.Errorf("--sample must be positive, got %d", o.Sample)
	}
	return nil
}

func (o *runOptions) scenario() (orbit.Scenario, error) {
	sc := orbit.Reference()
	if o.Scenario != "" {
		var err error
		if sc, err = orbit.LoadScenario(o.Scenario); err != nil {
			return orbit.Scenario{}, err
		}
	}
	if o.Policy != "" {
		sc.Policy = o.Policy
	}
	return sc, nil
}

// Run advances the simulation and writes the report to out. A failed step
// still produces a report; the step error is returned after it.
func (o *runOptions) Run(ctx context.Context, out io.Writer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sc, err := o.scenario()
	if err != nil {
		return err
	}
	sim, err := orbit.New(sc)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	recorder := telemetry.NewRecorder(reg)
	if o.MetricsAddr != "" {
		srv := telemetry.Listen(o.MetricsAddr, reg)
		defer srv.Close()
	}

	report := &Report{
		Scenario: sim.Name(),
		Policy:   sim.Field().Policy.String(),
		TimeStep: sim.TimeStep(),
		Steps:    o.Steps,
		Realtime: o.Realtime,
	}

	initial := sim.Diagnostics()
	recorder.ObserveDiagnostics(initial)
	klog.Infof("Running %q for %d steps (dt=%v, policy=%s)", report.Scenario, o.Steps, report.TimeStep, report.Policy)

	start := time.Now()
	if o.Realtime {
		err = o.runRealtime(ctx, sim, recorder)
	} else {
		err = o.runFast(ctx, sim, recorder)
	}
	report.TotalTime = time.Since(start)

	if err != nil {
		recorder.Failure()
		report.Failure = err.Error()
		klog.Errorf("Simulation stopped at tick %d: %v", sim.Tick(), err)
	}

	final := sim.Diagnostics()
	recorder.ObserveDiagnostics(final)

	stats := sim.Stats()
	report.Completed = stats.Ticks
	report.FailedTicks = stats.FailedTicks
	report.SimulatedTime = sim.Time()
	report.Systems = stats.Systems
	report.StepTime = stats.TickTime
	report.Compare(initial, final)

	if genErr := report.Generate(out); genErr != nil {
		return errors.Join(err, genErr)
	}
	return err
}

func (o *runOptions) runFast(ctx context.Context, sim *orbit.Simulation, recorder *telemetry.Recorder) error {
	for i := 0; i < o.Steps; i++ {
		if ctx.Err() != nil {
			klog.Infof("Interrupted after %d ticks", sim.Tick())
			return nil
		}

		start := time.Now()
		if err := sim.Step(); err != nil {
			return err
		}
		recorder.ObserveStep(time.Since(start))

		if tick := sim.Tick(); tick%uint64(o.Sample) == 0 {
			o.sample(sim, recorder, tick)
		}
	}
	return nil
}

func (o *runOptions) runRealtime(ctx context.Context, sim *orbit.Simulation, recorder *telemetry.Recorder) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	return sim.Run(ctx, sim.RealTimeInterval(), func(snap orbit.Snapshot) {
		recorder.ObserveStep(sim.Stats().TickTime.Last)

		if snap.Tick%uint64(o.Sample) == 0 {
			o.sample(sim, recorder, snap.Tick)
		}
		if snap.Tick >= uint64(o.Steps) {
			cancel()
		}
	})
}

func (o *runOptions) sample(sim *orbit.Simulation, recorder *telemetry.Recorder, tick uint64) {
	diags := sim.Diagnostics()
	recorder.ObserveDiagnostics(diags)

	if klog.V(2).Enabled() {
		for _, d := range diags {
			klog.Infof("tick=%d body=%s scheme=%s radius=%.6f energy=%.6f", tick, d.Name, d.Scheme, d.Radius, d.Energy)
		}
	}
}
