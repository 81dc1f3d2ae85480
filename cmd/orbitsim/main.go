// orbitsim runs the Euler/Verlet comparison headless and reports how far each
// integrator drifts from its initial orbit.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCommand(os.Stdout).ExecuteContext(ctx)
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the orbitsim command tree writing reports to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "orbitsim",
		Short:        "Compare explicit Euler and Störmer–Verlet orbits around a single attractor",
		SilenceUsage: true,
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newRunCommand(out))
	root.AddCommand(newScenarioCommand(out))
	return root
}
