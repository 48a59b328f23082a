package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/hoopbot/internal/core/shot"
	"github.com/zeusync/hoopbot/internal/core/systems/physics"
	"github.com/zeusync/hoopbot/internal/feed"
	"github.com/zeusync/hoopbot/internal/injector"
	"github.com/zeusync/hoopbot/internal/simulation"
	"github.com/zeusync/hoopbot/pkg/sequence"
)

func playCmd() *cobra.Command {
	var (
		withFeed bool
		shots    int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the shooting loop in real time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("feed") {
				cfg.Feed.Enabled = withFeed
			}
			if cmd.Flags().Changed("shots") {
				cfg.Play.Shots = shots
			}
			if err = cfg.Validate(); err != nil {
				return err
			}

			app, cleanup, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if !cfg.Feed.Enabled {
				return app.Director.Run(ctx)
			}

			if err = app.Hub.Attach(app.Events); err != nil {
				return err
			}
			g, gctx := errgroup.WithContext(ctx)
			feedCtx, stopFeed := context.WithCancel(gctx)
			g.Go(func() error {
				return feed.Serve(feedCtx, cfg.Feed.Addr, cfg.Feed.Path, app.Hub, app.Logger)
			})
			g.Go(func() error {
				defer stopFeed()
				return app.Director.Run(gctx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&withFeed, "feed", false, "serve the websocket feed")
	cmd.Flags().IntVarP(&shots, "shots", "n", 0, "stop after n shots; 0 runs until interrupted")
	return cmd
}

func simulateCmd() *cobra.Command {
	var shots, workers int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Evaluate many random shots and report make rates per band",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("shots") {
				cfg.Simulation.Shots = shots
			}
			if cmd.Flags().Changed("workers") {
				cfg.Simulation.Workers = workers
			}
			if err = cfg.Validate(); err != nil {
				return err
			}

			app, cleanup, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			_, report, err := app.Runner.Run(cmd.Context(), simulation.Options{
				Shots:    cfg.Simulation.Shots,
				Workers:  cfg.Simulation.Workers,
				Seed:     cfg.Seed,
				Distance: cfg.Shots.Distance,
				Angle:    cfg.Shots.Angle,
				Force:    cfg.Shots.Force,
			})
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), cfg.Seed, report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&shots, "shots", "n", 0, "number of shots")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of goroutines")
	return cmd
}

func printReport(out io.Writer, seed int64, r simulation.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "band\tshots\tmakes\tmake %\tmean chance\t")
	for _, band := range []shot.Band{shot.BandImpossible, shot.BandContested, shot.BandCertain} {
		s := r.Bands[band]
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t\n", band, s.Shots, s.Makes, s.MakeRate(), s.MeanChance)
	}
	fmt.Fprintf(w, "total\t%d\t%d\t%.1f\t%.1f\t\n", r.Total.Shots, r.Total.Makes, r.Total.MakeRate(), r.Total.MeanChance)
	_ = w.Flush()
	fmt.Fprintf(out, "seed %d, longest flight %d frames, %s\n", seed, r.MaxSteps, r.Elapsed.Round(time.Millisecond))
}

func shotCmd() *cobra.Command {
	var (
		params shot.Params
		every  int
	)
	cmd := &cobra.Command{
		Use:   "shot",
		Short: "Evaluate a single shot and print its trajectory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			app, cleanup, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			evaluator := shot.NewEvaluator(app.Rules, shot.NewSampler(cfg.Seed), app.Logger)
			res, err := evaluator.Shoot(params)
			if err != nil {
				return err
			}
			inf, err := evaluator.Chance(res.Params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  chance %.1f%% (%s)  %s\n", res.Params, res.Chance, res.Band, res.Outcome())
			rules := app.Rules.Rules()
			for _, a := range inf.Activations {
				if a.Strength > 0 {
					fmt.Fprintf(out, "  %.3f  %s\n", a.Strength, rules[a.Rule])
				}
			}
			fmt.Fprint(out, "  aggregate:")
			for _, set := range app.Rules.Output().Sets() {
				if label, ok := inf.Labels[set.Name]; ok {
					fmt.Fprintf(out, " %s=%.3f", set.Name, label.Peak())
				}
			}
			fmt.Fprintln(out)

			solver := physics.NewSolver(res.Made, physics.ReleasePoint(res.Params.Distance), res.Params.Force, res.Params.Angle)
			fmt.Fprintf(out, "%s from (%.1f, %.1f) at (%.2f, %.2f) px/frame\n",
				solver.Mode(), solver.Start().X, solver.Start().Y, solver.Velocity().X, solver.Velocity().Y)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "step\tx\ty\t")
			samples := sequence.FromSeq(solver.Samples())
			if every > 1 {
				samples = samples.Filter(func(s physics.Sample) bool { return s.Step%every == 0 })
			}
			for s := range samples.Seq() {
				fmt.Fprintf(w, "%d\t%.1f\t%.1f\t\n", s.Step, s.X, s.Y)
			}
			if last, ok := sequence.FromSeq(solver.Samples()).Last(); ok && (every <= 1 || last.Step%every != 0) {
				fmt.Fprintf(w, "%d\t%.1f\t%.1f\t\n", last.Step, last.X, last.Y)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Float64VarP(&params.Distance, "distance", "d", 6, "distance to the basket in metres [0,25]")
	cmd.Flags().Float64VarP(&params.Angle, "angle", "a", 48, "release angle in degrees [0,90]")
	cmd.Flags().Float64VarP(&params.Force, "force", "f", 18, "release force [0,30]")
	cmd.Flags().IntVar(&every, "every", 5, "print every n-th sample")
	return cmd
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the knowledge base as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := shot.NewKnowledgeBase()
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), kb.Describe())
		},
	}
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
